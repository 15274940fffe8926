package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"skinsense.io/application/interfaces"
	"skinsense.io/infrastructure/logger"
)

// RequestLogMiddleware logs one line per request once the handler finished.
func RequestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		payload := []logger.LoggerOptions{
			{Key: "method", Data: c.Request.Method},
			{Key: "path", Data: c.Request.URL.Path},
			{Key: "status", Data: c.Writer.Status()},
			{Key: "duration_ms", Data: time.Since(startTime).Milliseconds()},
			{Key: "ip", Data: c.ClientIP()},
		}
		if value, exists := c.Get("AppContext"); exists {
			if appContext, ok := value.(*interfaces.ApplicationContext[any]); ok {
				payload = append(payload,
					logger.LoggerOptions{Key: "request_id", Data: appContext.RequestID},
					logger.LoggerOptions{Key: "device", Data: appContext.DeviceName},
					logger.LoggerOptions{Key: "os", Data: appContext.DeviceOS},
				)
			}
		}

		if c.Writer.Status() >= 500 {
			logger.Error("request completed", payload...)
			return
		}
		logger.Info("request completed", payload...)
	}
}
