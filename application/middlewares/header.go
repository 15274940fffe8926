package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skinsense.io/application/interfaces"
	"skinsense.io/infrastructure/useragent"
)

const RequestIDHeader = "X-Request-Id"

// AppContextMiddleware stores an ApplicationContext under "AppContext" with a
// request id and the parsed client user agent.
func AppContextMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		appContext := &interfaces.ApplicationContext[any]{Ctx: ctx}

		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		appContext.RequestID = requestID
		ctx.Header(RequestIDHeader, requestID)

		if agent := appContext.GetHeader("User-Agent"); agent != nil {
			agentDetails := useragent.ParseUserAgent(*agent)
			appContext.UserAgent = *agent
			appContext.DeviceName = agentDetails.Name
			appContext.DeviceOS = agentDetails.OS
		}

		ctx.Set("AppContext", appContext)
		ctx.Next()
	}
}
