package interfaces

import "github.com/gin-gonic/gin"

// ApplicationContext carries the request and its parsed input from a router
// into a controller.
type ApplicationContext[T any] struct {
	Ctx        *gin.Context
	Body       *T
	Param      map[string]string
	RequestID  string
	UserAgent  string
	DeviceName string
	DeviceOS   string
}

func (ac *ApplicationContext[T]) GetHeader(key string) *string {
	value := ac.Ctx.GetHeader(key)
	if value == "" {
		return nil
	}
	return &value
}
