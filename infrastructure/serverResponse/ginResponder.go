package server_response

import (
	"os"

	"github.com/gin-gonic/gin"

	"skinsense.io/infrastructure/logger"
)

type ginResponder struct{}

var Responder = ginResponder{}

func (gr ginResponder) ginContext(ctx interface{}) (*gin.Context, bool) {
	ginCtx, ok := (ctx).(*gin.Context)
	if !ok {
		logger.Error("could not transform *interface{} to gin.Context in serverResponse package", logger.LoggerOptions{
			Key:  "payload",
			Data: ctx,
		})
		return nil, false
	}
	ginCtx.Abort()
	return ginCtx, true
}

// Sends an enveloped payload: success, message, data and optional errors.
func (gr ginResponder) Respond(ctx interface{}, code int, message string, payload interface{}, errs []error) {
	ginCtx, ok := gr.ginContext(ctx)
	if !ok {
		return
	}
	response := map[string]any{
		"success": code < 400,
		"message": message,
	}
	if payload != nil {
		response["data"] = payload
	}
	if os.Getenv("ENV") != "prod" {
		logger.Info("response", logger.LoggerOptions{
			Key:  "message",
			Data: message,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: errs,
		})
	}
	if errs != nil {
		errMsgs := []string{}
		for _, err := range errs {
			errMsgs = append(errMsgs, err.Error())
		}
		response["errors"] = errMsgs
	}
	ginCtx.JSON(code, response)
}

// Sends the payload as the whole response body.
func (gr ginResponder) RespondRaw(ctx interface{}, code int, payload interface{}) {
	ginCtx, ok := gr.ginContext(ctx)
	if !ok {
		return
	}
	ginCtx.JSON(code, payload)
}
