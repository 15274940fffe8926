package apperrors

import (
	"net/http"

	"skinsense.io/application/constants"
	"skinsense.io/infrastructure/logger"
	server_response "skinsense.io/infrastructure/serverResponse"
)

// Skin analysis errors are sent as a bare {error} body, the shape the mobile
// client reads.

func NoFileUploaded(ctx interface{}) {
	server_response.Responder.RespondRaw(ctx, http.StatusBadRequest, map[string]any{
		"error": constants.NO_FILE_UPLOADED,
	})
}

func UploadTooLarge(ctx interface{}) {
	server_response.Responder.RespondRaw(ctx, http.StatusRequestEntityTooLarge, map[string]any{
		"error": constants.UPLOAD_TOO_LARGE,
	})
}

func PoorImageQuality(ctx interface{}, issues []string, recommendations []string) {
	server_response.Responder.RespondRaw(ctx, http.StatusBadRequest, map[string]any{
		"error":            constants.POOR_IMAGE_QUALITY,
		"issues":           issues,
		"recommendations":  recommendations,
		"analysis_skipped": true,
	})
}

func NoFaceDetected(ctx interface{}) {
	server_response.Responder.RespondRaw(ctx, http.StatusBadRequest, map[string]any{
		"error": constants.NO_FACE_DETECTED,
	})
}

func AnalysisTimeout(ctx interface{}) {
	server_response.Responder.RespondRaw(ctx, http.StatusRequestTimeout, map[string]any{
		"error": constants.ANALYSIS_TIMEOUT,
	})
}

func AllAttemptsFailed(ctx interface{}) {
	server_response.Responder.RespondRaw(ctx, http.StatusInternalServerError, map[string]any{
		"error": constants.ALL_ANALYSIS_ATTEMPTS_FAILED,
	})
}

func UpstreamUnavailable(ctx interface{}) {
	server_response.Responder.RespondRaw(ctx, http.StatusServiceUnavailable, map[string]any{
		"error": constants.SERVICE_UNAVAILABLE,
	})
}

func UpstreamError(ctx interface{}, statusCode int, message string) {
	server_response.Responder.RespondRaw(ctx, statusCode, map[string]any{
		"error": message,
	})
}

func AnalysisError(ctx interface{}, err error) {
	logger.Error("error analyzing image", logger.LoggerOptions{
		Key:  "error",
		Data: err.Error(),
	})
	server_response.Responder.RespondRaw(ctx, http.StatusInternalServerError, map[string]any{
		"error": constants.ANALYSIS_ERROR_PREFIX + err.Error(),
	})
}

// History errors use the enveloped body.

func NotFoundError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusNotFound, message, nil, nil)
}

func ValidationFailedError(ctx interface{}, errMessages *[]error) {
	server_response.Responder.Respond(ctx, http.StatusUnprocessableEntity, "Payload validation failed", nil, *errMessages)
}

func ErrorProcessingPayload(ctx interface{}) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, "Abnormal payload passed", nil, nil)
}

func FatalServerError(ctx interface{}, err error) {
	logger.Error("internal server error", logger.LoggerOptions{
		Key:  "error",
		Data: err.Error(),
	})
	server_response.Responder.Respond(ctx, http.StatusInternalServerError, constants.INTERNAL_SERVER_ERROR, nil, nil)
}

func ExternalDependencyError(ctx interface{}, serviceName string, message string) {
	logger.Error("external dependency unavailable", logger.LoggerOptions{
		Key:  "service",
		Data: serviceName,
	})
	server_response.Responder.Respond(ctx, http.StatusServiceUnavailable, message, nil, nil)
}
