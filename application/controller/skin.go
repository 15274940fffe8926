package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	apperrors "skinsense.io/application/appErrors"
	"skinsense.io/application/constants"
	"skinsense.io/application/controller/dto"
	"skinsense.io/application/interfaces"
	"skinsense.io/infrastructure/facedetection/types"
	server_response "skinsense.io/infrastructure/serverResponse"
	"skinsense.io/infrastructure/skinanalysis"
)

// SkinAnalyzer is the part of the analyzer the HTTP layer uses.
type SkinAnalyzer interface {
	Analyze(ctx context.Context, upload skinanalysis.Upload) (*skinanalysis.AnalysisResult, error)
	ClearCache()
	CacheSize() int
}

// AnalyzeSkin runs a skin analysis on the uploaded image and maps every
// failure onto its HTTP response.
func AnalyzeSkin(ctx *interfaces.ApplicationContext[dto.SkinUploadDTO], analyzer SkinAnalyzer) {
	if ctx.Body == nil || len(ctx.Body.Data) == 0 {
		apperrors.NoFileUploaded(ctx.Ctx)
		return
	}

	result, err := analyzer.Analyze(ctx.Ctx.Request.Context(), skinanalysis.Upload{
		Data:     ctx.Body.Data,
		FileName: ctx.Body.FileName,
		MimeType: ctx.Body.MimeType,
	})
	if err != nil {
		respondAnalysisError(ctx, err)
		return
	}

	server_response.Responder.RespondRaw(ctx.Ctx, http.StatusOK, result)
}

func respondAnalysisError(ctx *interfaces.ApplicationContext[dto.SkinUploadDTO], err error) {
	var rejected *skinanalysis.QualityRejectedError
	var apiErr *types.APIError
	switch {
	case errors.As(err, &rejected):
		apperrors.PoorImageQuality(ctx.Ctx, rejected.Report.Issues, rejected.Report.Recommendations)
	case errors.Is(err, skinanalysis.ErrNoFaceDetected):
		apperrors.NoFaceDetected(ctx.Ctx)
	case errors.Is(err, skinanalysis.ErrAnalysisTimeout):
		apperrors.AnalysisTimeout(ctx.Ctx)
	case errors.Is(err, skinanalysis.ErrAllAttemptsFailed):
		apperrors.AllAttemptsFailed(ctx.Ctx)
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusServiceUnavailable:
		apperrors.UpstreamUnavailable(ctx.Ctx)
	case errors.As(err, &apiErr) && apiErr.Message != "":
		apperrors.UpstreamError(ctx.Ctx, apiErr.StatusCode, apiErr.Message)
	default:
		apperrors.AnalysisError(ctx.Ctx, err)
	}
}

// ClearAnalysisCache empties the result cache.
func ClearAnalysisCache(ctx *interfaces.ApplicationContext[any], analyzer SkinAnalyzer) {
	analyzer.ClearCache()
	server_response.Responder.RespondRaw(ctx.Ctx, http.StatusOK, dto.MessageResponse{Message: constants.CACHE_CLEARED})
}

func FaceHealth(ctx *interfaces.ApplicationContext[any], analyzer SkinAnalyzer) {
	server_response.Responder.RespondRaw(ctx.Ctx, http.StatusOK, dto.FaceHealthResponse{
		Status:    constants.SERVICE_HEALTHY,
		Timestamp: time.Now().UnixMilli(),
		CacheSize: analyzer.CacheSize(),
	})
}

func FaceRoot(ctx *interfaces.ApplicationContext[any]) {
	server_response.Responder.RespondRaw(ctx.Ctx, http.StatusOK, dto.MessageResponse{Message: constants.FACE_BACKEND_RUNNING})
}
