package routev1

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "skinsense.io/application/appErrors"
	"skinsense.io/application/controller"
	"skinsense.io/application/controller/dto"
	"skinsense.io/application/interfaces"
	"skinsense.io/infrastructure/logger"
)

const uploadField = "file"

var errUploadTooLarge = errors.New("upload exceeds size limit")

func FaceRouter(router *gin.RouterGroup, analyzer controller.SkinAnalyzer, maxUploadBytes int64) {
	faceRouter := router.Group("/face")
	{
		faceRouter.POST("/analyze/skin", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			body, err := readUpload(ctx, maxUploadBytes)
			if errors.Is(err, errUploadTooLarge) {
				apperrors.UploadTooLarge(ctx)
				return
			}
			if err != nil {
				logger.Warning("could not read uploaded image", logger.LoggerOptions{
					Key:  "error",
					Data: err.Error(),
				})
				apperrors.NoFileUploaded(ctx)
				return
			}
			controller.AnalyzeSkin(&interfaces.ApplicationContext[dto.SkinUploadDTO]{
				Ctx:        ctx,
				Body:       body,
				RequestID:  appContext.RequestID,
				DeviceName: appContext.DeviceName,
				DeviceOS:   appContext.DeviceOS,
			}, analyzer)
		})

		faceRouter.GET("/clear-cache", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.ClearAnalysisCache(appContext, analyzer)
		})

		faceRouter.GET("/health", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FaceHealth(appContext, analyzer)
		})

		faceRouter.GET("/", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FaceRoot(appContext)
		})
	}
}

// readUpload reads the multipart image fully into memory. A missing field is
// reported as an empty body so the controller answers "No file uploaded".
func readUpload(ctx *gin.Context, maxUploadBytes int64) (*dto.SkinUploadDTO, error) {
	fileHeader, err := ctx.FormFile(uploadField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return &dto.SkinUploadDTO{}, nil
	}
	if err != nil {
		return nil, err
	}
	if maxUploadBytes > 0 && fileHeader.Size > maxUploadBytes {
		return nil, errUploadTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var reader io.Reader = file
	if maxUploadBytes > 0 {
		reader = io.LimitReader(file, maxUploadBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if maxUploadBytes > 0 && int64(len(data)) > maxUploadBytes {
		return nil, errUploadTooLarge
	}

	return &dto.SkinUploadDTO{
		Data:     data,
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
	}, nil
}
