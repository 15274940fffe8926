package routev1

import (
	"github.com/gin-gonic/gin"

	apperrors "skinsense.io/application/appErrors"
	"skinsense.io/application/constants"
	"skinsense.io/application/controller"
	"skinsense.io/application/controller/dto"
	"skinsense.io/application/interfaces"
	"skinsense.io/application/services/history"
)

// HistoryRouter mounts the history endpoints. A nil service means no database
// is configured and every endpoint answers 503.
func HistoryRouter(router *gin.RouterGroup, service *history.Service) {
	historyRouter := router.Group("/history")
	if service == nil {
		historyRouter.Any("/*path", func(ctx *gin.Context) {
			apperrors.ExternalDependencyError(ctx, "mongodb", constants.HISTORY_DISABLED)
		})
		return
	}
	{
		historyRouter.POST("/save-analysis", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.SaveAnalysisDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.SaveAnalysis(&interfaces.ApplicationContext[dto.SaveAnalysisDTO]{
				Ctx:       ctx,
				Body:      &body,
				RequestID: appContext.RequestID,
			}, service)
		})

		historyRouter.GET("/analysis/:id", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchAnalysis(&interfaces.ApplicationContext[dto.HistoryIDDTO]{
				Ctx:       ctx,
				Body:      &dto.HistoryIDDTO{ID: ctx.Param("id")},
				RequestID: appContext.RequestID,
			}, service)
		})

		historyRouter.GET("/stats/:userEmail", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchHistoryStats(&interfaces.ApplicationContext[dto.HistoryStatsDTO]{
				Ctx:       ctx,
				Body:      &dto.HistoryStatsDTO{UserEmail: ctx.Param("userEmail")},
				RequestID: appContext.RequestID,
			}, service)
		})

		historyRouter.GET("/:userEmail", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.HistoryQueryDTO
			if err := ctx.ShouldBindQuery(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			body.UserEmail = ctx.Param("userEmail")
			controller.FetchHistory(&interfaces.ApplicationContext[dto.HistoryQueryDTO]{
				Ctx:       ctx,
				Body:      &body,
				Param:     map[string]string{"userEmail": body.UserEmail},
				RequestID: appContext.RequestID,
			}, service)
		})

		historyRouter.DELETE("/:id", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.DeleteAnalysis(&interfaces.ApplicationContext[dto.HistoryIDDTO]{
				Ctx:       ctx,
				Body:      &dto.HistoryIDDTO{ID: ctx.Param("id")},
				RequestID: appContext.RequestID,
			}, service)
		})
	}
}
