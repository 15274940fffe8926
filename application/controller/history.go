package controller

import (
	"net/http"

	apperrors "skinsense.io/application/appErrors"
	"skinsense.io/application/constants"
	"skinsense.io/application/controller/dto"
	"skinsense.io/application/interfaces"
	"skinsense.io/application/services/history"
	server_response "skinsense.io/infrastructure/serverResponse"
	"skinsense.io/infrastructure/validator"
)

func SaveAnalysis(ctx *interfaces.ApplicationContext[dto.SaveAnalysisDTO], service *history.Service) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	entry, created, err := service.SaveAnalysis(ctx.Ctx.Request.Context(), ctx.Body.ToEntity())
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if !created {
		server_response.Responder.Respond(ctx.Ctx, http.StatusOK, constants.HISTORY_ALREADY_SAVED, entry, nil)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, constants.HISTORY_SAVED, entry, nil)
}

func FetchHistory(ctx *interfaces.ApplicationContext[dto.HistoryQueryDTO], service *history.Service) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	page, err := service.ListForUser(ctx.Ctx.Request.Context(), ctx.Body.UserEmail, ctx.Body.Page, ctx.Body.Limit)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, constants.HISTORY_FETCHED, page, nil)
}

func FetchAnalysis(ctx *interfaces.ApplicationContext[dto.HistoryIDDTO], service *history.Service) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	entry, err := service.Get(ctx.Ctx.Request.Context(), ctx.Body.ID)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if entry == nil {
		apperrors.NotFoundError(ctx.Ctx, constants.HISTORY_NOT_FOUND)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, constants.HISTORY_FETCHED, entry, nil)
}

func DeleteAnalysis(ctx *interfaces.ApplicationContext[dto.HistoryIDDTO], service *history.Service) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	deleted, err := service.Delete(ctx.Ctx.Request.Context(), ctx.Body.ID)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if !deleted {
		apperrors.NotFoundError(ctx.Ctx, constants.HISTORY_NOT_FOUND)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, constants.HISTORY_DELETED, nil, nil)
}

func FetchHistoryStats(ctx *interfaces.ApplicationContext[dto.HistoryStatsDTO], service *history.Service) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	stats, err := service.Stats(ctx.Ctx.Request.Context(), ctx.Body.UserEmail)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, constants.HISTORY_STATS_FETCHED, stats, nil)
}
