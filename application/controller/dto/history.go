package dto

import "skinsense.io/entities"

type SaveAnalysisDTO struct {
	UserEmail        string         `json:"userEmail" validate:"required,max=320"`
	ImageHash        string         `json:"imageHash" validate:"required,image_hash"`
	AnalysisData     map[string]any `json:"analysisData" validate:"required"`
	SkinGrade        string         `json:"skinGrade" validate:"required,skin_grade"`
	OverallCondition string         `json:"overallCondition" validate:"required"`
}

func (d SaveAnalysisDTO) ToEntity() entities.History {
	return entities.History{
		UserEmail:        d.UserEmail,
		ImageHash:        d.ImageHash,
		AnalysisData:     d.AnalysisData,
		SkinGrade:        d.SkinGrade,
		OverallCondition: d.OverallCondition,
	}
}

type HistoryQueryDTO struct {
	UserEmail string `json:"userEmail" validate:"required"`
	Limit     int64  `form:"limit" json:"limit" validate:"omitempty,min=1"`
	Page      int64  `form:"page" json:"page" validate:"omitempty,min=1"`
}

type HistoryIDDTO struct {
	ID string `json:"id" validate:"required"`
}

type HistoryStatsDTO struct {
	UserEmail string `json:"userEmail" validate:"required"`
}
