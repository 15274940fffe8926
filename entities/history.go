package entities

import (
	"time"

	"skinsense.io/application/utils"
)

const SkinAnalysisType = "skin_analysis"

// History is one saved skin analysis for a user. A user holds at most one
// entry per image hash.
type History struct {
	ID               string         `bson:"_id" json:"id"`
	UserEmail        string         `bson:"userEmail" json:"userEmail"`
	ImageHash        string         `bson:"imageHash" json:"imageHash"`
	AnalysisData     map[string]any `bson:"analysisData" json:"analysisData"`
	Timestamp        time.Time      `bson:"timestamp" json:"timestamp"`
	SkinGrade        string         `bson:"skinGrade" json:"skinGrade"`
	OverallCondition string         `bson:"overallCondition" json:"overallCondition"`
	AnalysisType     string         `bson:"analysisType" json:"analysisType"`
	CreatedAt        time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time      `bson:"updatedAt" json:"updatedAt"`
}

func (model History) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateUULDString()
		}
	}
	if model.Timestamp.IsZero() {
		model.Timestamp = now
	}
	if model.AnalysisType == "" {
		model.AnalysisType = SkinAnalysisType
	}
	model.UpdatedAt = now
	return &model
}

// GradeCount is one bucket of a user's skin grade distribution.
type GradeCount struct {
	Grade string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}
