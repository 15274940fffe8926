package skinanalysis

// RawAttributeScores holds the per-attempt skin status values returned by the
// face detector. Every value is expected in [0,1]; missing values decode as 0.
type RawAttributeScores struct {
	Acne       float64 `json:"acne"`
	DarkCircle float64 `json:"dark_circle"`
	Blackhead  float64 `json:"blackhead"`
	Health     float64 `json:"health"`
	Stain      float64 `json:"stain"`
	Clarity    float64 `json:"clarity"`
}

// RawScoreEcho is the rounded copy of the inputs kept on every result for auditing.
type RawScoreEcho struct {
	AcneScore       float64 `json:"acne_score"`
	HealthScore     float64 `json:"health_score"`
	ClarityScore    float64 `json:"clarity_score"`
	DarkCircleScore float64 `json:"dark_circle_score"`
	BlackheadScore  float64 `json:"blackhead_score"`
	StainScore      float64 `json:"stain_score"`
	CombinedScore   float64 `json:"combined_score"`
}

// Assessment is the output of the scoring engine.
type Assessment struct {
	Acne               string       `json:"acne"`
	DarkCircles        string       `json:"dark_circles"`
	Blackheads         string       `json:"blackheads"`
	SkinTone           string       `json:"skin_tone"`
	OverallCondition   string       `json:"overall_condition"`
	SkinGrade          string       `json:"skin_grade"`
	SkinMoisture       string       `json:"skin_moisture"`
	PoreVisibility     string       `json:"pore_visibility"`
	AnalysisConfidence float64      `json:"analysis_confidence"`
	RawScores          RawScoreEcho `json:"raw_scores"`
}

// ImageQualityReport is produced once per upload by the quality gate.
type ImageQualityReport struct {
	IsAcceptable    bool     `json:"is_acceptable"`
	Resolution      string   `json:"resolution,omitempty"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// AnalysisResult is what gets cached and returned to callers.
type AnalysisResult struct {
	Assessment

	Gender           string              `json:"gender"`
	EstimatedAge     int                 `json:"estimated_age"`
	FaceConfidence   float64             `json:"face_confidence"`
	Timestamp        int64               `json:"timestamp"`
	ImageHash        string              `json:"image_hash"`
	AnalysisAttempt  int                 `json:"analysis_attempt"`
	AnalysisAttempts int                 `json:"analysis_attempts"`
	ImageQuality     *ImageQualityReport `json:"image_quality,omitempty"`
}

// Upload is an image submitted for analysis.
type Upload struct {
	Data     []byte
	FileName string
	MimeType string
}
