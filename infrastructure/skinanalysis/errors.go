package skinanalysis

import "errors"

var (
	ErrNoFaceDetected    = errors.New("no face detected in image")
	ErrAnalysisTimeout   = errors.New("analysis timed out")
	ErrAllAttemptsFailed = errors.New("all analysis attempts failed")
)

// QualityRejectedError is returned when the quality gate refuses an upload.
type QualityRejectedError struct {
	Report ImageQualityReport
}

func (e *QualityRejectedError) Error() string {
	return "poor image quality detected"
}
