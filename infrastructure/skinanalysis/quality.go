package skinanalysis

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	MinResolutionPixels = 640 * 480
	MinAspectRatio      = 0.7
	MaxAspectRatio      = 1.3

	IssueLowResolution   = "Low resolution"
	IssuePoorAspectRatio = "Poor aspect ratio"
)

// CaptureRecommendations is attached to every decoded quality report.
var CaptureRecommendations = []string{
	"Use good lighting (natural light preferred)",
	"Ensure face is clearly visible and centered",
	"Avoid shadows and glare",
	"Use front camera with high resolution",
	"Keep neutral expression",
}

// QualityCheck is the outcome of the quality gate. Degraded is set when the
// image header could not be read; the report is then acceptable and carries
// the decode error so analysis is never blocked by the gate itself.
type QualityCheck struct {
	Report   ImageQualityReport
	Degraded bool
}

// CheckQuality inspects the image header only, it never decodes pixels.
func CheckQuality(data []byte) QualityCheck {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err == nil && (cfg.Width <= 0 || cfg.Height <= 0) {
		err = errors.New("image has no pixels")
	}
	if err != nil {
		return QualityCheck{
			Degraded: true,
			Report: ImageQualityReport{
				IsAcceptable: true,
				Issues:       []string{},
				Error:        err.Error(),
			},
		}
	}

	issues := []string{}
	if cfg.Width*cfg.Height < MinResolutionPixels {
		issues = append(issues, IssueLowResolution)
	}
	aspect := float64(cfg.Width) / float64(cfg.Height)
	if aspect < MinAspectRatio || aspect > MaxAspectRatio {
		issues = append(issues, IssuePoorAspectRatio)
	}

	recommendations := make([]string, len(CaptureRecommendations))
	copy(recommendations, CaptureRecommendations)

	return QualityCheck{
		Report: ImageQualityReport{
			IsAcceptable:    len(issues) == 0,
			Resolution:      fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
			Issues:          issues,
			Recommendations: recommendations,
		},
	}
}
