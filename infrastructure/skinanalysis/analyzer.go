package skinanalysis

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"time"

	"skinsense.io/infrastructure/facedetection/types"
	"skinsense.io/infrastructure/logger"
)

const (
	DefaultMaxAttempts    = 2
	DefaultAttemptTimeout = 30 * time.Second
	imageHashPrefixLength = 16
)

type Config struct {
	MaxAttempts    int
	AttemptTimeout time.Duration
}

// Analyzer runs the quality gate, the result cache, the detector attempts and
// the scoring engine for one upload. It is safe for concurrent use; two
// concurrent requests for the same uncached image both call the detector and
// the later cache write wins.
type Analyzer struct {
	detector types.FaceDetector
	cache    *ResultCache
	config   Config
	now      func() time.Time
}

func NewAnalyzer(detector types.FaceDetector, cache *ResultCache, config Config) *Analyzer {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultMaxAttempts
	}
	if config.AttemptTimeout <= 0 {
		config.AttemptTimeout = DefaultAttemptTimeout
	}
	if cache == nil {
		cache = NewResultCache(DefaultCacheCapacity)
	}
	return &Analyzer{
		detector: detector,
		cache:    cache,
		config:   config,
		now:      time.Now,
	}
}

// attemptOutcome is the result of one detector call. Exactly one of
// candidate, noFace or err is set.
type attemptOutcome struct {
	number    int
	last      bool
	candidate *AnalysisResult
	noFace    bool
	err       error
}

// Analyze returns the analysis for an upload, from cache when the same bytes
// were analysed before.
func (a *Analyzer) Analyze(ctx context.Context, upload Upload) (*AnalysisResult, error) {
	quality := CheckQuality(upload.Data)
	if quality.Degraded {
		logger.Warning("image quality check could not read the image, continuing", logger.LoggerOptions{
			Key:  "error",
			Data: quality.Report.Error,
		})
	}
	if !quality.Report.IsAcceptable {
		return nil, &QualityRejectedError{Report: quality.Report}
	}

	digest := Digest(upload.Data)
	if cached, ok := a.cache.Get(digest); ok {
		logger.Info("returning cached result for same image", logger.LoggerOptions{
			Key:  "image_hash",
			Data: digest[:imageHashPrefixLength],
		})
		return &cached, nil
	}

	logger.Info("analyzing new image", logger.LoggerOptions{
		Key:  "image_hash",
		Data: digest[:imageHashPrefixLength],
	}, logger.LoggerOptions{
		Key:  "image_quality",
		Data: quality.Report,
	})

	var candidates []AnalysisResult
	for outcome := range a.attempts(ctx, upload, digest) {
		switch {
		case outcome.candidate != nil:
			candidates = append(candidates, *outcome.candidate)
		case outcome.noFace:
			if outcome.last {
				return nil, ErrNoFaceDetected
			}
		case types.IsTimeout(outcome.err):
			if outcome.last {
				return nil, fmt.Errorf("%w: %w", ErrAnalysisTimeout, outcome.err)
			}
		default:
			if outcome.last && len(candidates) == 0 {
				return nil, outcome.err
			}
		}
	}

	best, ok := selectBest(candidates)
	if !ok {
		logger.Error("all analysis attempts failed", logger.LoggerOptions{
			Key:  "image_hash",
			Data: digest[:imageHashPrefixLength],
		})
		return nil, ErrAllAttemptsFailed
	}
	best.AnalysisAttempts = len(candidates)
	report := quality.Report
	best.ImageQuality = &report

	a.cache.Put(digest, best)

	logger.Info("final analysis result", logger.LoggerOptions{
		Key:  "skin_grade",
		Data: best.SkinGrade,
	}, logger.LoggerOptions{
		Key:  "overall_condition",
		Data: best.OverallCondition,
	})
	return &best, nil
}

// attempts lazily yields one outcome per detector call, up to MaxAttempts.
func (a *Analyzer) attempts(ctx context.Context, upload Upload, digest string) iter.Seq[attemptOutcome] {
	return func(yield func(attemptOutcome) bool) {
		for i := 0; i < a.config.MaxAttempts; i++ {
			outcome := a.runAttempt(ctx, upload, digest, i+1)
			outcome.last = i == a.config.MaxAttempts-1
			if !yield(outcome) {
				return
			}
		}
	}
}

func (a *Analyzer) runAttempt(ctx context.Context, upload Upload, digest string, number int) attemptOutcome {
	attemptCtx, cancel := context.WithTimeout(ctx, a.config.AttemptTimeout)
	defer cancel()

	resp, err := a.detector.DetectSkin(attemptCtx, types.DetectionImage{
		Data:     upload.Data,
		FileName: upload.FileName,
		MimeType: upload.MimeType,
	})
	if err == nil && resp == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		err = attemptCtx.Err()
	}
	if err != nil {
		logger.Warning("analysis attempt failed", logger.LoggerOptions{
			Key:  "attempt",
			Data: number,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err.Error(),
		})
		return attemptOutcome{number: number, err: err}
	}
	if resp == nil || len(resp.Faces) == 0 {
		return attemptOutcome{number: number, noFace: true}
	}

	face := resp.Faces[0]
	gender := face.Attributes.Gender.Value
	if gender == "" {
		gender = defaultSubjectGender
	}
	age := int(math.Round(face.Attributes.Age.Value))
	if age == 0 {
		age = defaultSubjectAge
	}
	skin := face.Attributes.SkinStatus
	raw := RawAttributeScores{
		Acne:       skin.Acne,
		DarkCircle: skin.DarkCircle,
		Blackhead:  skin.Blackhead,
		Health:     skin.Health,
		Stain:      skin.Stain,
		Clarity:    skin.Clarity,
	}

	logger.Info("analysis attempt scored", logger.LoggerOptions{
		Key:  "attempt",
		Data: number,
	}, logger.LoggerOptions{
		Key:  "gender",
		Data: gender,
	}, logger.LoggerOptions{
		Key:  "age",
		Data: age,
	}, logger.LoggerOptions{
		Key:  "raw_scores",
		Data: raw,
	})

	return attemptOutcome{
		number: number,
		candidate: &AnalysisResult{
			Assessment:      Score(raw, gender, age),
			Gender:          gender,
			EstimatedAge:    age,
			FaceConfidence:  math.Floor(face.FaceRectangle.Confidence*1000+0.5) / 10,
			Timestamp:       a.now().UnixMilli(),
			ImageHash:       digest[:imageHashPrefixLength],
			AnalysisAttempt: number,
		},
	}
}

// selectBest returns the candidate with the highest confidence; on ties the
// earliest candidate wins.
func selectBest(candidates []AnalysisResult) (AnalysisResult, bool) {
	if len(candidates) == 0 {
		return AnalysisResult{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.AnalysisConfidence > best.AnalysisConfidence {
			best = c
		}
	}
	return best, true
}

// ClearCache drops every cached result.
func (a *Analyzer) ClearCache() {
	a.cache.Clear()
	logger.Info("analysis cache cleared")
}

func (a *Analyzer) CacheSize() int {
	return a.cache.Len()
}
