package skinanalysis

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"skinsense.io/infrastructure/facedetection/types"
)

type fakeStep struct {
	resp *types.DetectResponse
	err  error
}

// fakeDetector replays steps in order and repeats the last one once they run out.
type fakeDetector struct {
	mu    sync.Mutex
	calls int
	steps []fakeStep
	block bool
	delay time.Duration
}

func (f *fakeDetector) DetectSkin(ctx context.Context, image types.DetectionImage) (*types.DetectResponse, error) {
	f.mu.Lock()
	i := f.calls
	f.calls++
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	time.Sleep(f.delay)
	if i >= len(f.steps) {
		i = len(f.steps) - 1
	}
	return f.steps[i].resp, f.steps[i].err
}

func (f *fakeDetector) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func faceResponse(skin types.SkinStatus, gender string, age float64, confidence float64) *types.DetectResponse {
	return &types.DetectResponse{
		FaceNum: 1,
		Faces: []types.Face{{
			FaceRectangle: types.FaceRectangle{Confidence: confidence},
			Attributes: types.FaceAttributes{
				SkinStatus: skin,
				Gender:     types.StringValue{Value: gender},
				Age:        types.NumericValue{Value: age},
			},
		}},
	}
}

var (
	// analysis confidence 52.5
	dullSkin = types.SkinStatus{Health: 0.5, Clarity: 0.5, Acne: 0.3, Stain: 0.2}
	// analysis confidence 86.9
	clearSkin = types.SkinStatus{Health: 0.9, Clarity: 0.85, Acne: 0.1, Stain: 0.05, DarkCircle: 0.1, Blackhead: 0.1}
)

func newTestAnalyzer(detector types.FaceDetector) *Analyzer {
	a := NewAnalyzer(detector, NewResultCache(DefaultCacheCapacity), Config{MaxAttempts: 2, AttemptTimeout: time.Second})
	a.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return a
}

func TestSelectBest(t *testing.T) {
	candidates := []AnalysisResult{
		{Assessment: Assessment{AnalysisConfidence: 72.3}, AnalysisAttempt: 1},
		{Assessment: Assessment{AnalysisConfidence: 81.0}, AnalysisAttempt: 2},
	}
	best, ok := selectBest(candidates)
	if !ok || best.AnalysisConfidence != 81.0 {
		t.Fatalf("selectBest = %+v, %v", best, ok)
	}

	tied := []AnalysisResult{
		{Assessment: Assessment{AnalysisConfidence: 50}, AnalysisAttempt: 1},
		{Assessment: Assessment{AnalysisConfidence: 50}, AnalysisAttempt: 2},
	}
	if best, _ := selectBest(tied); best.AnalysisAttempt != 1 {
		t.Errorf("tie should keep the earliest attempt, got %d", best.AnalysisAttempt)
	}

	if _, ok := selectBest(nil); ok {
		t.Error("selectBest(nil) should report no candidate")
	}
}

func TestAnalyzeKeepsBestAttempt(t *testing.T) {
	detector := &fakeDetector{steps: []fakeStep{
		{resp: faceResponse(dullSkin, "Female", 30, 0.9)},
		{resp: faceResponse(clearSkin, "Female", 30, 0.98765)},
	}}
	analyzer := newTestAnalyzer(detector)
	image := pngBytes(t, 700, 700)

	result, err := analyzer.Analyze(context.Background(), Upload{Data: image, MimeType: "image/png"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.AnalysisAttempt != 2 || result.AnalysisAttempts != 2 {
		t.Errorf("attempt = %d of %d, want 2 of 2", result.AnalysisAttempt, result.AnalysisAttempts)
	}
	if result.SkinGrade != GradeA {
		t.Errorf("SkinGrade = %q, want %q", result.SkinGrade, GradeA)
	}
	if result.FaceConfidence != 98.8 {
		t.Errorf("FaceConfidence = %v, want 98.8", result.FaceConfidence)
	}
	if result.ImageHash != Digest(image)[:16] {
		t.Errorf("ImageHash = %q, want digest prefix", result.ImageHash)
	}
	if result.Timestamp != 1700000000000 {
		t.Errorf("Timestamp = %d", result.Timestamp)
	}
	if result.ImageQuality == nil || !result.ImageQuality.IsAcceptable {
		t.Errorf("ImageQuality = %+v, want acceptable report", result.ImageQuality)
	}
}

func TestAnalyzeServesRepeatUploadsFromCache(t *testing.T) {
	detector := &fakeDetector{steps: []fakeStep{{resp: faceResponse(clearSkin, "Male", 40, 0.9)}}}
	analyzer := newTestAnalyzer(detector)
	image := pngBytes(t, 700, 700)

	first, err := analyzer.Analyze(context.Background(), Upload{Data: image})
	if err != nil {
		t.Fatalf("first Analyze: %v", err)
	}
	callsAfterFirst := detector.Calls()

	second, err := analyzer.Analyze(context.Background(), Upload{Data: image})
	if err != nil {
		t.Fatalf("second Analyze: %v", err)
	}
	if detector.Calls() != callsAfterFirst {
		t.Errorf("detector called %d more times on a cache hit", detector.Calls()-callsAfterFirst)
	}
	if second.ImageHash != first.ImageHash || second.AnalysisConfidence != first.AnalysisConfidence {
		t.Errorf("cached result differs: %+v vs %+v", second, first)
	}
	if analyzer.CacheSize() != 1 {
		t.Errorf("CacheSize = %d, want 1", analyzer.CacheSize())
	}

	analyzer.ClearCache()
	if analyzer.CacheSize() != 0 {
		t.Errorf("CacheSize after clear = %d", analyzer.CacheSize())
	}
	if _, err := analyzer.Analyze(context.Background(), Upload{Data: image}); err != nil {
		t.Fatalf("Analyze after clear: %v", err)
	}
	if detector.Calls() == callsAfterFirst {
		t.Error("detector should be called again after the cache was cleared")
	}
}

func TestAnalyzeAppliesSubjectDefaults(t *testing.T) {
	detector := &fakeDetector{steps: []fakeStep{{resp: faceResponse(clearSkin, "", 0, 0.5)}}}
	result, err := newTestAnalyzer(detector).Analyze(context.Background(), Upload{Data: pngBytes(t, 700, 700)})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Gender != defaultSubjectGender {
		t.Errorf("Gender = %q, want %q", result.Gender, defaultSubjectGender)
	}
	if result.EstimatedAge != defaultSubjectAge {
		t.Errorf("EstimatedAge = %d, want %d", result.EstimatedAge, defaultSubjectAge)
	}
}

func TestAnalyzeFailures(t *testing.T) {
	upstream := &types.APIError{StatusCode: http.StatusServiceUnavailable}
	tests := []struct {
		name    string
		steps   []fakeStep
		wantErr error
		wantAs  bool
	}{
		{
			name:    "no face in any attempt",
			steps:   []fakeStep{{resp: &types.DetectResponse{}}},
			wantErr: ErrNoFaceDetected,
		},
		{
			name:    "no face on the last attempt discards earlier candidates",
			steps:   []fakeStep{{resp: faceResponse(clearSkin, "Female", 30, 0.9)}, {resp: &types.DetectResponse{}}},
			wantErr: ErrNoFaceDetected,
		},
		{
			name:    "timeout on the last attempt",
			steps:   []fakeStep{{err: context.DeadlineExceeded}},
			wantErr: ErrAnalysisTimeout,
		},
		{
			name:    "provider 408 counts as timeout",
			steps:   []fakeStep{{err: &types.APIError{StatusCode: http.StatusRequestTimeout}}},
			wantErr: ErrAnalysisTimeout,
		},
		{
			name:   "upstream error is propagated",
			steps:  []fakeStep{{err: upstream}},
			wantAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := &fakeDetector{steps: tt.steps}
			_, err := newTestAnalyzer(detector).Analyze(context.Background(), Upload{Data: pngBytes(t, 700, 700)})
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantAs {
				var apiErr *types.APIError
				if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusServiceUnavailable {
					t.Errorf("err = %v, want upstream 503", err)
				}
			}
			if detector.Calls() != 2 {
				t.Errorf("detector calls = %d, want 2", detector.Calls())
			}
		})
	}
}

func TestAnalyzeRecoversFromFailedFirstAttempt(t *testing.T) {
	detector := &fakeDetector{steps: []fakeStep{
		{err: errors.New("connection reset")},
		{resp: faceResponse(clearSkin, "Female", 30, 0.9)},
	}}
	result, err := newTestAnalyzer(detector).Analyze(context.Background(), Upload{Data: pngBytes(t, 700, 700)})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.AnalysisAttempt != 2 || result.AnalysisAttempts != 1 {
		t.Errorf("attempt = %d of %d, want 2 of 1", result.AnalysisAttempt, result.AnalysisAttempts)
	}
}

func TestAnalyzeKeepsCandidateWhenLastAttemptErrors(t *testing.T) {
	detector := &fakeDetector{steps: []fakeStep{
		{resp: faceResponse(clearSkin, "Female", 30, 0.9)},
		{err: errors.New("connection reset")},
	}}
	result, err := newTestAnalyzer(detector).Analyze(context.Background(), Upload{Data: pngBytes(t, 700, 700)})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.AnalysisAttempt != 1 {
		t.Errorf("AnalysisAttempt = %d, want 1", result.AnalysisAttempt)
	}
}

func TestAnalyzeAttemptTimeout(t *testing.T) {
	detector := &fakeDetector{block: true}
	analyzer := NewAnalyzer(detector, nil, Config{MaxAttempts: 2, AttemptTimeout: 10 * time.Millisecond})

	_, err := analyzer.Analyze(context.Background(), Upload{Data: pngBytes(t, 700, 700)})
	if !errors.Is(err, ErrAnalysisTimeout) {
		t.Fatalf("err = %v, want %v", err, ErrAnalysisTimeout)
	}
	if detector.Calls() != 2 {
		t.Errorf("detector calls = %d, want 2", detector.Calls())
	}
}

func TestAnalyzeRejectsPoorQuality(t *testing.T) {
	detector := &fakeDetector{steps: []fakeStep{{resp: faceResponse(clearSkin, "Female", 30, 0.9)}}}
	_, err := newTestAnalyzer(detector).Analyze(context.Background(), Upload{Data: pngBytes(t, 100, 100)})

	var rejected *QualityRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("err = %v, want QualityRejectedError", err)
	}
	if len(rejected.Report.Issues) != 1 || rejected.Report.Issues[0] != IssueLowResolution {
		t.Errorf("Issues = %v", rejected.Report.Issues)
	}
	if detector.Calls() != 0 {
		t.Errorf("detector called %d times for a rejected image", detector.Calls())
	}
}

func TestAnalyzeContinuesWhenQualityCheckDegrades(t *testing.T) {
	detector := &fakeDetector{steps: []fakeStep{{resp: faceResponse(clearSkin, "Female", 30, 0.9)}}}
	result, err := newTestAnalyzer(detector).Analyze(context.Background(), Upload{Data: []byte("not an image")})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.ImageQuality == nil || result.ImageQuality.Error == "" || !result.ImageQuality.IsAcceptable {
		t.Errorf("ImageQuality = %+v, want acceptable report carrying the decode error", result.ImageQuality)
	}
}

func TestAnalyzeKeepsResponseThatArrivesAfterDeadline(t *testing.T) {
	detector := &fakeDetector{
		steps: []fakeStep{{resp: faceResponse(clearSkin, "Female", 30, 0.9)}},
		delay: 30 * time.Millisecond,
	}
	analyzer := NewAnalyzer(detector, NewResultCache(DefaultCacheCapacity), Config{MaxAttempts: 1, AttemptTimeout: 5 * time.Millisecond})

	result, err := analyzer.Analyze(context.Background(), Upload{Data: pngBytes(t, 700, 700), MimeType: "image/png"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.AnalysisConfidence != 86.9 {
		t.Errorf("AnalysisConfidence = %v, want 86.9", result.AnalysisConfidence)
	}
}
