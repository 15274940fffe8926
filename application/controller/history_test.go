package controller

import (
	"context"
	"net/http"
	"testing"

	"skinsense.io/application/constants"
	"skinsense.io/application/controller/dto"
	"skinsense.io/application/interfaces"
	"skinsense.io/application/services/history"
	"skinsense.io/entities"
)

// stubStore serves a single user's entries from a slice.
type stubStore struct {
	entries []entities.History
}

func (s *stubStore) FindByUserAndHash(ctx context.Context, userEmail, imageHash string) (*entities.History, error) {
	for _, e := range s.entries {
		if e.UserEmail == userEmail && e.ImageHash == imageHash {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (s *stubStore) Create(ctx context.Context, entry entities.History) (*entities.History, error) {
	entry.ID = "01HZY0000000000000000000"
	s.entries = append(s.entries, entry)
	return &entry, nil
}

func (s *stubStore) ListByUser(ctx context.Context, userEmail string, skip, limit int64) ([]entities.History, error) {
	return s.entries, nil
}

func (s *stubStore) CountByUser(ctx context.Context, userEmail string) (int64, error) {
	return int64(len(s.entries)), nil
}

func (s *stubStore) FindByID(ctx context.Context, id string) (*entities.History, error) {
	for _, e := range s.entries {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (s *stubStore) DeleteByID(ctx context.Context, id string) (int64, error) {
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *stubStore) GradeDistribution(ctx context.Context, userEmail string) ([]entities.GradeCount, error) {
	return []entities.GradeCount{{Grade: "A", Count: int64(len(s.entries))}}, nil
}

func (s *stubStore) Latest(ctx context.Context, userEmail string) (*entities.History, error) {
	if len(s.entries) == 0 {
		return nil, nil
	}
	return &s.entries[len(s.entries)-1], nil
}

func validSave() dto.SaveAnalysisDTO {
	return dto.SaveAnalysisDTO{
		UserEmail:        "ada@example.com",
		ImageHash:        "0123456789abcdef",
		AnalysisData:     map[string]any{"skin_grade": "A"},
		SkinGrade:        "A",
		OverallCondition: "Excellent",
	}
}

func TestSaveAnalysisController(t *testing.T) {
	service := history.NewService(&stubStore{})

	ctx, recorder := newTestContext()
	body := validSave()
	SaveAnalysis(&interfaces.ApplicationContext[dto.SaveAnalysisDTO]{Ctx: ctx, Body: &body}, service)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("first save status = %d, want 201", recorder.Code)
	}
	if got := decodeBody(t, recorder)["message"]; got != constants.HISTORY_SAVED {
		t.Errorf("message = %v", got)
	}

	ctx, recorder = newTestContext()
	SaveAnalysis(&interfaces.ApplicationContext[dto.SaveAnalysisDTO]{Ctx: ctx, Body: &body}, service)
	if recorder.Code != http.StatusOK {
		t.Fatalf("repeat save status = %d, want 200", recorder.Code)
	}
	if got := decodeBody(t, recorder)["message"]; got != constants.HISTORY_ALREADY_SAVED {
		t.Errorf("message = %v", got)
	}
}

func TestSaveAnalysisControllerValidation(t *testing.T) {
	ctx, recorder := newTestContext()
	body := validSave()
	body.AnalysisData = nil
	SaveAnalysis(&interfaces.ApplicationContext[dto.SaveAnalysisDTO]{Ctx: ctx, Body: &body}, history.NewService(&stubStore{}))

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", recorder.Code)
	}
	response := decodeBody(t, recorder)
	errs, _ := response["errors"].([]any)
	if len(errs) != 1 || errs[0] != "analysisData is required" {
		t.Errorf("errors = %v", response["errors"])
	}
	if response["success"] != false {
		t.Errorf("success = %v, want false", response["success"])
	}
}

func TestFetchAndDeleteAnalysis(t *testing.T) {
	store := &stubStore{entries: []entities.History{{ID: "entry-1", UserEmail: "ada@example.com", SkinGrade: "B"}}}
	service := history.NewService(store)

	ctx, recorder := newTestContext()
	FetchAnalysis(&interfaces.ApplicationContext[dto.HistoryIDDTO]{Ctx: ctx, Body: &dto.HistoryIDDTO{ID: "entry-1"}}, service)
	if recorder.Code != http.StatusOK {
		t.Fatalf("fetch status = %d, want 200", recorder.Code)
	}

	ctx, recorder = newTestContext()
	FetchAnalysis(&interfaces.ApplicationContext[dto.HistoryIDDTO]{Ctx: ctx, Body: &dto.HistoryIDDTO{ID: "missing"}}, service)
	if recorder.Code != http.StatusNotFound {
		t.Errorf("missing fetch status = %d, want 404", recorder.Code)
	}
	if got := decodeBody(t, recorder)["message"]; got != constants.HISTORY_NOT_FOUND {
		t.Errorf("message = %v", got)
	}

	ctx, recorder = newTestContext()
	DeleteAnalysis(&interfaces.ApplicationContext[dto.HistoryIDDTO]{Ctx: ctx, Body: &dto.HistoryIDDTO{ID: "entry-1"}}, service)
	if recorder.Code != http.StatusOK {
		t.Errorf("delete status = %d, want 200", recorder.Code)
	}

	ctx, recorder = newTestContext()
	DeleteAnalysis(&interfaces.ApplicationContext[dto.HistoryIDDTO]{Ctx: ctx, Body: &dto.HistoryIDDTO{ID: "entry-1"}}, service)
	if recorder.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", recorder.Code)
	}
}

func TestFetchHistoryAndStats(t *testing.T) {
	store := &stubStore{entries: []entities.History{
		{ID: "entry-1", UserEmail: "ada@example.com", SkinGrade: "A"},
		{ID: "entry-2", UserEmail: "ada@example.com", SkinGrade: "A"},
	}}
	service := history.NewService(store)

	ctx, recorder := newTestContext()
	FetchHistory(&interfaces.ApplicationContext[dto.HistoryQueryDTO]{Ctx: ctx, Body: &dto.HistoryQueryDTO{UserEmail: "ada@example.com"}}, service)
	if recorder.Code != http.StatusOK {
		t.Fatalf("history status = %d, want 200", recorder.Code)
	}
	data, _ := decodeBody(t, recorder)["data"].(map[string]any)
	pagination, _ := data["pagination"].(map[string]any)
	if pagination["total"] != float64(2) || pagination["limit"] != float64(history.DefaultPageSize) {
		t.Errorf("pagination = %v", pagination)
	}

	ctx, recorder = newTestContext()
	FetchHistoryStats(&interfaces.ApplicationContext[dto.HistoryStatsDTO]{Ctx: ctx, Body: &dto.HistoryStatsDTO{UserEmail: "ada@example.com"}}, service)
	if recorder.Code != http.StatusOK {
		t.Fatalf("stats status = %d, want 200", recorder.Code)
	}
	stats, _ := decodeBody(t, recorder)["data"].(map[string]any)
	if stats["totalAnalyses"] != float64(2) {
		t.Errorf("stats = %v", stats)
	}

	ctx, recorder = newTestContext()
	FetchHistory(&interfaces.ApplicationContext[dto.HistoryQueryDTO]{Ctx: ctx, Body: &dto.HistoryQueryDTO{UserEmail: "ada@example.com", Page: -1}}, service)
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Errorf("negative page status = %d, want 422", recorder.Code)
	}
}
