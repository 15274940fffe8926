package history

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"skinsense.io/entities"
	"skinsense.io/infrastructure/database/repository/mongo"
	"skinsense.io/infrastructure/logger"
)

const (
	statsTTL           = time.Minute
	statsCleanupPeriod = 5 * time.Minute
	DefaultPageSize    = 10
	MaxPageSize        = 100
)

// Store is the persistence the history service needs.
type Store interface {
	FindByUserAndHash(ctx context.Context, userEmail, imageHash string) (*entities.History, error)
	Create(ctx context.Context, history entities.History) (*entities.History, error)
	ListByUser(ctx context.Context, userEmail string, skip, limit int64) ([]entities.History, error)
	CountByUser(ctx context.Context, userEmail string) (int64, error)
	FindByID(ctx context.Context, id string) (*entities.History, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	GradeDistribution(ctx context.Context, userEmail string) ([]entities.GradeCount, error)
	Latest(ctx context.Context, userEmail string) (*entities.History, error)
}

type Service struct {
	store Store
	stats *gocache.Cache
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		stats: gocache.New(statsTTL, statsCleanupPeriod),
	}
}

type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type Page struct {
	Items      []entities.History `json:"items"`
	Pagination Pagination         `json:"pagination"`
}

type LatestAnalysis struct {
	ID               string    `json:"id"`
	SkinGrade        string    `json:"skinGrade"`
	OverallCondition string    `json:"overallCondition"`
	Timestamp        time.Time `json:"timestamp"`
}

type Stats struct {
	TotalAnalyses     int64                 `json:"totalAnalyses"`
	GradeDistribution []entities.GradeCount `json:"gradeDistribution"`
	LatestAnalysis    *LatestAnalysis       `json:"latestAnalysis"`
}

// SaveAnalysis stores an analysis unless the user already saved the same
// image. The second return value reports whether a new document was created.
func (s *Service) SaveAnalysis(ctx context.Context, entry entities.History) (*entities.History, bool, error) {
	existing, err := s.store.FindByUserAndHash(ctx, entry.UserEmail, entry.ImageHash)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	entry.Timestamp = time.Now()
	created, err := s.store.Create(ctx, entry)
	if errors.Is(err, mongo.ErrDuplicate) {
		// a concurrent save won the unique index
		existing, err = s.store.FindByUserAndHash(ctx, entry.UserEmail, entry.ImageHash)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	s.stats.Delete(entry.UserEmail)
	logger.Info("analysis saved to history", logger.LoggerOptions{
		Key:  "id",
		Data: created.ID,
	})
	return created, true, nil
}

// ListForUser pages through a user's history, newest first.
func (s *Service) ListForUser(ctx context.Context, userEmail string, page, limit int64) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	items, err := s.store.ListByUser(ctx, userEmail, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountByUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entities.History{}
	}

	return &Page{
		Items: items,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: (total + limit - 1) / limit,
		},
	}, nil
}

// Get returns nil, nil when no entry has the id.
func (s *Service) Get(ctx context.Context, id string) (*entities.History, error) {
	return s.store.FindByID(ctx, id)
}

// Delete removes an entry and reports whether it existed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	entry, err := s.store.FindByID(ctx, id)
	if err != nil || entry == nil {
		return false, err
	}
	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}
	s.stats.Delete(entry.UserEmail)
	return deleted > 0, nil
}

// Stats summarises a user's history. Results are memoised for a minute and
// dropped whenever the user's history changes.
func (s *Service) Stats(ctx context.Context, userEmail string) (*Stats, error) {
	if cached, ok := s.stats.Get(userEmail); ok {
		return cached.(*Stats), nil
	}

	stats := &Stats{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.store.CountByUser(gctx, userEmail)
		stats.TotalAnalyses = total
		return err
	})
	g.Go(func() error {
		distribution, err := s.store.GradeDistribution(gctx, userEmail)
		if distribution == nil {
			distribution = []entities.GradeCount{}
		}
		stats.GradeDistribution = distribution
		return err
	})
	g.Go(func() error {
		latest, err := s.store.Latest(gctx, userEmail)
		if latest != nil {
			stats.LatestAnalysis = &LatestAnalysis{
				ID:               latest.ID,
				SkinGrade:        latest.SkinGrade,
				OverallCondition: latest.OverallCondition,
				Timestamp:        latest.Timestamp,
			}
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.stats.SetDefault(userEmail, stats)
	return stats, nil
}
