package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/recruitbase/assessment-api/internal/assessments/domain"
	"github.com/recruitbase/assessment-api/internal/assessments/repository"
)

// Store is the persistence boundary the service depends on. The postgres
// repository is the production implementation; tests substitute an
// in-memory one.
type Store interface {
	GetByID(ctx context.Context, id int) (*domain.Assessment, error)
	GetPaged(ctx context.Context, f domain.Filter) (domain.PagedResult[domain.Assessment], error)
	Create(ctx context.Context, a domain.Assessment) (*domain.Assessment, error)
	Update(ctx context.Context, a domain.Assessment) (*domain.Assessment, error)
	Delete(ctx context.Context, id int) (bool, error)
	Exists(ctx context.Context, id int) (bool, error)
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

// AssessmentService executes one operation per call against the store:
// create, update, delete, get-by-id, paged query, exists. It owns the
// server-side timestamps; callers can never set them.
type AssessmentService struct {
	store Store
	cache *repository.Cache // optional, nil disables caching
	log   *zap.Logger
	now   func() time.Time
}

func NewAssessmentService(store Store, cache *repository.Cache, log *zap.Logger) *AssessmentService {
	return &AssessmentService{
		store: store,
		cache: cache,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create persists a new assessment with both timestamps stamped to now.
func (s *AssessmentService) Create(ctx context.Context, in domain.AssessmentInput) (*domain.Assessment, error) {
	var a domain.Assessment
	in.Apply(&a)

	now := s.now()
	a.CreatedDate = now
	a.UpdatedDate = now

	created, err := s.store.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	s.log.Info("assessment created", zap.Int("id", created.ID))
	return created, nil
}

// Update overlays every input field onto the stored record, keeping id and
// created date, and stamps the update time. Missing id → domain.ErrNotFound.
func (s *AssessmentService) Update(ctx context.Context, id int, in domain.AssessmentInput) (*domain.Assessment, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Apply(existing)
	existing.UpdatedDate = s.now()

	updated, err := s.store.Update(ctx, *existing)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	s.log.Info("assessment updated", zap.Int("id", id))
	return updated, nil
}

// Delete removes the record and reports whether it existed. A missing id is
// not an error.
func (s *AssessmentService) Delete(ctx context.Context, id int) (bool, error) {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		if s.cache != nil {
			s.cache.Invalidate(ctx, id)
		}
		s.log.Info("assessment deleted", zap.Int("id", id))
	}
	return deleted, nil
}

// GetByID serves from cache when possible, loading and caching on a miss.
func (s *AssessmentService) GetByID(ctx context.Context, id int) (*domain.Assessment, error) {
	if s.cache != nil {
		if a, ok := s.cache.Get(ctx, id); ok {
			return a, nil
		}
	}

	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, a)
	}
	return a, nil
}

// GetPaged delegates the filtered, paged query to the store.
func (s *AssessmentService) GetPaged(ctx context.Context, f domain.Filter) (domain.PagedResult[domain.Assessment], error) {
	return s.store.GetPaged(ctx, f)
}

// Exists reports whether the id has a stored record.
func (s *AssessmentService) Exists(ctx context.Context, id int) (bool, error) {
	return s.store.Exists(ctx, id)
}

// CloseExpired transitions open assessments past their closing date to
// Closed. Run by the scheduler.
func (s *AssessmentService) CloseExpired(ctx context.Context) (int64, error) {
	return s.store.CloseExpired(ctx, s.now())
}
