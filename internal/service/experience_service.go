package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-portal-service/internal/domain"
	"github.com/spec-kit/admin-portal-service/internal/persistence"
	"github.com/spec-kit/admin-portal-service/internal/repository"
	apperrors "github.com/spec-kit/admin-portal-service/pkg/util"
)

const experienceListCacheKey = "experiences:list"

// ExperienceService handles experience CRUD with a read-through cache on the
// public listing.
type ExperienceService struct {
	experiences repository.ExperienceRepository
	cache       *persistence.Redis
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewExperienceService builds the service.
func NewExperienceService(experiences repository.ExperienceRepository, cache *persistence.Redis, cacheTTL time.Duration, logger *zap.Logger) *ExperienceService {
	return &ExperienceService{experiences: experiences, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// ExperienceInput carries validated fields for create/update.
type ExperienceInput struct {
	Title       string
	Company     string
	Description string
	StartedAt   time.Time
	EndedAt     *time.Time
}

// Create stores a new experience and invalidates the listing cache.
func (s *ExperienceService) Create(ctx context.Context, input ExperienceInput) (*domain.Experience, error) {
	experience := &domain.Experience{
		Title:       input.Title,
		Company:     input.Company,
		Description: input.Description,
		StartedAt:   input.StartedAt,
		EndedAt:     input.EndedAt,
	}
	if err := s.experiences.Create(ctx, experience); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return experience, nil
}

// Get returns one experience.
func (s *ExperienceService) Get(ctx context.Context, id string) (*domain.Experience, error) {
	experience, err := s.experiences.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("experience", map[string]any{"id": id})
		}
		return nil, err
	}
	return experience, nil
}

// List returns all experiences, served from cache when possible.
func (s *ExperienceService) List(ctx context.Context) ([]*domain.Experience, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	experiences, err := s.experiences.List(ctx)
	if err != nil {
		return nil, err
	}
	s.storeCache(ctx, experiences)
	return experiences, nil
}

// Update modifies an experience and invalidates the listing cache.
func (s *ExperienceService) Update(ctx context.Context, id string, input ExperienceInput) (*domain.Experience, error) {
	experience, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	experience.Title = input.Title
	experience.Company = input.Company
	experience.Description = input.Description
	experience.StartedAt = input.StartedAt
	experience.EndedAt = input.EndedAt
	if err := s.experiences.Update(ctx, experience); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return experience, nil
}

// Delete removes an experience and invalidates the listing cache.
func (s *ExperienceService) Delete(ctx context.Context, id string) (*domain.Experience, error) {
	experience, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.experiences.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return experience, nil
}

func (s *ExperienceService) fromCache(ctx context.Context) ([]*domain.Experience, bool) {
	var experiences []*domain.Experience
	if !s.cache.GetJSON(ctx, experienceListCacheKey, &experiences) {
		return nil, false
	}
	return experiences, true
}

func (s *ExperienceService) storeCache(ctx context.Context, experiences []*domain.Experience) {
	if err := s.cache.SetJSON(ctx, experienceListCacheKey, experiences, s.cacheTTL); err != nil {
		s.logger.Debug("experience cache write failed", zap.Error(err))
	}
}

func (s *ExperienceService) invalidateCache(ctx context.Context) {
	if err := s.cache.Drop(ctx, experienceListCacheKey); err != nil {
		s.logger.Debug("experience cache invalidation failed", zap.Error(err))
	}
}
