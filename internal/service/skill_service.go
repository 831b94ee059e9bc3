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

const skillListCacheKey = "skills:list"

// SkillService handles skill CRUD with a read-through cache on the public
// listing.
type SkillService struct {
	skills   repository.SkillRepository
	cache    *persistence.Redis
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewSkillService builds the service.
func NewSkillService(skills repository.SkillRepository, cache *persistence.Redis, cacheTTL time.Duration, logger *zap.Logger) *SkillService {
	return &SkillService{skills: skills, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// SkillInput carries validated fields for create/update.
type SkillInput struct {
	Name     string
	Level    int
	Category string
}

// Create stores a new skill and invalidates the listing cache.
func (s *SkillService) Create(ctx context.Context, input SkillInput) (*domain.Skill, error) {
	skill := &domain.Skill{Name: input.Name, Level: input.Level, Category: input.Category}
	if err := s.skills.Create(ctx, skill); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return skill, nil
}

// Get returns one skill.
func (s *SkillService) Get(ctx context.Context, id string) (*domain.Skill, error) {
	skill, err := s.skills.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("skill", map[string]any{"id": id})
		}
		return nil, err
	}
	return skill, nil
}

// List returns all skills, served from cache when possible.
func (s *SkillService) List(ctx context.Context) ([]*domain.Skill, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	skills, err := s.skills.List(ctx)
	if err != nil {
		return nil, err
	}
	s.storeCache(ctx, skills)
	return skills, nil
}

// Update modifies a skill and invalidates the listing cache.
func (s *SkillService) Update(ctx context.Context, id string, input SkillInput) (*domain.Skill, error) {
	skill, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	skill.Name = input.Name
	skill.Level = input.Level
	skill.Category = input.Category
	if err := s.skills.Update(ctx, skill); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return skill, nil
}

// Delete removes a skill and invalidates the listing cache.
func (s *SkillService) Delete(ctx context.Context, id string) (*domain.Skill, error) {
	skill, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.skills.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return skill, nil
}

func (s *SkillService) fromCache(ctx context.Context) ([]*domain.Skill, bool) {
	var skills []*domain.Skill
	if !s.cache.GetJSON(ctx, skillListCacheKey, &skills) {
		return nil, false
	}
	return skills, true
}

func (s *SkillService) storeCache(ctx context.Context, skills []*domain.Skill) {
	if err := s.cache.SetJSON(ctx, skillListCacheKey, skills, s.cacheTTL); err != nil {
		s.logger.Debug("skill cache write failed", zap.Error(err))
	}
}

func (s *SkillService) invalidateCache(ctx context.Context) {
	if err := s.cache.Drop(ctx, skillListCacheKey); err != nil {
		s.logger.Debug("skill cache invalidation failed", zap.Error(err))
	}
}
