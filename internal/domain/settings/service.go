package settings

import (
	"context"
	"time"
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo Repository, cache Cache, cacheTTL time.Duration) *Service {
	if cache == nil {
		cache = NoopCache()
	}
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// Current returns the active settings, materializing defaults on first use.
func (s *Service) Current(ctx context.Context) (*Settings, error) {
	if cached, ok := s.cache.Get(); ok {
		return cached, nil
	}

	current, err := s.repo.GetOrCreate(ctx, Defaults())
	if err != nil {
		return nil, err
	}

	s.cache.Set(current, s.cacheTTL)
	return current, nil
}

// Update applies the non-nil patch fields, stamps the actor and
// invalidates the cache.
func (s *Service) Update(ctx context.Context, patch UpdatePatch, actorID string) (*Settings, error) {
	if patch.empty() {
		return nil, ErrEmptyPatch
	}
	if patch.IndividualEditWindowHours != nil && *patch.IndividualEditWindowHours <= 0 {
		return nil, ErrInvalidEditWindow
	}
	if patch.PovertyLine != nil && patch.PovertyLine.IsNegative() {
		return nil, ErrNegativeThreshold
	}
	if patch.ExtremePovertyLine != nil && patch.ExtremePovertyLine.IsNegative() {
		return nil, ErrNegativeThreshold
	}

	current, err := s.repo.GetOrCreate(ctx, Defaults())
	if err != nil {
		return nil, err
	}

	if patch.IndividualEditWindowHours != nil {
		current.IndividualEditWindowHours = *patch.IndividualEditWindowHours
	}
	if patch.PovertyLine != nil {
		current.PovertyLine = *patch.PovertyLine
	}
	if patch.ExtremePovertyLine != nil {
		current.ExtremePovertyLine = *patch.ExtremePovertyLine
	}
	if patch.RestrictCollectiveToFamily != nil {
		current.RestrictCollectiveToFamily = *patch.RestrictCollectiveToFamily
	}
	if patch.DuplicateBenefitAlert != nil {
		current.DuplicateBenefitAlert = *patch.DuplicateBenefitAlert
	}
	if actorID != "" {
		current.UpdatedBy = &actorID
	}

	if err := s.repo.Save(ctx, current); err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return current, nil
}
