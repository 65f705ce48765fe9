package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type fakeSettingsRepo struct {
	row         *Settings
	getCalls    int
	saveCalls   int
	staleOnSave bool
}

func (r *fakeSettingsRepo) GetOrCreate(ctx context.Context, defaults Settings) (*Settings, error) {
	r.getCalls++
	if r.row == nil {
		created := defaults
		r.row = &created
	}
	copied := *r.row
	return &copied, nil
}

func (r *fakeSettingsRepo) Save(ctx context.Context, current *Settings) error {
	r.saveCalls++
	if r.staleOnSave {
		return ErrVersionConflict
	}
	current.Version++
	copied := *current
	r.row = &copied
	return nil
}

type fakeCache struct {
	value       *Settings
	sets        int
	invalidates int
}

func (c *fakeCache) Get() (*Settings, bool) {
	if c.value == nil {
		return nil, false
	}
	return c.value, true
}

func (c *fakeCache) Set(s *Settings, ttl time.Duration) {
	c.sets++
	c.value = s
}

func (c *fakeCache) Invalidate() {
	c.invalidates++
	c.value = nil
}

func TestCurrentMaterializesDefaults(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewService(repo, nil, time.Minute)

	current, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if current.IndividualEditWindowHours != 24 {
		t.Fatalf("expected default window 24, got %d", current.IndividualEditWindowHours)
	}
	if !current.PovertyLine.Equal(decimal.NewFromInt(218)) {
		t.Fatalf("expected default poverty line 218, got %s", current.PovertyLine)
	}
	if !current.RestrictCollectiveToFamily {
		t.Fatalf("expected collective restriction enabled by default")
	}
}

func TestCurrentUsesCache(t *testing.T) {
	repo := &fakeSettingsRepo{}
	cache := &fakeCache{}
	svc := NewService(repo, cache, time.Minute)

	if _, err := svc.Current(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Current(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.getCalls != 1 {
		t.Fatalf("expected one repository read, got %d", repo.getCalls)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache set, got %d", cache.sets)
	}
}

func TestUpdatePatchesFieldsAndInvalidatesCache(t *testing.T) {
	repo := &fakeSettingsRepo{}
	cache := &fakeCache{}
	svc := NewService(repo, cache, time.Minute)

	hours := 48
	flag := false
	updated, err := svc.Update(context.Background(), UpdatePatch{
		IndividualEditWindowHours:  &hours,
		RestrictCollectiveToFamily: &flag,
	}, "prof-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.IndividualEditWindowHours != 48 {
		t.Fatalf("expected window 48, got %d", updated.IndividualEditWindowHours)
	}
	if updated.RestrictCollectiveToFamily {
		t.Fatalf("expected restriction disabled")
	}
	if !updated.DuplicateBenefitAlert {
		t.Fatalf("expected untouched field to keep default")
	}
	if updated.UpdatedBy == nil || *updated.UpdatedBy != "prof-1" {
		t.Fatalf("expected actor stamp, got %v", updated.UpdatedBy)
	}
	if cache.invalidates != 1 {
		t.Fatalf("expected cache invalidation, got %d", cache.invalidates)
	}
}

func TestUpdateEmptyPatch(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, nil, time.Minute)
	_, err := svc.Update(context.Background(), UpdatePatch{}, "prof-1")
	if !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("expected ErrEmptyPatch, got %v", err)
	}
}

func TestUpdateRejectsInvalidValues(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, nil, time.Minute)

	zero := 0
	if _, err := svc.Update(context.Background(), UpdatePatch{IndividualEditWindowHours: &zero}, ""); !errors.Is(err, ErrInvalidEditWindow) {
		t.Fatalf("expected ErrInvalidEditWindow, got %v", err)
	}

	negative := decimal.NewFromInt(-1)
	if _, err := svc.Update(context.Background(), UpdatePatch{PovertyLine: &negative}, ""); !errors.Is(err, ErrNegativeThreshold) {
		t.Fatalf("expected ErrNegativeThreshold, got %v", err)
	}
}

func TestUpdateSurfacesVersionConflict(t *testing.T) {
	repo := &fakeSettingsRepo{staleOnSave: true}
	svc := NewService(repo, nil, time.Minute)

	hours := 12
	_, err := svc.Update(context.Background(), UpdatePatch{IndividualEditWindowHours: &hours}, "")
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}
