package benefit

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	Get(ctx context.Context, id string) (*Dispensation, error)
	Create(ctx context.Context, d *Dispensation) error
	// Save persists the record only if the stored version still matches
	// d.Version, then bumps it. A stale version returns ErrVersionConflict.
	Save(ctx context.Context, d *Dispensation) error
	List(ctx context.Context, filter ListFilter) ([]Dispensation, error)
	// HasRecentForBenefit reports whether the person already received one
	// of the benefits since the given time, feeding the duplicate alert.
	HasRecentForBenefit(ctx context.Context, personID string, benefitIDs []string, since time.Time) (bool, error)
}
