package attendance

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	Get(ctx context.Context, id string) (*Record, error)
	Create(ctx context.Context, r *Record) error
	// Save persists the record only if the stored version still matches
	// r.Version, then bumps it. A stale version returns ErrVersionConflict.
	Save(ctx context.Context, r *Record) error
	List(ctx context.Context, filter ListFilter) ([]Record, error)
}
