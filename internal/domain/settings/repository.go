package settings

import "context"

type Repository interface {
	// GetOrCreate returns the settings row, inserting defaults atomically
	// when none exists yet.
	GetOrCreate(ctx context.Context, defaults Settings) (*Settings, error)
	// Save persists the row only if its stored version still matches
	// current.Version, then bumps the version. A stale version returns
	// ErrVersionConflict.
	Save(ctx context.Context, current *Settings) error
}
