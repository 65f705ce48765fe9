package settings

import "social-care-go/pkg/apperr"

var (
	ErrEmptyPatch        = apperr.Validation("no settings fields to update")
	ErrInvalidEditWindow = apperr.Validation("edit window hours must be positive")
	ErrNegativeThreshold = apperr.Validation("poverty line must not be negative")
	ErrVersionConflict   = apperr.Conflict("settings changed concurrently")
)
