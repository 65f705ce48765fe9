package person

import "social-care-go/pkg/apperr"

// Missing directory references are caller-fixable input problems, so they
// classify as validation rather than not-found.
var (
	ErrPersonNotFound       = apperr.Validation("person not found")
	ErrProfessionalNotFound = apperr.Validation("professional not found")
	ErrUnitNotFound         = apperr.Validation("unit not found")
)
