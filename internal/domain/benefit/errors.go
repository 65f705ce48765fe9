package benefit

import "social-care-go/pkg/apperr"

var (
	ErrDispensationNotFound = apperr.NotFound("dispensation not found")
	ErrNotPending           = apperr.Conflict("dispensation is no longer pending")
	ErrReasonRequired       = apperr.Validation("a reason is required")
	ErrItemsRequired        = apperr.Validation("at least one benefit item is required")
	ErrInvalidQuantity      = apperr.Validation("item quantity must be positive")
	ErrNegativePrice        = apperr.Validation("item unit price must not be negative")
	ErrBenefitRequired      = apperr.Validation("item benefit is required")
	ErrVersionConflict      = apperr.Conflict("dispensation changed concurrently")
)
