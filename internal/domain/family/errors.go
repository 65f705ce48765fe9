package family

import "social-care-go/pkg/apperr"

var (
	ErrFamilyNotFound            = apperr.NotFound("family not found")
	ErrVulnerabilityNotFound     = apperr.NotFound("vulnerability not found")
	ErrMemberAlreadyActive       = apperr.Conflict("person already has an active member in this family")
	ErrMemberNotActive           = apperr.Conflict("person has no active member in this family")
	ErrCannotRemoveResponsible   = apperr.Conflict("responsible member cannot be removed; transfer responsibility first")
	ErrNotAnActiveMember         = apperr.Validation("new responsible must be an active member of the family")
	ErrKinshipRequired           = apperr.Validation("kinship is required")
	ErrVulnerabilityTypeRequired = apperr.Validation("vulnerability type is required")
	ErrAlreadyResolved           = apperr.Conflict("vulnerability already resolved")
	ErrNegativeAmount            = apperr.Validation("amount must not be negative")
	ErrCategoryRequired          = apperr.Validation("category is required")
	ErrVersionConflict           = apperr.Conflict("family changed concurrently")
	ErrCodeGenerationFailed      = apperr.Conflict("family code generation failed")
)
