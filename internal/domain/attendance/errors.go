package attendance

import "social-care-go/pkg/apperr"

var (
	ErrRecordNotFound             = apperr.NotFound("attendance record not found")
	ErrUnknownType                = apperr.Validation("unknown attendance type")
	ErrUnitRequired               = apperr.Validation("unit is required")
	ErrOccurredAtRequired         = apperr.Validation("occurrence time is required")
	ErrProfessionalRequired       = apperr.Validation("at least one professional is required")
	ErrExactlyOneParticipant      = apperr.Validation("individual attendance requires exactly one participant")
	ErrFamilyRequired             = apperr.Validation("family is required for familiar attendance")
	ErrGroupRequired              = apperr.Validation("group is required for group attendance")
	ErrParticipantRequired        = apperr.Validation("at least one participant is required")
	ErrParticipantNotFamilyMember = apperr.Validation("all participants must be active members of the family")
	ErrParticipantExists          = apperr.Conflict("participant already added")
	ErrProfessionalExists         = apperr.Conflict("professional already added")
	ErrReasonExists               = apperr.Conflict("reason already added")
	ErrEditWindowElapsed          = apperr.Conflict("edit window for this attendance has elapsed")
	ErrVersionConflict            = apperr.Conflict("attendance record changed concurrently")
)
