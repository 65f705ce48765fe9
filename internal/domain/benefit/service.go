package benefit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"social-care-go/internal/domain/person"
	"social-care-go/internal/domain/settings"
)

// duplicateAlertLookback bounds how far back the duplicate-benefit alert
// looks for an earlier dispensation of the same benefit.
const duplicateAlertLookback = 30 * 24 * time.Hour

// SettingsProvider supplies the current thresholds.
type SettingsProvider interface {
	Current(ctx context.Context) (*settings.Settings, error)
}

type Service struct {
	repo      Repository
	directory person.Directory
	settings  SettingsProvider
	now       func() time.Time
}

func NewService(repo Repository, directory person.Directory, provider SettingsProvider) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		settings:  provider,
		now:       time.Now,
	}
}

type ItemInput struct {
	BenefitID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

type CreateInput struct {
	PersonID       string
	FamilyID       *string
	UnitID         string
	ProfessionalID string
	Items          []ItemInput
}

// CreateResult carries the new dispensation plus the non-blocking
// duplicate alert when the configuration enables it.
type CreateResult struct {
	Dispensation   *Dispensation
	DuplicateAlert bool
}

// Create opens a dispensation in PENDING with computed line totals.
func (s *Service) Create(ctx context.Context, in CreateInput, actorID string) (*CreateResult, error) {
	if len(in.Items) == 0 {
		return nil, ErrItemsRequired
	}
	if _, err := s.directory.FindPerson(ctx, in.PersonID); err != nil {
		return nil, err
	}
	if _, err := s.directory.FindUnit(ctx, in.UnitID); err != nil {
		return nil, err
	}
	if _, err := s.directory.FindProfessional(ctx, in.ProfessionalID); err != nil {
		return nil, err
	}

	d := &Dispensation{
		ID:             uuid.NewString(),
		Situation:      SituationPending,
		PersonID:       in.PersonID,
		FamilyID:       in.FamilyID,
		UnitID:         in.UnitID,
		ProfessionalID: in.ProfessionalID,
		CreatedBy:      actorID,
	}

	benefitIDs := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		if item.BenefitID == "" {
			return nil, ErrBenefitRequired
		}
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if item.UnitPrice.IsNegative() {
			return nil, ErrNegativePrice
		}
		benefitIDs = append(benefitIDs, item.BenefitID)
		d.Items = append(d.Items, Item{
			ID:             uuid.NewString(),
			DispensationID: d.ID,
			BenefitID:      item.BenefitID,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			Total:          item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)).Round(2),
		})
	}

	cfg, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	duplicate := false
	if cfg.DuplicateBenefitAlert {
		duplicate, err = s.repo.HasRecentForBenefit(ctx, in.PersonID, benefitIDs, s.now().Add(-duplicateAlertLookback))
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	return &CreateResult{Dispensation: d, DuplicateAlert: duplicate}, nil
}

// Authorize moves a pending dispensation to AUTHORIZED.
func (s *Service) Authorize(ctx context.Context, id, actorID string) (*Dispensation, error) {
	return s.transition(ctx, id, func(d *Dispensation) error {
		at := s.now()
		d.Situation = SituationAuthorized
		d.AuthorizedAt = &at
		d.AuthorizedBy = &actorID
		return nil
	})
}

// Reject moves a pending dispensation to REJECTED with a mandatory reason.
func (s *Service) Reject(ctx context.Context, id, actorID, reason string) (*Dispensation, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	return s.transition(ctx, id, func(d *Dispensation) error {
		at := s.now()
		d.Situation = SituationRejected
		d.RejectedAt = &at
		d.RejectedBy = &actorID
		d.RejectReason = &reason
		return nil
	})
}

// Cancel moves a pending dispensation to CANCELLED with a mandatory reason.
func (s *Service) Cancel(ctx context.Context, id, actorID, reason string) (*Dispensation, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	return s.transition(ctx, id, func(d *Dispensation) error {
		at := s.now()
		d.Situation = SituationCancelled
		d.CancelledAt = &at
		d.CancelledBy = &actorID
		d.CancelReason = &reason
		return nil
	})
}

func (s *Service) Get(ctx context.Context, id string) (*Dispensation, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Dispensation, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) transition(ctx context.Context, id string, apply func(*Dispensation) error) (*Dispensation, error) {
	var result Dispensation
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		d, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if !d.Pending() {
			return ErrNotPending
		}
		if err := apply(d); err != nil {
			return err
		}
		if err := tx.Save(ctx, d); err != nil {
			return err
		}
		result = *d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
