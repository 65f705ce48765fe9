package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"social-care-go/internal/domain/family"
	"social-care-go/internal/domain/person"
	"social-care-go/internal/domain/settings"
)

// FamilyLookup resolves a referenced family aggregate.
type FamilyLookup interface {
	GetFamily(ctx context.Context, id string) (*family.Family, error)
}

// SettingsProvider supplies the current thresholds.
type SettingsProvider interface {
	Current(ctx context.Context) (*settings.Settings, error)
}

type Service struct {
	repo      Repository
	families  FamilyLookup
	directory person.Directory
	settings  SettingsProvider
	now       func() time.Time
}

func NewService(repo Repository, families FamilyLookup, directory person.Directory, provider SettingsProvider) *Service {
	return &Service{
		repo:      repo,
		families:  families,
		directory: directory,
		settings:  provider,
		now:       time.Now,
	}
}

type CreateInput struct {
	Type            Type
	UnitID          string
	OccurredAt      time.Time
	FamilyID        *string
	ServiceID       *string
	GroupID         *string
	ProgramID       *string
	Notes           *string
	ParticipantIDs  []string
	ProfessionalIDs []string
	ReasonIDs       []string
}

// Create validates and persists a new attendance record.
func (s *Service) Create(ctx context.Context, in CreateInput, actorID string) (*Record, error) {
	if !in.Type.Known() {
		return nil, ErrUnknownType
	}
	if in.UnitID == "" {
		return nil, ErrUnitRequired
	}
	if _, err := s.directory.FindUnit(ctx, in.UnitID); err != nil {
		return nil, err
	}

	r := &Record{
		ID:         uuid.NewString(),
		Type:       in.Type,
		UnitID:     in.UnitID,
		OccurredAt: in.OccurredAt,
		FamilyID:   in.FamilyID,
		ServiceID:  in.ServiceID,
		GroupID:    in.GroupID,
		ProgramID:  in.ProgramID,
		Notes:      in.Notes,
		CreatedBy:  actorID,
	}

	for _, personID := range in.ParticipantIDs {
		if r.hasParticipant(personID) {
			return nil, ErrParticipantExists
		}
		if _, err := s.directory.FindPerson(ctx, personID); err != nil {
			return nil, err
		}
		r.Participants = append(r.Participants, Participant{RecordID: r.ID, PersonID: personID})
	}
	for _, professionalID := range in.ProfessionalIDs {
		if r.hasProfessional(professionalID) {
			return nil, ErrProfessionalExists
		}
		if _, err := s.directory.FindProfessional(ctx, professionalID); err != nil {
			return nil, err
		}
		r.Professionals = append(r.Professionals, Professional{RecordID: r.ID, ProfessionalID: professionalID})
	}
	for _, reasonID := range in.ReasonIDs {
		if r.hasReason(reasonID) {
			return nil, ErrReasonExists
		}
		r.Reasons = append(r.Reasons, Reason{RecordID: r.ID, ReasonID: reasonID})
	}

	if err := s.validate(ctx, r); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

type UpdateInput struct {
	UnitID     *string
	OccurredAt *time.Time
	FamilyID   *string
	ServiceID  *string
	GroupID    *string
	ProgramID  *string
	Notes      *string
}

// UpdateCore mutates the core fields of a persisted record. For individual
// attendances the configured edit window is checked inside the same unit of
// work that writes the change.
func (s *Service) UpdateCore(ctx context.Context, recordID string, in UpdateInput, actorID string) (*Record, error) {
	cfg, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	var result Record
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		r, err := tx.Get(ctx, recordID)
		if err != nil {
			return err
		}

		if err := s.editGate(r, cfg); err != nil {
			return err
		}

		if in.UnitID != nil {
			if _, err := s.directory.FindUnit(ctx, *in.UnitID); err != nil {
				return err
			}
			r.UnitID = *in.UnitID
		}
		if in.OccurredAt != nil {
			r.OccurredAt = *in.OccurredAt
		}
		if in.FamilyID != nil {
			r.FamilyID = in.FamilyID
		}
		if in.ServiceID != nil {
			r.ServiceID = in.ServiceID
		}
		if in.GroupID != nil {
			r.GroupID = in.GroupID
		}
		if in.ProgramID != nil {
			r.ProgramID = in.ProgramID
		}
		if in.Notes != nil {
			r.Notes = in.Notes
		}
		if actorID != "" {
			r.UpdatedBy = &actorID
		}

		if err := s.validate(ctx, r); err != nil {
			return err
		}

		if err := tx.Save(ctx, r); err != nil {
			return err
		}

		result = *r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// AddParticipant appends a participant. Additions stay allowed after the
// edit window; duplicates and a second participant on an individual
// attendance are rejected.
func (s *Service) AddParticipant(ctx context.Context, recordID, personID, actorID string) (*Record, error) {
	if _, err := s.directory.FindPerson(ctx, personID); err != nil {
		return nil, err
	}

	var result Record
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		r, err := tx.Get(ctx, recordID)
		if err != nil {
			return err
		}

		if r.hasParticipant(personID) {
			return ErrParticipantExists
		}
		if r.Type == TypeIndividual && len(r.Participants) >= 1 {
			return ErrExactlyOneParticipant
		}

		r.Participants = append(r.Participants, Participant{RecordID: r.ID, PersonID: personID})
		if actorID != "" {
			r.UpdatedBy = &actorID
		}

		if err := s.validate(ctx, r); err != nil {
			return err
		}

		if err := tx.Save(ctx, r); err != nil {
			return err
		}

		result = *r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) AddProfessional(ctx context.Context, recordID, professionalID, actorID string) (*Record, error) {
	if _, err := s.directory.FindProfessional(ctx, professionalID); err != nil {
		return nil, err
	}

	var result Record
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		r, err := tx.Get(ctx, recordID)
		if err != nil {
			return err
		}

		if r.hasProfessional(professionalID) {
			return ErrProfessionalExists
		}

		r.Professionals = append(r.Professionals, Professional{RecordID: r.ID, ProfessionalID: professionalID})
		if actorID != "" {
			r.UpdatedBy = &actorID
		}

		if err := tx.Save(ctx, r); err != nil {
			return err
		}

		result = *r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) AddReason(ctx context.Context, recordID, reasonID, actorID string) (*Record, error) {
	var result Record
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		r, err := tx.Get(ctx, recordID)
		if err != nil {
			return err
		}

		if r.hasReason(reasonID) {
			return ErrReasonExists
		}

		r.Reasons = append(r.Reasons, Reason{RecordID: r.ID, ReasonID: reasonID})
		if actorID != "" {
			r.UpdatedBy = &actorID
		}

		if err := tx.Save(ctx, r); err != nil {
			return err
		}

		result = *r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) validate(ctx context.Context, r *Record) error {
	cfg, err := s.settings.Current(ctx)
	if err != nil {
		return err
	}

	var familyMembers map[string]struct{}
	if r.Type == TypeColetivo && cfg.RestrictCollectiveToFamily && r.FamilyID != nil {
		f, err := s.families.GetFamily(ctx, *r.FamilyID)
		if err != nil {
			return err
		}
		familyMembers = f.ActiveMemberPersonIDs()
	} else if r.Type == TypeFamiliar && r.FamilyID != nil {
		if _, err := s.families.GetFamily(ctx, *r.FamilyID); err != nil {
			return err
		}
	}

	return validateComposition(r, cfg.RestrictCollectiveToFamily, familyMembers)
}

// The edit window applies to individual attendances only; other types are
// not time-gated.
func (s *Service) editGate(r *Record, cfg *settings.Settings) error {
	if r.Type != TypeIndividual {
		return nil
	}
	if s.now().After(r.CreatedAt.Add(cfg.EditWindow())) {
		return ErrEditWindowElapsed
	}
	return nil
}
