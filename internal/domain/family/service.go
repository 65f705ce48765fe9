package family

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"social-care-go/internal/domain/person"
)

const (
	familyCodeLength   = 8
	familyCodeAttempts = 10
)

type Service struct {
	repo      Repository
	directory person.Directory
	now       func() time.Time
}

func NewService(repo Repository, directory person.Directory) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		now:       time.Now,
	}
}

type CreateFamilyInput struct {
	ResponsiblePersonID string
	Kinship             string
	Address             *string
	DwellingType        *string
}

// CreateFamily registers a new family with its responsible member.
func (s *Service) CreateFamily(ctx context.Context, in CreateFamilyInput) (*Family, error) {
	if _, err := s.directory.FindPerson(ctx, in.ResponsiblePersonID); err != nil {
		return nil, err
	}

	kinship := strings.TrimSpace(in.Kinship)
	if kinship == "" {
		kinship = "responsible"
	}

	var result Family
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		code, err := generateUniqueCode(ctx, tx)
		if err != nil {
			return err
		}

		f := Family{
			ID:            uuid.NewString(),
			Code:          code,
			ResponsibleID: in.ResponsiblePersonID,
			Address:       in.Address,
			DwellingType:  in.DwellingType,
			Members: []Member{{
				ID:            uuid.NewString(),
				PersonID:      in.ResponsiblePersonID,
				Kinship:       kinship,
				IsResponsible: true,
				EntryDate:     s.now(),
			}},
		}
		f.Members[0].FamilyID = f.ID

		if err := tx.CreateFamily(ctx, &f); err != nil {
			return err
		}

		result = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) GetFamily(ctx context.Context, id string) (*Family, error) {
	return s.repo.GetFamily(ctx, id)
}

func (s *Service) GetFamilyByCode(ctx context.Context, code string) (*Family, error) {
	return s.repo.GetFamilyByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

// AddMember appends a new active member to the family. A person with an
// active member record in the same family cannot be added twice.
func (s *Service) AddMember(ctx context.Context, familyID, personID, kinship, actorID string) (*Family, error) {
	if _, err := s.directory.FindPerson(ctx, personID); err != nil {
		return nil, err
	}
	kinship = strings.TrimSpace(kinship)
	if kinship == "" {
		return nil, ErrKinshipRequired
	}

	var result Family
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		f, err := tx.GetFamily(ctx, familyID)
		if err != nil {
			return err
		}

		if f.activeMemberOf(personID) != nil {
			return ErrMemberAlreadyActive
		}

		f.Members = append(f.Members, Member{
			ID:        uuid.NewString(),
			FamilyID:  f.ID,
			PersonID:  personID,
			Kinship:   kinship,
			EntryDate: s.now(),
		})

		if err := tx.SaveFamily(ctx, f); err != nil {
			return err
		}

		result = *f
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// RemoveMember closes the person's active member record. The responsible
// member must be replaced through TransferResponsibility before removal.
func (s *Service) RemoveMember(ctx context.Context, familyID, personID, reason, actorID string) (*Family, error) {
	var result Family
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		f, err := tx.GetFamily(ctx, familyID)
		if err != nil {
			return err
		}

		member := f.activeMemberOf(personID)
		if member == nil {
			return ErrMemberNotActive
		}
		if member.IsResponsible {
			return ErrCannotRemoveResponsible
		}

		exitedAt := s.now()
		member.ExitDate = &exitedAt
		if reason = strings.TrimSpace(reason); reason != "" {
			member.ExitReason = &reason
		}

		if err := tx.SaveFamily(ctx, f); err != nil {
			return err
		}

		result = *f
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// TransferResponsibility moves the responsible flag to another active
// member and repoints the family. Both flag flips and the family pointer
// change land in the same unit of work.
func (s *Service) TransferResponsibility(ctx context.Context, familyID, newResponsiblePersonID, actorID string) (*Family, error) {
	var result Family
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		f, err := tx.GetFamily(ctx, familyID)
		if err != nil {
			return err
		}

		next := f.activeMemberOf(newResponsiblePersonID)
		if next == nil {
			return ErrNotAnActiveMember
		}

		if prev := f.responsibleMember(); prev != nil {
			prev.IsResponsible = false
		}
		next.IsResponsible = true
		f.ResponsibleID = newResponsiblePersonID

		if err := tx.SaveFamily(ctx, f); err != nil {
			return err
		}

		result = *f
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

type AddIncomeInput struct {
	PersonID   *string
	CategoryID string
	Amount     decimal.Decimal
}

func (s *Service) AddIncome(ctx context.Context, familyID string, in AddIncomeInput) (*Income, error) {
	if in.CategoryID == "" {
		return nil, ErrCategoryRequired
	}
	if in.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	f, err := s.repo.GetFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if in.PersonID != nil && f.activeMemberOf(*in.PersonID) == nil {
		return nil, ErrMemberNotActive
	}

	income := Income{
		ID:         uuid.NewString(),
		FamilyID:   f.ID,
		PersonID:   in.PersonID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
	}
	if err := s.repo.AddIncome(ctx, &income); err != nil {
		return nil, err
	}
	return &income, nil
}

type AddExpenseInput struct {
	CategoryID string
	Amount     decimal.Decimal
}

func (s *Service) AddExpense(ctx context.Context, familyID string, in AddExpenseInput) (*Expense, error) {
	if in.CategoryID == "" {
		return nil, ErrCategoryRequired
	}
	if in.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	f, err := s.repo.GetFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}

	expense := Expense{
		ID:         uuid.NewString(),
		FamilyID:   f.ID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
	}
	if err := s.repo.AddExpense(ctx, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

type AttachVulnerabilityInput struct {
	TypeID         string
	IdentifiedDate time.Time
	ProfessionalID *string
	Notes          *string
}

// AttachVulnerability records a vulnerability for the family. Duplicate
// active vulnerabilities of the same type are intentionally allowed.
func (s *Service) AttachVulnerability(ctx context.Context, familyID string, in AttachVulnerabilityInput) (*Vulnerability, error) {
	if in.TypeID == "" {
		return nil, ErrVulnerabilityTypeRequired
	}
	if in.ProfessionalID != nil {
		if _, err := s.directory.FindProfessional(ctx, *in.ProfessionalID); err != nil {
			return nil, err
		}
	}

	f, err := s.repo.GetFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}

	identified := in.IdentifiedDate
	if identified.IsZero() {
		identified = s.now()
	}

	v := Vulnerability{
		ID:             uuid.NewString(),
		FamilyID:       f.ID,
		TypeID:         in.TypeID,
		IdentifiedDate: identified,
		ProfessionalID: in.ProfessionalID,
		Notes:          in.Notes,
	}
	if err := s.repo.AddVulnerability(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ResolveVulnerability closes an open vulnerability record.
func (s *Service) ResolveVulnerability(ctx context.Context, vulnerabilityID string, resolvedDate time.Time) (*Vulnerability, error) {
	var result Vulnerability
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		v, err := tx.GetVulnerability(ctx, vulnerabilityID)
		if err != nil {
			return err
		}
		if v.Resolved() {
			return ErrAlreadyResolved
		}

		if resolvedDate.IsZero() {
			resolvedDate = s.now()
		}
		v.ResolvedDate = &resolvedDate

		if err := tx.SaveVulnerability(ctx, v); err != nil {
			return err
		}

		result = *v
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func generateUniqueCode(ctx context.Context, repo Repository) (string, error) {
	for i := 0; i < familyCodeAttempts; i++ {
		code, err := generateCode(familyCodeLength)
		if err != nil {
			return "", err
		}
		taken, err := repo.IsCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGenerationFailed
}

func generateCode(length int) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	max := big.NewInt(int64(len(alphabet)))

	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		builder.WriteByte(alphabet[n.Int64()])
	}

	return builder.String(), nil
}
