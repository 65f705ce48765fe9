package benefit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"social-care-go/internal/domain/person"
	"social-care-go/internal/domain/settings"
)

type fakeBenefitRepo struct {
	dispensations map[string]*Dispensation
	recent        bool
}

func newFakeBenefitRepo() *fakeBenefitRepo {
	return &fakeBenefitRepo{dispensations: make(map[string]*Dispensation)}
}

func (r *fakeBenefitRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeBenefitRepo) Get(ctx context.Context, id string) (*Dispensation, error) {
	d, ok := r.dispensations[id]
	if !ok {
		return nil, ErrDispensationNotFound
	}
	copied := *d
	copied.Items = append([]Item(nil), d.Items...)
	return &copied, nil
}

func (r *fakeBenefitRepo) Create(ctx context.Context, d *Dispensation) error {
	copied := *d
	r.dispensations[d.ID] = &copied
	return nil
}

func (r *fakeBenefitRepo) Save(ctx context.Context, d *Dispensation) error {
	stored, ok := r.dispensations[d.ID]
	if !ok {
		return ErrDispensationNotFound
	}
	if stored.Version != d.Version {
		return ErrVersionConflict
	}
	d.Version++
	copied := *d
	r.dispensations[d.ID] = &copied
	return nil
}

func (r *fakeBenefitRepo) List(ctx context.Context, filter ListFilter) ([]Dispensation, error) {
	var result []Dispensation
	for _, d := range r.dispensations {
		if filter.Situation != nil && d.Situation != *filter.Situation {
			continue
		}
		result = append(result, *d)
	}
	return result, nil
}

func (r *fakeBenefitRepo) HasRecentForBenefit(ctx context.Context, personID string, benefitIDs []string, since time.Time) (bool, error) {
	return r.recent, nil
}

type fakeDirectory struct{}

func (fakeDirectory) FindPerson(ctx context.Context, id string) (*person.Person, error) {
	if id == "missing" {
		return nil, person.ErrPersonNotFound
	}
	return &person.Person{ID: id}, nil
}

func (fakeDirectory) FindProfessional(ctx context.Context, id string) (*person.Professional, error) {
	return &person.Professional{ID: id}, nil
}

func (fakeDirectory) FindUnit(ctx context.Context, id string) (*person.Unit, error) {
	return &person.Unit{ID: id}, nil
}

func (fakeDirectory) CreatePerson(ctx context.Context, p *person.Person) error             { return nil }
func (fakeDirectory) CreateProfessional(ctx context.Context, p *person.Professional) error { return nil }
func (fakeDirectory) CreateUnit(ctx context.Context, u *person.Unit) error                 { return nil }

type fakeSettings struct {
	current settings.Settings
}

func (s *fakeSettings) Current(ctx context.Context) (*settings.Settings, error) {
	copied := s.current
	return &copied, nil
}

func newTestService() (*Service, *fakeBenefitRepo, *fakeSettings) {
	repo := newFakeBenefitRepo()
	cfg := &fakeSettings{current: settings.Defaults()}
	return NewService(repo, fakeDirectory{}, cfg), repo, cfg
}

func validCreateInput() CreateInput {
	return CreateInput{
		PersonID:       "p-1",
		UnitID:         "unit-1",
		ProfessionalID: "prof-1",
		Items: []ItemInput{
			{BenefitID: "b-1", Quantity: 2, UnitPrice: decimal.RequireFromString("12.50")},
			{BenefitID: "b-2", Quantity: 1, UnitPrice: decimal.RequireFromString("7.25")},
		},
	}
}

func TestCreateComputesTotals(t *testing.T) {
	svc, _, _ := newTestService()

	result, err := svc.Create(context.Background(), validCreateInput(), "prof-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	d := result.Dispensation
	if d.Situation != SituationPending {
		t.Fatalf("expected PENDING, got %s", d.Situation)
	}
	if d.Items[0].Total.StringFixed(2) != "25.00" {
		t.Fatalf("expected line total 25.00, got %s", d.Items[0].Total.StringFixed(2))
	}
	if d.Total().StringFixed(2) != "32.25" {
		t.Fatalf("expected total 32.25, got %s", d.Total().StringFixed(2))
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService()

	in := validCreateInput()
	in.Items = nil
	if _, err := svc.Create(context.Background(), in, "prof-1"); !errors.Is(err, ErrItemsRequired) {
		t.Fatalf("expected ErrItemsRequired, got %v", err)
	}

	in = validCreateInput()
	in.Items[0].Quantity = 0
	if _, err := svc.Create(context.Background(), in, "prof-1"); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	in = validCreateInput()
	in.PersonID = "missing"
	if _, err := svc.Create(context.Background(), in, "prof-1"); !errors.Is(err, person.ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
}

func TestCreateDuplicateAlert(t *testing.T) {
	svc, repo, cfg := newTestService()
	repo.recent = true

	result, err := svc.Create(context.Background(), validCreateInput(), "prof-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.DuplicateAlert {
		t.Fatalf("expected duplicate alert with flag on and recent dispensation")
	}

	cfg.current.DuplicateBenefitAlert = false
	result, err = svc.Create(context.Background(), validCreateInput(), "prof-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.DuplicateAlert {
		t.Fatalf("expected no alert with flag off")
	}
}

func TestAuthorize(t *testing.T) {
	svc, _, _ := newTestService()
	result, _ := svc.Create(context.Background(), validCreateInput(), "prof-1")

	d, err := svc.Authorize(context.Background(), result.Dispensation.ID, "prof-2")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if d.Situation != SituationAuthorized {
		t.Fatalf("expected AUTHORIZED, got %s", d.Situation)
	}
	if d.AuthorizedAt == nil || d.AuthorizedBy == nil || *d.AuthorizedBy != "prof-2" {
		t.Fatalf("expected authorization stamp, got %v/%v", d.AuthorizedAt, d.AuthorizedBy)
	}
}

func TestTerminalStateIsImmutable(t *testing.T) {
	svc, repo, _ := newTestService()
	result, _ := svc.Create(context.Background(), validCreateInput(), "prof-1")
	id := result.Dispensation.ID

	if _, err := svc.Authorize(context.Background(), id, "prof-2"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.Reject(context.Background(), id, "prof-2", "wrong person"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending on reject, got %v", err)
	}
	if _, err := svc.Cancel(context.Background(), id, "prof-2", "mistake"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending on cancel, got %v", err)
	}
	if _, err := svc.Authorize(context.Background(), id, "prof-2"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending on re-authorize, got %v", err)
	}

	stored, _ := repo.Get(context.Background(), id)
	if stored.Situation != SituationAuthorized {
		t.Fatalf("expected state to remain AUTHORIZED, got %s", stored.Situation)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	svc, _, _ := newTestService()
	result, _ := svc.Create(context.Background(), validCreateInput(), "prof-1")

	if _, err := svc.Reject(context.Background(), result.Dispensation.ID, "prof-2", "  "); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}

	d, err := svc.Reject(context.Background(), result.Dispensation.ID, "prof-2", "does not qualify")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if d.RejectReason == nil || *d.RejectReason != "does not qualify" {
		t.Fatalf("expected reason stored, got %v", d.RejectReason)
	}
}

func TestCancelStampsActor(t *testing.T) {
	svc, _, _ := newTestService()
	result, _ := svc.Create(context.Background(), validCreateInput(), "prof-1")

	d, err := svc.Cancel(context.Background(), result.Dispensation.ID, "prof-3", "request withdrawn")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if d.Situation != SituationCancelled {
		t.Fatalf("expected CANCELLED, got %s", d.Situation)
	}
	if d.CancelledBy == nil || *d.CancelledBy != "prof-3" {
		t.Fatalf("expected cancel stamp, got %v", d.CancelledBy)
	}
}
