package family

import (
	"context"
	"errors"
	"testing"
	"time"

	"social-care-go/internal/domain/person"
)

type fakeFamilyRepo struct {
	families        map[string]*Family
	vulnerabilities map[string]*Vulnerability
	codes           map[string]string
}

func newFakeFamilyRepo() *fakeFamilyRepo {
	return &fakeFamilyRepo{
		families:        make(map[string]*Family),
		vulnerabilities: make(map[string]*Vulnerability),
		codes:           make(map[string]string),
	}
}

func (r *fakeFamilyRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeFamilyRepo) GetFamily(ctx context.Context, id string) (*Family, error) {
	f, ok := r.families[id]
	if !ok {
		return nil, ErrFamilyNotFound
	}
	copied := *f
	copied.Members = append([]Member(nil), f.Members...)
	copied.Incomes = append([]Income(nil), f.Incomes...)
	copied.Expenses = append([]Expense(nil), f.Expenses...)
	copied.Vulnerabilities = append([]Vulnerability(nil), f.Vulnerabilities...)
	return &copied, nil
}

func (r *fakeFamilyRepo) GetFamilyByCode(ctx context.Context, code string) (*Family, error) {
	id, ok := r.codes[code]
	if !ok {
		return nil, ErrFamilyNotFound
	}
	return r.GetFamily(ctx, id)
}

func (r *fakeFamilyRepo) CreateFamily(ctx context.Context, f *Family) error {
	copied := *f
	r.families[f.ID] = &copied
	r.codes[f.Code] = f.ID
	return nil
}

func (r *fakeFamilyRepo) SaveFamily(ctx context.Context, f *Family) error {
	stored, ok := r.families[f.ID]
	if !ok {
		return ErrFamilyNotFound
	}
	if stored.Version != f.Version {
		return ErrVersionConflict
	}
	f.Version++
	copied := *f
	r.families[f.ID] = &copied
	return nil
}

func (r *fakeFamilyRepo) AddIncome(ctx context.Context, income *Income) error {
	f, ok := r.families[income.FamilyID]
	if !ok {
		return ErrFamilyNotFound
	}
	f.Incomes = append(f.Incomes, *income)
	return nil
}

func (r *fakeFamilyRepo) AddExpense(ctx context.Context, expense *Expense) error {
	f, ok := r.families[expense.FamilyID]
	if !ok {
		return ErrFamilyNotFound
	}
	f.Expenses = append(f.Expenses, *expense)
	return nil
}

func (r *fakeFamilyRepo) AddVulnerability(ctx context.Context, v *Vulnerability) error {
	f, ok := r.families[v.FamilyID]
	if !ok {
		return ErrFamilyNotFound
	}
	f.Vulnerabilities = append(f.Vulnerabilities, *v)
	copied := *v
	r.vulnerabilities[v.ID] = &copied
	return nil
}

func (r *fakeFamilyRepo) GetVulnerability(ctx context.Context, id string) (*Vulnerability, error) {
	v, ok := r.vulnerabilities[id]
	if !ok {
		return nil, ErrVulnerabilityNotFound
	}
	copied := *v
	return &copied, nil
}

func (r *fakeFamilyRepo) SaveVulnerability(ctx context.Context, v *Vulnerability) error {
	if _, ok := r.vulnerabilities[v.ID]; !ok {
		return ErrVulnerabilityNotFound
	}
	copied := *v
	r.vulnerabilities[v.ID] = &copied
	return nil
}

func (r *fakeFamilyRepo) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	_, ok := r.codes[code]
	return ok, nil
}

type fakeDirectory struct {
	persons       map[string]*person.Person
	professionals map[string]*person.Professional
	units         map[string]*person.Unit
}

func newFakeDirectory(personIDs ...string) *fakeDirectory {
	d := &fakeDirectory{
		persons:       make(map[string]*person.Person),
		professionals: make(map[string]*person.Professional),
		units:         make(map[string]*person.Unit),
	}
	for _, id := range personIDs {
		d.persons[id] = &person.Person{ID: id, Name: "person " + id}
	}
	return d
}

func (d *fakeDirectory) FindPerson(ctx context.Context, id string) (*person.Person, error) {
	p, ok := d.persons[id]
	if !ok {
		return nil, person.ErrPersonNotFound
	}
	return p, nil
}

func (d *fakeDirectory) FindProfessional(ctx context.Context, id string) (*person.Professional, error) {
	p, ok := d.professionals[id]
	if !ok {
		return nil, person.ErrProfessionalNotFound
	}
	return p, nil
}

func (d *fakeDirectory) FindUnit(ctx context.Context, id string) (*person.Unit, error) {
	u, ok := d.units[id]
	if !ok {
		return nil, person.ErrUnitNotFound
	}
	return u, nil
}

func (d *fakeDirectory) CreatePerson(ctx context.Context, p *person.Person) error {
	d.persons[p.ID] = p
	return nil
}

func (d *fakeDirectory) CreateProfessional(ctx context.Context, p *person.Professional) error {
	d.professionals[p.ID] = p
	return nil
}

func (d *fakeDirectory) CreateUnit(ctx context.Context, u *person.Unit) error {
	d.units[u.ID] = u
	return nil
}

func newTestService(personIDs ...string) (*Service, *fakeFamilyRepo) {
	repo := newFakeFamilyRepo()
	svc := NewService(repo, newFakeDirectory(personIDs...))
	return svc, repo
}

func countResponsibles(f *Family) int {
	count := 0
	for _, m := range f.Members {
		if m.Active() && m.IsResponsible {
			count++
		}
	}
	return count
}

func TestCreateFamilySetsResponsible(t *testing.T) {
	svc, _ := newTestService("p-1")

	f, err := svc.CreateFamily(context.Background(), CreateFamilyInput{ResponsiblePersonID: "p-1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if f.ResponsibleID != "p-1" {
		t.Fatalf("expected responsible p-1, got %s", f.ResponsibleID)
	}
	if len(f.Code) != 8 {
		t.Fatalf("expected code length 8, got %q", f.Code)
	}
	if countResponsibles(f) != 1 {
		t.Fatalf("expected exactly one responsible member")
	}
	if !f.Members[0].IsResponsible || f.Members[0].PersonID != "p-1" {
		t.Fatalf("expected responsible member for p-1, got %+v", f.Members[0])
	}
}

func TestCreateFamilyUnknownPerson(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateFamily(context.Background(), CreateFamilyInput{ResponsiblePersonID: "missing"})
	if !errors.Is(err, person.ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
}

func TestAddMemberSuccess(t *testing.T) {
	svc, _ := newTestService("p-1", "p-2")
	f, _ := svc.CreateFamily(context.Background(), CreateFamilyInput{ResponsiblePersonID: "p-1"})

	updated, err := svc.AddMember(context.Background(), f.ID, "p-2", "child", "actor-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(updated.ActiveMembers()) != 2 {
		t.Fatalf("expected 2 active members, got %d", len(updated.ActiveMembers()))
	}
	if countResponsibles(updated) != 1 {
		t.Fatalf("expected exactly one responsible member")
	}
}

func TestAddMemberTwiceConflicts(t *testing.T) {
	svc, _ := newTestService("p-1", "p-2")
	f, _ := svc.CreateFamily(context.Background(), CreateFamilyInput{ResponsiblePersonID: "p-1"})

	if _, err := svc.AddMember(context.Background(), f.ID, "p-2", "child", "actor-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	_, err := svc.AddMember(context.Background(), f.ID, "p-2", "child", "actor-1")
	if !errors.Is(err, ErrMemberAlreadyActive) {
		t.Fatalf("expected ErrMemberAlreadyActive, got %v", err)
	}
}

func TestAddMemberAfterExitSucceeds(t *testing.T) {
	svc, _ := newTestService("p-1", "p-2")
	f, _ := svc.CreateFamily(context.Background(), CreateFamilyInput{ResponsiblePersonID: "p-1"})
	_, _ = svc.AddMember(context.Background(), f.ID, "p-2", "child", "actor-1")

	if _, err := svc.RemoveMember(context.Background(), f.ID, "p-2", "moved away", "actor-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	updated, err := svc.AddMember(context.Background(), f.ID, "p-2", "child", "actor-1")
	if err != nil {
		t.Fatalf("expected re-entry to succeed, got %v", err)
	}
	if len(updated.ActiveMembers()) != 2 {
		t.Fatalf("expected 2 active members after re-entry, got %d", len(updated.ActiveMembers()))
	}
	if len(updated.Members) != 3 {
		t.Fatalf("expected 3 member records in history, got %d", len(updated.Members))
	}
}

func TestRemoveResponsibleConflicts(t *testing.T) {
	svc, _ := newTestService("p-1")
	f, _ := svc.CreateFamily(context.Background(), CreateFamilyInput{ResponsiblePersonID: "p-1"})

	_, err := svc.RemoveMember(context.Background(), f.ID, "p-1", "left", "actor-1")
	if !errors.Is(err, ErrCannotRemoveResponsible) {
		t.Fatalf("expected ErrCannotRemoveResponsible, got %v", err)
	}
}

func TestRemoveMemberStoresReason(t *testing.T) {
	svc, _ := newTestService("p-1", "p-2")
	f, _ := svc.CreateFamily(context.Background(), CreateFamilyInput{ResponsiblePersonID: "p-1"})
	_, _ = svc.AddMember(context.Background(), f.ID, "p-2", "child", "actor-1")

	updated, err := svc.RemoveMember(context.Background(), f.ID, "p-2", "moved away", "actor-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var exited *Member
	for i := range updated.Members {
		if updated.Members[i].PersonID == "p-2" {
			exited = &updated.Members[i]
		}
	}
	if exited == nil || exited.ExitDate == nil {
		t.Fatalf("expected exited member record")
	}
	if exited.ExitReason == nil || *exited.ExitReason != "moved away" {
		t.Fatalf("expected exit reason stored, got %v", exited.ExitReason)
	}
}

func TestRemoveMemberNotActiveConflicts(t *testing.T) {
	svc, _ := newTestService("p-1")
	f, _ := svc.CreateFamily(context.Background(), CreateFamilyInput{ResponsiblePersonID: "p-1"})

	_, err := svc.RemoveMember(context.Background(), f.ID, "p-9", "left", "actor-1")
	if !errors.Is(err, ErrMemberNotActive) {
		t.Fatalf("expected ErrMemberNotActive, got %v", err)
	}
}

func TestTransferResponsibility(t *testing.T) {
	svc, _ := newTestService("p-1", "p-2")
	f, _ := svc.CreateFamily(context.Background(), CreateFamilyInput{ResponsiblePersonID: "p-1"})
	_, _ = svc.AddMember(context.Background(), f.ID, "p-2", "spouse", "actor-1")

	updated, err := svc.TransferResponsibility(context.Background(), f.ID, "p-2", "actor-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.ResponsibleID != "p-2" {
		t.Fatalf("expected responsible p-2, got %s", updated.ResponsibleID)
	}
	if countResponsibles(updated) != 1 {
		t.Fatalf("expected exactly one responsible member after transfer")
	}
	responsible := updated.responsibleMember()
	if responsible == nil || responsible.PersonID != "p-2" {
		t.Fatalf("expected p-2 flagged responsible")
	}

	// Old responsible can leave now.
	if _, err := svc.RemoveMember(context.Background(), f.ID, "p-1", "left household", "actor-1"); err != nil {
		t.Fatalf("expected removal after transfer, got %v", err)
	}
}

func TestTransferResponsibilityToNonMember(t *testing.T) {
	svc, _ := newTestService("p-1")
	f, _ := svc.CreateFamily(context.Background(), CreateFamilyInput{ResponsiblePersonID: "p-1"})

	_, err := svc.TransferResponsibility(context.Background(), f.ID, "p-9", "actor-1")
	if !errors.Is(err, ErrNotAnActiveMember) {
		t.Fatalf("expected ErrNotAnActiveMember, got %v", err)
	}
}

func TestSingleResponsibleInvariantUnderSequence(t *testing.T) {
	svc, _ := newTestService("p-1", "p-2", "p-3")
	f, _ := svc.CreateFamily(context.Background(), CreateFamilyInput{ResponsiblePersonID: "p-1"})
	_, _ = svc.AddMember(context.Background(), f.ID, "p-2", "spouse", "actor-1")
	_, _ = svc.AddMember(context.Background(), f.ID, "p-3", "child", "actor-1")
	_, _ = svc.TransferResponsibility(context.Background(), f.ID, "p-2", "actor-1")
	_, _ = svc.RemoveMember(context.Background(), f.ID, "p-1", "left", "actor-1")
	_, _ = svc.TransferResponsibility(context.Background(), f.ID, "p-3", "actor-1")

	current, err := svc.GetFamily(context.Background(), f.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if countResponsibles(current) != 1 {
		t.Fatalf("expected exactly one responsible member, got %d", countResponsibles(current))
	}
	if current.ResponsibleID != "p-3" {
		t.Fatalf("expected responsible p-3, got %s", current.ResponsibleID)
	}
}

func TestResolveVulnerability(t *testing.T) {
	svc, _ := newTestService("p-1")
	f, _ := svc.CreateFamily(context.Background(), CreateFamilyInput{ResponsiblePersonID: "p-1"})

	v, err := svc.AttachVulnerability(context.Background(), f.ID, AttachVulnerabilityInput{TypeID: "vt-1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	resolved, err := svc.ResolveVulnerability(context.Background(), v.ID, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !resolved.Resolved() {
		t.Fatalf("expected vulnerability resolved")
	}

	_, err = svc.ResolveVulnerability(context.Background(), v.ID, time.Now())
	if !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
}

func TestDuplicateVulnerabilitiesAllowed(t *testing.T) {
	svc, _ := newTestService("p-1")
	f, _ := svc.CreateFamily(context.Background(), CreateFamilyInput{ResponsiblePersonID: "p-1"})

	if _, err := svc.AttachVulnerability(context.Background(), f.ID, AttachVulnerabilityInput{TypeID: "vt-1"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.AttachVulnerability(context.Background(), f.ID, AttachVulnerabilityInput{TypeID: "vt-1"}); err != nil {
		t.Fatalf("expected duplicate active vulnerability to be allowed, got %v", err)
	}

	current, _ := svc.GetFamily(context.Background(), f.ID)
	if len(current.Vulnerabilities) != 2 {
		t.Fatalf("expected 2 vulnerability records, got %d", len(current.Vulnerabilities))
	}
}

func TestAddIncomeValidation(t *testing.T) {
	svc, _ := newTestService("p-1")
	f, _ := svc.CreateFamily(context.Background(), CreateFamilyInput{ResponsiblePersonID: "p-1"})

	_, err := svc.AddIncome(context.Background(), f.ID, AddIncomeInput{CategoryID: ""})
	if !errors.Is(err, ErrCategoryRequired) {
		t.Fatalf("expected ErrCategoryRequired, got %v", err)
	}

	other := "p-9"
	_, err = svc.AddIncome(context.Background(), f.ID, AddIncomeInput{CategoryID: "cat-1", PersonID: &other})
	if !errors.Is(err, ErrMemberNotActive) {
		t.Fatalf("expected ErrMemberNotActive for non-member income, got %v", err)
	}
}
