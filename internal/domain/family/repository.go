package family

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetFamily(ctx context.Context, id string) (*Family, error)
	GetFamilyByCode(ctx context.Context, code string) (*Family, error)
	CreateFamily(ctx context.Context, f *Family) error
	// SaveFamily persists the aggregate only if the stored version still
	// matches f.Version, then bumps it. A stale version returns
	// ErrVersionConflict.
	SaveFamily(ctx context.Context, f *Family) error
	AddIncome(ctx context.Context, income *Income) error
	AddExpense(ctx context.Context, expense *Expense) error
	AddVulnerability(ctx context.Context, v *Vulnerability) error
	GetVulnerability(ctx context.Context, id string) (*Vulnerability, error)
	SaveVulnerability(ctx context.Context, v *Vulnerability) error
	IsCodeTaken(ctx context.Context, code string) (bool, error)
}
