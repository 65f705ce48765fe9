package person

import "context"

// Directory resolves person, professional and unit references before
// the case services validate an operation.
type Directory interface {
	FindPerson(ctx context.Context, id string) (*Person, error)
	FindProfessional(ctx context.Context, id string) (*Professional, error)
	FindUnit(ctx context.Context, id string) (*Unit, error)
	CreatePerson(ctx context.Context, p *Person) error
	CreateProfessional(ctx context.Context, p *Professional) error
	CreateUnit(ctx context.Context, u *Unit) error
}
