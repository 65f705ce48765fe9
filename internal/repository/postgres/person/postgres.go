package person

import (
	"context"
	"errors"

	"gorm.io/gorm"

	persondomain "social-care-go/internal/domain/person"
)

type PostgresDirectory struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (r *PostgresDirectory) FindPerson(ctx context.Context, id string) (*persondomain.Person, error) {
	var p persondomain.Person
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, persondomain.ErrPersonNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresDirectory) FindProfessional(ctx context.Context, id string) (*persondomain.Professional, error) {
	var p persondomain.Professional
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, persondomain.ErrProfessionalNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresDirectory) FindUnit(ctx context.Context, id string) (*persondomain.Unit, error) {
	var u persondomain.Unit
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, persondomain.ErrUnitNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresDirectory) CreatePerson(ctx context.Context, p *persondomain.Person) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostgresDirectory) CreateProfessional(ctx context.Context, p *persondomain.Professional) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostgresDirectory) CreateUnit(ctx context.Context, u *persondomain.Unit) error {
	return r.db.WithContext(ctx).Create(u).Error
}
