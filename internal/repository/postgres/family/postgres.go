package family

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	familydomain "social-care-go/internal/domain/family"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(familydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetFamily(ctx context.Context, id string) (*familydomain.Family, error) {
	var f familydomain.Family
	err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Incomes").
		Preload("Expenses").
		Preload("Vulnerabilities").
		First(&f, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, familydomain.ErrFamilyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PostgresRepository) GetFamilyByCode(ctx context.Context, code string) (*familydomain.Family, error) {
	var f familydomain.Family
	err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Incomes").
		Preload("Expenses").
		Preload("Vulnerabilities").
		First(&f, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, familydomain.ErrFamilyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PostgresRepository) CreateFamily(ctx context.Context, f *familydomain.Family) error {
	return r.db.WithContext(ctx).Create(f).Error
}

// SaveFamily writes the aggregate guarded by the version column: the row
// update only matches the version the caller read, so a concurrent writer
// makes this return ErrVersionConflict instead of silently losing a change.
func (r *PostgresRepository) SaveFamily(ctx context.Context, f *familydomain.Family) error {
	readVersion := f.Version
	f.Version++

	result := r.db.WithContext(ctx).
		Model(&familydomain.Family{}).
		Where("id = ? AND version = ?", f.ID, readVersion).
		Updates(map[string]any{
			"responsible_id": f.ResponsibleID,
			"address":        f.Address,
			"dwelling_type":  f.DwellingType,
			"version":        f.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		f.Version = readVersion
		return familydomain.ErrVersionConflict
	}

	for i := range f.Members {
		member := &f.Members[i]
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).
			Create(member).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *PostgresRepository) AddIncome(ctx context.Context, income *familydomain.Income) error {
	return r.db.WithContext(ctx).Create(income).Error
}

func (r *PostgresRepository) AddExpense(ctx context.Context, expense *familydomain.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *PostgresRepository) AddVulnerability(ctx context.Context, v *familydomain.Vulnerability) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *PostgresRepository) GetVulnerability(ctx context.Context, id string) (*familydomain.Vulnerability, error) {
	var v familydomain.Vulnerability
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, familydomain.ErrVulnerabilityNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *PostgresRepository) SaveVulnerability(ctx context.Context, v *familydomain.Vulnerability) error {
	result := r.db.WithContext(ctx).
		Model(&familydomain.Vulnerability{}).
		Where("id = ?", v.ID).
		Updates(map[string]any{
			"resolved_date":   v.ResolvedDate,
			"professional_id": v.ProfessionalID,
			"notes":           v.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return familydomain.ErrVulnerabilityNotFound
	}
	return nil
}

func (r *PostgresRepository) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&familydomain.Family{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
