package benefit

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	benefitdomain "social-care-go/internal/domain/benefit"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(benefitdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*benefitdomain.Dispensation, error) {
	var d benefitdomain.Dispensation
	err := r.db.WithContext(ctx).Preload("Items").First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, benefitdomain.ErrDispensationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostgresRepository) Create(ctx context.Context, d *benefitdomain.Dispensation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// Save writes the workflow fields guarded by the version column. Items are
// immutable after creation so only the dispensation row is touched.
func (r *PostgresRepository) Save(ctx context.Context, d *benefitdomain.Dispensation) error {
	readVersion := d.Version
	d.Version++

	result := r.db.WithContext(ctx).
		Model(&benefitdomain.Dispensation{}).
		Where("id = ? AND version = ?", d.ID, readVersion).
		Updates(map[string]any{
			"situation":     d.Situation,
			"authorized_at": d.AuthorizedAt,
			"authorized_by": d.AuthorizedBy,
			"rejected_at":   d.RejectedAt,
			"rejected_by":   d.RejectedBy,
			"reject_reason": d.RejectReason,
			"cancelled_at":  d.CancelledAt,
			"cancelled_by":  d.CancelledBy,
			"cancel_reason": d.CancelReason,
			"version":       d.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		d.Version = readVersion
		return benefitdomain.ErrVersionConflict
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, filter benefitdomain.ListFilter) ([]benefitdomain.Dispensation, error) {
	query := r.db.WithContext(ctx).Model(&benefitdomain.Dispensation{})

	if filter.UnitID != nil {
		query = query.Where("unit_id = ?", *filter.UnitID)
	}
	if filter.PersonID != nil {
		query = query.Where("person_id = ?", *filter.PersonID)
	}
	if filter.Situation != nil {
		query = query.Where("situation = ?", *filter.Situation)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var dispensations []benefitdomain.Dispensation
	if err := query.Preload("Items").Order("created_at desc").Find(&dispensations).Error; err != nil {
		return nil, err
	}
	return dispensations, nil
}

func (r *PostgresRepository) HasRecentForBenefit(ctx context.Context, personID string, benefitIDs []string, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("benefit_dispensations").
		Joins("join benefit_dispensation_items on benefit_dispensation_items.dispensation_id = benefit_dispensations.id").
		Where("benefit_dispensations.person_id = ?", personID).
		Where("benefit_dispensations.situation IN ?", []benefitdomain.Situation{benefitdomain.SituationPending, benefitdomain.SituationAuthorized}).
		Where("benefit_dispensations.created_at >= ?", since).
		Where("benefit_dispensation_items.benefit_id IN ?", benefitIDs).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
