package attendance

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	attendancedomain "social-care-go/internal/domain/attendance"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(attendancedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*attendancedomain.Record, error) {
	var record attendancedomain.Record
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Preload("Professionals").
		Preload("Reasons").
		First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, attendancedomain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) Create(ctx context.Context, record *attendancedomain.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Save updates the record guarded by the version column and upserts the
// child rows; a concurrent writer surfaces as ErrVersionConflict.
func (r *PostgresRepository) Save(ctx context.Context, record *attendancedomain.Record) error {
	readVersion := record.Version
	record.Version++

	result := r.db.WithContext(ctx).
		Model(&attendancedomain.Record{}).
		Where("id = ? AND version = ?", record.ID, readVersion).
		Updates(map[string]any{
			"unit_id":     record.UnitID,
			"occurred_at": record.OccurredAt,
			"family_id":   record.FamilyID,
			"service_id":  record.ServiceID,
			"group_id":    record.GroupID,
			"program_id":  record.ProgramID,
			"notes":       record.Notes,
			"updated_by":  record.UpdatedBy,
			"version":     record.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		record.Version = readVersion
		return attendancedomain.ErrVersionConflict
	}

	for i := range record.Participants {
		if err := r.upsertChild(ctx, &record.Participants[i], "record_id", "person_id"); err != nil {
			return err
		}
	}
	for i := range record.Professionals {
		if err := r.upsertChild(ctx, &record.Professionals[i], "record_id", "professional_id"); err != nil {
			return err
		}
	}
	for i := range record.Reasons {
		if err := r.upsertChild(ctx, &record.Reasons[i], "record_id", "reason_id"); err != nil {
			return err
		}
	}

	return nil
}

func (r *PostgresRepository) upsertChild(ctx context.Context, row any, keyColumns ...string) error {
	columns := make([]clause.Column, 0, len(keyColumns))
	for _, name := range keyColumns {
		columns = append(columns, clause.Column{Name: name})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: columns, DoNothing: true}).
		Create(row).Error
}

func (r *PostgresRepository) List(ctx context.Context, filter attendancedomain.ListFilter) ([]attendancedomain.Record, error) {
	query := r.db.WithContext(ctx).Model(&attendancedomain.Record{})

	if filter.UnitID != nil {
		query = query.Where("unit_id = ?", *filter.UnitID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.From != nil {
		query = query.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("occurred_at < ?", *filter.To)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var records []attendancedomain.Record
	if err := query.
		Preload("Participants").
		Preload("Professionals").
		Preload("Reasons").
		Order("occurred_at desc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
