package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	settingsdomain "social-care-go/internal/domain/settings"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetOrCreate inserts the defaults with ON CONFLICT DO NOTHING and then
// reads the row back, so racing first readers all converge on one row.
func (r *PostgresRepository) GetOrCreate(ctx context.Context, defaults settingsdomain.Settings) (*settingsdomain.Settings, error) {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&defaults).Error; err != nil {
		return nil, err
	}

	var current settingsdomain.Settings
	if err := r.db.WithContext(ctx).First(&current, "id = ?", settingsdomain.DefaultID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, settingsdomain.ErrVersionConflict
		}
		return nil, err
	}
	return &current, nil
}

func (r *PostgresRepository) Save(ctx context.Context, current *settingsdomain.Settings) error {
	readVersion := current.Version
	current.Version++

	result := r.db.WithContext(ctx).
		Model(&settingsdomain.Settings{}).
		Where("id = ? AND version = ?", current.ID, readVersion).
		Updates(map[string]any{
			"individual_edit_window_hours":  current.IndividualEditWindowHours,
			"poverty_line":                  current.PovertyLine,
			"extreme_poverty_line":          current.ExtremePovertyLine,
			"restrict_collective_to_family": current.RestrictCollectiveToFamily,
			"duplicate_benefit_alert":       current.DuplicateBenefitAlert,
			"updated_by":                    current.UpdatedBy,
			"version":                       current.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		current.Version = readVersion
		return settingsdomain.ErrVersionConflict
	}
	return nil
}
