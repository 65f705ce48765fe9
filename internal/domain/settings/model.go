package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultID keys the single settings row. The repository upserts it with
// Defaults() on first read, so concurrent first calls converge on one row.
const DefaultID = "default"

// Settings holds the tunable thresholds the case services consult.
type Settings struct {
	ID                         string          `gorm:"primaryKey;size:16"`
	IndividualEditWindowHours  int             `gorm:"not null"`
	PovertyLine                decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ExtremePovertyLine         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	RestrictCollectiveToFamily bool            `gorm:"not null"`
	DuplicateBenefitAlert      bool            `gorm:"not null"`
	Version                    int64           `gorm:"not null;default:0"`
	UpdatedAt                  time.Time       `gorm:"autoUpdateTime"`
	UpdatedBy                  *string         `gorm:"type:uuid"`
}

func (Settings) TableName() string { return "settings" }

func Defaults() Settings {
	return Settings{
		ID:                         DefaultID,
		IndividualEditWindowHours:  24,
		PovertyLine:                decimal.NewFromInt(218),
		ExtremePovertyLine:         decimal.NewFromInt(109),
		RestrictCollectiveToFamily: true,
		DuplicateBenefitAlert:      true,
	}
}

// EditWindow is the duration after creation during which an individual
// attendance record may still be edited.
func (s Settings) EditWindow() time.Duration {
	return time.Duration(s.IndividualEditWindowHours) * time.Hour
}

// UpdatePatch carries the fields to change; nil fields are left untouched.
type UpdatePatch struct {
	IndividualEditWindowHours  *int
	PovertyLine                *decimal.Decimal
	ExtremePovertyLine         *decimal.Decimal
	RestrictCollectiveToFamily *bool
	DuplicateBenefitAlert      *bool
}

func (p UpdatePatch) empty() bool {
	return p.IndividualEditWindowHours == nil &&
		p.PovertyLine == nil &&
		p.ExtremePovertyLine == nil &&
		p.RestrictCollectiveToFamily == nil &&
		p.DuplicateBenefitAlert == nil
}
