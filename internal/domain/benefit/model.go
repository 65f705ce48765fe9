package benefit

import (
	"time"

	"github.com/shopspring/decimal"
)

// Situation is the one-way dispensation status. PENDING is the only
// non-terminal state.
type Situation string

const (
	SituationPending    Situation = "PENDING"
	SituationAuthorized Situation = "AUTHORIZED"
	SituationRejected   Situation = "REJECTED"
	SituationCancelled  Situation = "CANCELLED"
)

// Dispensation tracks the issuance of benefits to a person through the
// approval workflow. Once terminal, the record and its items are immutable.
type Dispensation struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	Situation      Situation `gorm:"type:varchar(16);not null;index"`
	PersonID       string    `gorm:"type:uuid;not null;index"`
	FamilyID       *string   `gorm:"type:uuid;index"`
	UnitID         string    `gorm:"type:uuid;not null;index"`
	ProfessionalID string    `gorm:"type:uuid;not null"`
	Version        int64     `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	CreatedBy      string    `gorm:"type:uuid;not null"`

	AuthorizedAt *time.Time
	AuthorizedBy *string `gorm:"type:uuid"`
	RejectedAt   *time.Time
	RejectedBy   *string `gorm:"type:uuid"`
	RejectReason *string `gorm:"type:text"`
	CancelledAt  *time.Time
	CancelledBy  *string `gorm:"type:uuid"`
	CancelReason *string `gorm:"type:text"`

	Items []Item `gorm:"foreignKey:DispensationID;references:ID;constraint:OnDelete:CASCADE"`
}

type Item struct {
	ID             string          `gorm:"type:uuid;primaryKey"`
	DispensationID string          `gorm:"type:uuid;not null;index"`
	BenefitID      string          `gorm:"type:uuid;not null"`
	Quantity       int64           `gorm:"not null"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (Dispensation) TableName() string { return "benefit_dispensations" }

func (Item) TableName() string { return "benefit_dispensation_items" }

// Total sums the line totals of the dispensation.
func (d *Dispensation) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.Items {
		total = total.Add(item.Total)
	}
	return total
}

// Pending reports whether the workflow can still transition.
func (d *Dispensation) Pending() bool {
	return d.Situation == SituationPending
}

// ListFilter narrows reporting reads; nil fields are ignored.
type ListFilter struct {
	UnitID    *string
	PersonID  *string
	Situation *Situation
	Limit     int
	Offset    int
}
