package family

import (
	"time"

	"github.com/shopspring/decimal"
)

// Family is the consistency boundary for a household: it owns its members,
// incomes, expenses and vulnerabilities. Exactly one active member carries
// IsResponsible=true and ResponsibleID always points at that member's person.
type Family struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	Code          string    `gorm:"size:8;not null;uniqueIndex"`
	ResponsibleID string    `gorm:"type:uuid;not null;index"`
	Address       *string   `gorm:"type:text"`
	DwellingType  *string   `gorm:"type:varchar(32)"`
	Version       int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	Members         []Member        `gorm:"foreignKey:FamilyID;references:ID;constraint:OnDelete:CASCADE"`
	Incomes         []Income        `gorm:"foreignKey:FamilyID;references:ID;constraint:OnDelete:CASCADE"`
	Expenses        []Expense       `gorm:"foreignKey:FamilyID;references:ID;constraint:OnDelete:CASCADE"`
	Vulnerabilities []Vulnerability `gorm:"foreignKey:FamilyID;references:ID;constraint:OnDelete:CASCADE"`
}

type Member struct {
	ID            string     `gorm:"type:uuid;primaryKey"`
	FamilyID      string     `gorm:"type:uuid;not null;index"`
	PersonID      string     `gorm:"type:uuid;not null;index"`
	Kinship       string     `gorm:"type:varchar(32);not null"`
	IsResponsible bool       `gorm:"not null"`
	EntryDate     time.Time  `gorm:"not null"`
	ExitDate      *time.Time
	ExitReason    *string    `gorm:"type:text"`
}

func (Family) TableName() string { return "families" }

func (Member) TableName() string { return "family_members" }

func (Income) TableName() string { return "family_incomes" }

func (Expense) TableName() string { return "family_expenses" }

func (Vulnerability) TableName() string { return "family_vulnerabilities" }

// Active reports whether the member still belongs to the household.
func (m Member) Active() bool {
	return m.ExitDate == nil
}

type Income struct {
	ID         string          `gorm:"type:uuid;primaryKey"`
	FamilyID   string          `gorm:"type:uuid;not null;index"`
	PersonID   *string         `gorm:"type:uuid;index"`
	CategoryID string          `gorm:"type:uuid;not null"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

type Expense struct {
	ID         string          `gorm:"type:uuid;primaryKey"`
	FamilyID   string          `gorm:"type:uuid;not null;index"`
	CategoryID string          `gorm:"type:uuid;not null"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

type Vulnerability struct {
	ID             string     `gorm:"type:uuid;primaryKey"`
	FamilyID       string     `gorm:"type:uuid;not null;index"`
	TypeID         string     `gorm:"type:uuid;not null"`
	IdentifiedDate time.Time  `gorm:"type:date;not null"`
	ResolvedDate   *time.Time `gorm:"type:date"`
	ProfessionalID *string    `gorm:"type:uuid"`
	Notes          *string    `gorm:"type:text"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
}

// Resolved reports whether the vulnerability has been closed.
func (v Vulnerability) Resolved() bool {
	return v.ResolvedDate != nil
}

// ActiveMembers returns the members without an exit date.
func (f *Family) ActiveMembers() []Member {
	active := make([]Member, 0, len(f.Members))
	for _, member := range f.Members {
		if member.Active() {
			active = append(active, member)
		}
	}
	return active
}

// ActiveMemberPersonIDs returns the person ids of the active members.
func (f *Family) ActiveMemberPersonIDs() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, member := range f.Members {
		if member.Active() {
			ids[member.PersonID] = struct{}{}
		}
	}
	return ids
}

func (f *Family) activeMemberOf(personID string) *Member {
	for i := range f.Members {
		if f.Members[i].PersonID == personID && f.Members[i].Active() {
			return &f.Members[i]
		}
	}
	return nil
}

func (f *Family) responsibleMember() *Member {
	for i := range f.Members {
		if f.Members[i].IsResponsible && f.Members[i].Active() {
			return &f.Members[i]
		}
	}
	return nil
}
