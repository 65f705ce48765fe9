package attendance

import "time"

// Type discriminates the composition rules an attendance record must meet.
type Type string

const (
	TypeIndividual Type = "INDIVIDUAL"
	TypeFamiliar   Type = "FAMILIAR"
	TypeColetivo   Type = "COLETIVO"
	TypeGrupo      Type = "GRUPO"
)

func (t Type) Known() bool {
	switch t {
	case TypeIndividual, TypeFamiliar, TypeColetivo, TypeGrupo:
		return true
	}
	return false
}

// Record is a logged service visit. Participants, professionals and
// reasons are owned child rows; family, service, group and program are
// id references only.
type Record struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	Type       Type      `gorm:"type:varchar(16);not null;index"`
	UnitID     string    `gorm:"type:uuid;not null;index"`
	OccurredAt time.Time `gorm:"not null;index"`
	FamilyID   *string   `gorm:"type:uuid;index"`
	ServiceID  *string   `gorm:"type:uuid"`
	GroupID    *string   `gorm:"type:uuid"`
	ProgramID  *string   `gorm:"type:uuid"`
	Notes      *string   `gorm:"type:text"`
	Version    int64     `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	CreatedBy  string    `gorm:"type:uuid;not null"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
	UpdatedBy  *string   `gorm:"type:uuid"`

	Participants  []Participant  `gorm:"foreignKey:RecordID;references:ID;constraint:OnDelete:CASCADE"`
	Professionals []Professional `gorm:"foreignKey:RecordID;references:ID;constraint:OnDelete:CASCADE"`
	Reasons       []Reason       `gorm:"foreignKey:RecordID;references:ID;constraint:OnDelete:CASCADE"`
}

type Participant struct {
	RecordID string    `gorm:"type:uuid;primaryKey"`
	PersonID string    `gorm:"type:uuid;primaryKey"`
	AddedAt  time.Time `gorm:"autoCreateTime"`
}

type Professional struct {
	RecordID       string    `gorm:"type:uuid;primaryKey"`
	ProfessionalID string    `gorm:"type:uuid;primaryKey"`
	AddedAt        time.Time `gorm:"autoCreateTime"`
}

type Reason struct {
	RecordID string    `gorm:"type:uuid;primaryKey"`
	ReasonID string    `gorm:"type:uuid;primaryKey"`
	AddedAt  time.Time `gorm:"autoCreateTime"`
}

func (Record) TableName() string { return "attendance_records" }

func (Participant) TableName() string { return "attendance_participants" }

func (Professional) TableName() string { return "attendance_professionals" }

func (Reason) TableName() string { return "attendance_reasons" }

func (r *Record) hasParticipant(personID string) bool {
	for _, p := range r.Participants {
		if p.PersonID == personID {
			return true
		}
	}
	return false
}

func (r *Record) hasProfessional(professionalID string) bool {
	for _, p := range r.Professionals {
		if p.ProfessionalID == professionalID {
			return true
		}
	}
	return false
}

func (r *Record) hasReason(reasonID string) bool {
	for _, reason := range r.Reasons {
		if reason.ReasonID == reasonID {
			return true
		}
	}
	return false
}

// ListFilter narrows reporting reads; nil fields are ignored.
type ListFilter struct {
	UnitID *string
	Type   *Type
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
