package person

import "time"

// Person is an assisted individual registered with the municipality.
type Person struct {
	ID        string     `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"not null"`
	BirthDate *time.Time `gorm:"type:date"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
}

func (Person) TableName() string { return "persons" }

// Professional is a staff member able to attend families and authorize benefits.
type Professional struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Role      string    `gorm:"type:varchar(64);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Professional) TableName() string { return "professionals" }

// Unit is a service unit (CRAS, CREAS) where attendances take place.
type Unit struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Unit) TableName() string { return "units" }
