package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name                 string     `gorm:"type:varchar(255);not null"`
	ClientName           *string    `gorm:"type:varchar(255)"`
	ImageRatio           *string    `gorm:"type:varchar(32)"`
	Note                 *string    `gorm:"type:text"`
	Fee                  int64      `gorm:"not null;default:0"`
	ImageCount           int        `gorm:"not null;default:0"`
	Deadline             time.Time  `gorm:"not null"`
	ConfirmationDuration int64      `gorm:"not null;default:0"`
	AutoNumberTask       bool       `gorm:"not null;default:true"`
	Status               string     `gorm:"type:varchar(20);not null;index"`
	IsPaid               bool       `gorm:"not null;default:false"`
	TeamID               *uuid.UUID `gorm:"type:uuid;index"`
	PayrollID            *uuid.UUID `gorm:"type:uuid;index"`
	PublishedAt          *time.Time
	DoneAt               *time.Time `gorm:"index"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`

	Team      *Team      `gorm:"foreignKey:TeamID"`
	Payroll   *Payroll   `gorm:"foreignKey:PayrollID"`
	Offerings []Offering `gorm:"foreignKey:ProjectID"`
}

type ProjectAttachment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}
