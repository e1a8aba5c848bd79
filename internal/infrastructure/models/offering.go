package models

import (
	"time"

	"github.com/google/uuid"
)

type Offering struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID       uuid.UUID `gorm:"type:uuid;not null;index"`
	TeamID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Status          string    `gorm:"type:varchar(20);not null"`
	DiscordThreadID *string   `gorm:"type:varchar(64);index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Team *Team `gorm:"foreignKey:TeamID"`
}
