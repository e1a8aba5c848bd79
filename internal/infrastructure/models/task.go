package models

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Fee        int64     `gorm:"not null;default:0"`
	ImageCount int       `gorm:"not null;default:0"`
	Note       *string   `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Attachments []TaskAttachment `gorm:"foreignKey:TaskID"`
}

type TaskAttachment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}
