package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"type:varchar(120);not null"`
	DiscordUserID     *string   `gorm:"type:varchar(64);index"`
	DiscordChannelID  *string   `gorm:"type:varchar(64)"`
	BankNumber        *string   `gorm:"type:varchar(64)"`
	BankAccountHolder *string   `gorm:"type:varchar(120)"`
	BankProvider      *string   `gorm:"type:varchar(64)"`
	Role              string    `gorm:"type:varchar(20);not null;default:'ARTIST'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}
