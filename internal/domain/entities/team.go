package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TeamRole distinguishes producing artists from studio admins
type TeamRole string

const (
	TeamRoleArtist TeamRole = "ARTIST"
	TeamRoleAdmin  TeamRole = "ADMIN"
)

// Valid reports whether r is a known role.
func (r TeamRole) Valid() bool {
	return r == TeamRoleArtist || r == TeamRoleAdmin
}

// Team is a freelancer (or group) that receives offerings and payrolls.
type Team struct {
	ID                uuid.UUID   `json:"id"`
	Name              string      `json:"name"`
	DiscordUserID     null.String `json:"discordUserId"`
	DiscordChannelID  null.String `json:"discordChannelId"`
	BankNumber        null.String `json:"bankNumber"`
	BankAccountHolder null.String `json:"bankAccountHolder"`
	BankProvider      null.String `json:"bankProvider"`
	Role              TeamRole    `json:"role"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
	DeletedAt         *time.Time  `json:"deletedAt,omitempty"`
}

// TeamFilter narrows team listings
type TeamFilter struct {
	Role *TeamRole
	// DiscordUserID matches teams by their linked chat user.
	DiscordUserID string
}

// CreateTeamInput is the body of POST /team
type CreateTeamInput struct {
	Name              string  `json:"name" binding:"required"`
	DiscordUserID     *string `json:"discordUserId"`
	DiscordChannelID  *string `json:"discordChannelId"`
	BankNumber        *string `json:"bankNumber"`
	BankAccountHolder *string `json:"bankAccountHolder"`
	BankProvider      *string `json:"bankProvider"`
	Role              string  `json:"role"`
}

// UpdateTeamInput is the body of PATCH /team/:id; nil fields are left unchanged
type UpdateTeamInput struct {
	Name              *string `json:"name"`
	DiscordUserID     *string `json:"discordUserId"`
	DiscordChannelID  *string `json:"discordChannelId"`
	BankNumber        *string `json:"bankNumber"`
	BankAccountHolder *string `json:"bankAccountHolder"`
	BankProvider      *string `json:"bankProvider"`
	Role              *string `json:"role"`
}
