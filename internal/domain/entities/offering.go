package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// OfferingStatus represents the state of one assignment attempt
type OfferingStatus string

const (
	OfferingStatusOffering OfferingStatus = "OFFERING"
	OfferingStatusAccepted OfferingStatus = "ACCEPTED"
	OfferingStatusRejected OfferingStatus = "REJECTED"
)

// Terminal reports whether no further transition is allowed.
func (s OfferingStatus) Terminal() bool {
	return s == OfferingStatusAccepted || s == OfferingStatusRejected
}

// Offering is one attempt to assign a project to a team through a chat thread.
// OFFERING moves to ACCEPTED or REJECTED exactly once; a re-offer creates a new row.
type Offering struct {
	ID              uuid.UUID      `json:"id"`
	ProjectID       uuid.UUID      `json:"projectId"`
	TeamID          uuid.UUID      `json:"teamId"`
	Status          OfferingStatus `json:"status"`
	DiscordThreadID null.String    `json:"discordThreadId"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`

	Team    *Team    `json:"team,omitempty"`
	Project *Project `json:"project,omitempty"`
}

// OfferingFilter narrows offering listings
type OfferingFilter struct {
	ProjectID *uuid.UUID
	WithTeam  bool
	SortDesc  bool
}
