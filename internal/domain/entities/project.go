package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"studio-ops.backend/pkg/utils"
)

// ProjectStatus represents the lifecycle of a project
type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "DRAFT"
	ProjectStatusOffering   ProjectStatus = "OFFERING"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusRevision   ProjectStatus = "REVISION"
	ProjectStatusDone       ProjectStatus = "DONE"
	ProjectStatusCancelled  ProjectStatus = "CANCELLED"
)

// AllProjectStatuses lists statuses in lifecycle order.
var AllProjectStatuses = []ProjectStatus{
	ProjectStatusDraft,
	ProjectStatusOffering,
	ProjectStatusInProgress,
	ProjectStatusRevision,
	ProjectStatusDone,
	ProjectStatusCancelled,
}

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	for _, v := range AllProjectStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Project is one client job. Fee and ImageCount are derived from its tasks.
type Project struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"name"`
	ClientName     null.String   `json:"clientName"`
	ImageRatio     null.String   `json:"imageRatio"`
	Note           null.String   `json:"note"`
	Fee            int64         `json:"fee"`
	ImageCount     int           `json:"imageCount"`
	Deadline       time.Time     `json:"deadline"`
	AutoNumberTask bool          `json:"autoNumberTask"`
	Status         ProjectStatus `json:"status"`
	IsPaid         bool          `json:"isPaid"`
	TeamID         *uuid.UUID    `json:"teamId"`
	PayrollID      *uuid.UUID    `json:"payrollId"`
	PublishedAt    null.Time     `json:"publishedAt"`
	DoneAt         null.Time     `json:"doneAt"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	DeletedAt      *time.Time    `json:"deletedAt,omitempty"`
	// ConfirmationDuration is the offering answer window in milliseconds.
	ConfirmationDuration int64 `json:"confirmationDuration"`

	Team        *Team                `json:"team,omitempty"`
	Payroll     *Payroll             `json:"payroll,omitempty"`
	Tasks       []*Task              `json:"tasks,omitempty"`
	Attachments []*ProjectAttachment `json:"attachments,omitempty"`
	// Offerings are newest first when loaded.
	Offerings []*Offering `json:"offerings,omitempty"`
}

// ThreadID returns the chat thread of the newest offering that has one.
func (p *Project) ThreadID() string {
	for _, o := range p.Offerings {
		if o != nil && o.DiscordThreadID.Valid && o.DiscordThreadID.String != "" {
			return o.DiscordThreadID.String
		}
	}
	return ""
}

// ConfirmationWindow converts the stored millisecond window into a duration.
func (p *Project) ConfirmationWindow() time.Duration {
	return time.Duration(p.ConfirmationDuration) * time.Millisecond
}

// ProjectFilter narrows project listings; soft-deleted rows are always excluded
type ProjectFilter struct {
	ID           *uuid.UUID
	TeamID       *uuid.UUID
	Status       *ProjectStatus
	IsPaid       *bool
	CreatedAtGTE *time.Time
	CreatedAtLTE *time.Time
	WithTeam     bool
	WithPayroll  bool
	WithOffering bool
	Page         utils.ListParams
}

// CreateProjectTaskInput describes one task inside a new project
type CreateProjectTaskInput struct {
	Fee         int64    `json:"fee" binding:"gte=0"`
	ImageCount  int      `json:"imageCount" binding:"gte=0"`
	Note        string   `json:"note"`
	Attachments []string `json:"attachments"`
}

// CreateProjectInput is the body of POST /project
type CreateProjectInput struct {
	Name                 string                   `json:"name" binding:"required"`
	ClientName           string                   `json:"clientName"`
	ImageRatio           string                   `json:"imageRatio"`
	Note                 string                   `json:"note"`
	Deadline             time.Time                `json:"deadline" binding:"required"`
	ConfirmationDuration int64                    `json:"confirmationDuration" binding:"gte=0"`
	TeamID               *uuid.UUID               `json:"teamId"`
	IsPublished          bool                     `json:"isPublished"`
	AutoNumberTask       bool                     `json:"autoNumberTask"`
	Tasks                []CreateProjectTaskInput `json:"tasks" binding:"dive"`
	Attachments          []string                 `json:"attachments"`
}

// UpdateProjectInput is the body of PATCH /project/:id; nil fields are left unchanged
type UpdateProjectInput struct {
	Name                 *string        `json:"name"`
	ImageRatio           *string        `json:"imageRatio"`
	Status               *ProjectStatus `json:"status"`
	TeamID               *uuid.UUID     `json:"teamId"`
	ImageCount           *int           `json:"imageCount"`
	ClientName           *string        `json:"clientName"`
	Note                 *string        `json:"note"`
	Fee                  *int64         `json:"fee"`
	Deadline             *time.Time     `json:"deadline"`
	AutoNumberTask       *bool          `json:"autoNumberTask"`
	ConfirmationDuration *int64         `json:"confirmationDuration"`
}
