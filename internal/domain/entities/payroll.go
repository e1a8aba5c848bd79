package entities

import (
	"time"

	"github.com/google/uuid"
	"studio-ops.backend/pkg/utils"
)

// PayrollStatus represents the payout state
type PayrollStatus string

const (
	PayrollStatusDraft PayrollStatus = "DRAFT"
	PayrollStatusPaid  PayrollStatus = "PAID"
)

// Valid reports whether s is a known status.
func (s PayrollStatus) Valid() bool {
	return s == PayrollStatusDraft || s == PayrollStatusPaid
}

// Payroll bundles projects of one team into a payable batch
type Payroll struct {
	ID          uuid.UUID     `json:"id"`
	TeamID      uuid.UUID     `json:"teamId"`
	PeriodStart time.Time     `json:"periodStart"`
	PeriodEnd   time.Time     `json:"periodEnd"`
	Status      PayrollStatus `json:"status"`
	Amount      int64         `json:"amount"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	DeletedAt   *time.Time    `json:"deletedAt,omitempty"`

	Team     *Team      `json:"team,omitempty"`
	Projects []*Project `json:"projects,omitempty"`
}

// PayrollFilter narrows payroll listings; soft-deleted rows are always excluded
type PayrollFilter struct {
	ID           *uuid.UUID
	TeamID       *uuid.UUID
	Status       *PayrollStatus
	WithTeam     bool
	WithProjects bool
	Page         utils.ListParams
}

// CreatePayrollInput is the body of POST /payroll
type CreatePayrollInput struct {
	PeriodStart time.Time     `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time     `json:"periodEnd" binding:"required"`
	Status      PayrollStatus `json:"status" binding:"required"`
	TeamID      uuid.UUID     `json:"teamId" binding:"required"`
	ProjectIDs  []uuid.UUID   `json:"projectIds" binding:"required,min=1"`
}

// UpdatePayrollInput is the body of PATCH /payroll/:id
type UpdatePayrollInput struct {
	Status PayrollStatus `json:"status" binding:"required"`
}
