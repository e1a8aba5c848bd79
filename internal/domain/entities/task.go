package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Task is a billable unit of a project
type Task struct {
	ID          uuid.UUID         `json:"id"`
	ProjectID   uuid.UUID         `json:"projectId"`
	Fee         int64             `json:"fee"`
	ImageCount  int               `json:"imageCount"`
	Note        null.String       `json:"note"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Attachments []*TaskAttachment `json:"attachments,omitempty"`
}

// TaskAttachment is a reference file for a task
type TaskAttachment struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"taskId"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProjectAttachment is a reference file for the whole project
type ProjectAttachment struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"projectId"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskFilter narrows task listings
type TaskFilter struct {
	ProjectID *uuid.UUID
	SortDesc  bool
}

// TaskTotals are the aggregate numbers copied onto the owning project
type TaskTotals struct {
	Fee        int64
	ImageCount int
}

// CreateTaskInput is the body of POST /task
type CreateTaskInput struct {
	ProjectID   uuid.UUID `json:"projectId" binding:"required"`
	Fee         int64     `json:"fee" binding:"gte=0"`
	ImageCount  int       `json:"imageCount" binding:"gte=0"`
	Note        string    `json:"note"`
	Attachments []string  `json:"attachments"`
	TaskNumber  int       `json:"taskNumber"`
}

// UpdateTaskInput is the body of PATCH /task/:id. A non-nil Attachments replaces the set.
type UpdateTaskInput struct {
	Fee         *int64   `json:"fee"`
	ImageCount  *int     `json:"imageCount"`
	Note        *string  `json:"note"`
	Attachments []string `json:"attachments"`
}
