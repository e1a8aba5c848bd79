package gateways

import (
	"context"
	"time"

	"studio-ops.backend/internal/domain/entities"
)

// ReminderQueue is a delayed job queue keyed by ReminderJob.ID.
type ReminderQueue interface {
	Enqueue(ctx context.Context, jobs ...entities.ReminderJob) error
	RemoveByPrefix(ctx context.Context, prefix string) (int, error)
	// ClaimDue removes and returns jobs whose run time has passed.
	// A job is returned to at most one caller.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]entities.ReminderJob, error)
}
