package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReminderKind tells the worker which state to re-validate before posting
type ReminderKind string

const (
	ReminderOfferingConfirmation ReminderKind = "offering"
	ReminderProjectDeadline      ReminderKind = "projectdeadline"
)

// ReminderJob is one delayed notification.
// MinutesBefore is the offset from the target time; 0 means the target itself.
type ReminderJob struct {
	Kind          ReminderKind `json:"kind"`
	SubjectID     uuid.UUID    `json:"subjectId"`
	MinutesBefore int          `json:"minutesBefore"`
	RunAt         time.Time    `json:"runAt"`
}

// ID is deterministic so re-enqueueing the same reminder is idempotent.
func (j ReminderJob) ID() string {
	return fmt.Sprintf("%s-%s-%d", j.Kind, j.SubjectID, j.MinutesBefore)
}

// ReminderPrefix is the id prefix shared by all reminders of one subject.
func ReminderPrefix(kind ReminderKind, subjectID uuid.UUID) string {
	return fmt.Sprintf("%s-%s-", kind, subjectID)
}

// PlanReminders builds one job per offset whose run time is still in the future.
func PlanReminders(kind ReminderKind, subjectID uuid.UUID, target, now time.Time, offsets []int) []ReminderJob {
	jobs := make([]ReminderJob, 0, len(offsets))
	for _, minutes := range offsets {
		runAt := target.Add(-time.Duration(minutes) * time.Minute)
		if !runAt.After(now) {
			continue
		}
		jobs = append(jobs, ReminderJob{
			Kind:          kind,
			SubjectID:     subjectID,
			MinutesBefore: minutes,
			RunAt:         runAt,
		})
	}
	return jobs
}

// ParseReminderKind validates a stored kind string.
func ParseReminderKind(s string) (ReminderKind, error) {
	switch ReminderKind(strings.TrimSpace(s)) {
	case ReminderOfferingConfirmation:
		return ReminderOfferingConfirmation, nil
	case ReminderProjectDeadline:
		return ReminderProjectDeadline, nil
	}
	return "", fmt.Errorf("unknown reminder kind %q", s)
}
