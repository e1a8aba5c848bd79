package usecases

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/domain/gateways"
	"studio-ops.backend/internal/domain/repositories"
	"studio-ops.backend/pkg/logger"
	"studio-ops.backend/pkg/utils"
)

// ReminderUsecase delivers due reminders after re-checking current state
type ReminderUsecase struct {
	offeringRepo repositories.OfferingRepository
	projectRepo  repositories.ProjectRepository
	chat         gateways.ChatGateway
	admin        AdminPolicy
	now          func() time.Time
}

func NewReminderUsecase(
	offeringRepo repositories.OfferingRepository,
	projectRepo repositories.ProjectRepository,
	chat gateways.ChatGateway,
	admin AdminPolicy,
) *ReminderUsecase {
	return &ReminderUsecase{
		offeringRepo: offeringRepo,
		projectRepo:  projectRepo,
		chat:         chat,
		admin:        admin,
		now:          time.Now,
	}
}

// SetClock overrides the time source.
func (u *ReminderUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// Handle posts the reminder, or drops it silently when it no longer applies.
func (u *ReminderUsecase) Handle(ctx context.Context, job entities.ReminderJob) error {
	var (
		msg      *entities.ChatMessage
		threadID string
		err      error
	)
	switch job.Kind {
	case entities.ReminderOfferingConfirmation:
		threadID, msg, err = u.offeringReminder(ctx, job)
	case entities.ReminderProjectDeadline:
		threadID, msg, err = u.deadlineReminder(ctx, job)
	default:
		logger.Warn(ctx, "Unknown reminder kind", zap.String("job", job.ID()))
		return nil
	}
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			logger.Debug(ctx, "Reminder subject gone", zap.String("job", job.ID()))
			return nil
		}
		return err
	}
	if msg == nil {
		logger.Debug(ctx, "Reminder no longer applies", zap.String("job", job.ID()))
		return nil
	}

	_, err = u.chat.Send(ctx, threadID, msg)
	return err
}

func (u *ReminderUsecase) offeringReminder(ctx context.Context, job entities.ReminderJob) (string, *entities.ChatMessage, error) {
	offering, err := u.offeringRepo.GetByID(ctx, job.SubjectID)
	if err != nil {
		return "", nil, err
	}
	if offering.Status != entities.OfferingStatusOffering || !offering.DiscordThreadID.Valid || offering.DiscordThreadID.String == "" {
		return "", nil, nil
	}
	project, err := u.projectRepo.GetByID(ctx, offering.ProjectID)
	if err != nil {
		return "", nil, err
	}

	now := u.now()
	confirmBy := offering.CreatedAt.Add(project.ConfirmationWindow())
	if now.After(confirmBy) && job.MinutesBefore != 0 {
		return "", nil, nil
	}

	userID := ""
	if offering.Team != nil {
		userID = offering.Team.DiscordUserID.String
	}
	if job.MinutesBefore == 0 {
		return offering.DiscordThreadID.String, offeringExpiredMessage(userID, u.admin.UserID()), nil
	}
	return offering.DiscordThreadID.String, offeringReminderMessage(userID, utils.FormatRemaining(confirmBy.Sub(now))), nil
}

func (u *ReminderUsecase) deadlineReminder(ctx context.Context, job entities.ReminderJob) (string, *entities.ChatMessage, error) {
	project, err := u.projectRepo.GetByID(ctx, job.SubjectID)
	if err != nil {
		return "", nil, err
	}
	if project.Status == entities.ProjectStatusDone || project.Status == entities.ProjectStatusCancelled {
		return "", nil, nil
	}

	offering, err := u.offeringRepo.LatestForProject(ctx, project.ID, entities.OfferingStatusAccepted)
	if err != nil {
		return "", nil, err
	}
	if !offering.DiscordThreadID.Valid || offering.DiscordThreadID.String == "" {
		return "", nil, nil
	}

	userID := ""
	if offering.Team != nil {
		userID = offering.Team.DiscordUserID.String
	}
	if job.MinutesBefore == 0 {
		return offering.DiscordThreadID.String, deadlineReachedMessage(userID, u.admin.UserID()), nil
	}
	return offering.DiscordThreadID.String, deadlineReminderMessage(userID, job.MinutesBefore), nil
}
