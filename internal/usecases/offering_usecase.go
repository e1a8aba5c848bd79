package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/domain/gateways"
	"studio-ops.backend/internal/domain/repositories"
	"studio-ops.backend/pkg/logger"
	"studio-ops.backend/pkg/utils"
)

// ReminderSettings holds reminder offsets in minutes and the studio clock zone
type ReminderSettings struct {
	OfferingOffsets []int
	DeadlineOffsets []int
	Location        *time.Location
}

// ProjectThread is the live chat thread of a project's newest offering
type ProjectThread struct {
	Offering *entities.Offering
	Team     *entities.Team
	ThreadID string
}

// OfferingUsecase drives the offer/accept/reject workflow in chat
type OfferingUsecase struct {
	uow            repositories.UnitOfWork
	offeringRepo   repositories.OfferingRepository
	projectRepo    repositories.ProjectRepository
	teamRepo       repositories.TeamRepository
	taskRepo       repositories.TaskRepository
	attachmentRepo repositories.ProjectAttachmentRepository
	chat           gateways.ChatGateway
	queue          gateways.ReminderQueue
	admin          AdminPolicy
	settings       ReminderSettings
	now            func() time.Time
}

func NewOfferingUsecase(
	uow repositories.UnitOfWork,
	offeringRepo repositories.OfferingRepository,
	projectRepo repositories.ProjectRepository,
	teamRepo repositories.TeamRepository,
	taskRepo repositories.TaskRepository,
	attachmentRepo repositories.ProjectAttachmentRepository,
	chat gateways.ChatGateway,
	queue gateways.ReminderQueue,
	admin AdminPolicy,
	settings ReminderSettings,
) *OfferingUsecase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &OfferingUsecase{
		uow:            uow,
		offeringRepo:   offeringRepo,
		projectRepo:    projectRepo,
		teamRepo:       teamRepo,
		taskRepo:       taskRepo,
		attachmentRepo: attachmentRepo,
		chat:           chat,
		queue:          queue,
		admin:          admin,
		settings:       settings,
		now:            time.Now,
	}
}

// SetClock overrides the time source.
func (u *OfferingUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// Create opens a thread in the team's channel, records the offering and posts the brief.
func (u *OfferingUsecase) Create(ctx context.Context, projectID, teamID uuid.UUID) (*entities.Offering, error) {
	project, err := u.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, notFoundAs(err, "Project not found")
	}
	team, err := u.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, notFoundAs(err, "Team not found")
	}
	if err := requireChatIdentity(team); err != nil {
		return nil, err
	}

	tasks, err := u.taskRepo.List(ctx, entities.TaskFilter{ProjectID: &projectID})
	if err != nil {
		return nil, err
	}
	attachments, err := u.attachmentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	threadID, err := u.chat.CreateThread(ctx, team.DiscordChannelID.String, project.Name)
	if err != nil {
		return nil, err
	}
	if err := u.chat.AddThreadMember(ctx, threadID, team.DiscordUserID.String); err != nil {
		return nil, err
	}
	if adminID := u.admin.UserID(); adminID != "" {
		if err := u.chat.AddThreadMember(ctx, threadID, adminID); err != nil {
			logger.Warn(ctx, "Failed to add admin to thread", zap.String("thread", threadID), zap.Error(err))
		}
	}

	offering := &entities.Offering{
		ID:              utils.GenerateUUIDv7(),
		ProjectID:       projectID,
		TeamID:          teamID,
		Status:          entities.OfferingStatusOffering,
		DiscordThreadID: null.StringFrom(threadID),
		Team:            team,
	}
	if err := u.offeringRepo.Create(ctx, offering); err != nil {
		return nil, err
	}

	now := u.now()
	confirmBy := now.Add(project.ConfirmationWindow())
	u.schedule(ctx, entities.PlanReminders(
		entities.ReminderOfferingConfirmation, offering.ID, confirmBy, now, u.settings.OfferingOffsets,
	))

	messages := []*entities.ChatMessage{
		offeringBriefMessage(project, utils.FormatDeadline(project.Deadline, now, u.settings.Location)),
	}
	if project.Note.Valid && project.Note.String != "" {
		messages = append(messages, &entities.ChatMessage{Content: project.Note.String})
	}
	if len(attachments) > 0 {
		urls := make([]string, 0, len(attachments))
		for i := len(attachments) - 1; i >= 0; i-- {
			urls = append(urls, attachments[i].URL)
		}
		messages = append(messages, projectAttachmentsMessage(urls))
	}
	messages = append(messages, confirmationPromptMessage(
		offering.ID, team.DiscordUserID.String, utils.FormatDeadline(confirmBy, now, u.settings.Location),
	))
	for i, task := range tasks {
		messages = append(messages, taskMessage(task, i+1, project.AutoNumberTask))
	}

	for _, msg := range messages {
		if _, err := u.chat.Send(ctx, threadID, msg); err != nil {
			return offering, fmt.Errorf("failed to post offering brief: %w", err)
		}
	}

	logger.Info(ctx, "Offering created",
		zap.String("offering", offering.ID.String()),
		zap.String("project", projectID.String()),
		zap.String("thread", threadID),
	)
	return offering, nil
}

// Accept moves the offering to ACCEPTED and the project to IN_PROGRESS.
// It fails with a conflict when the offering already left OFFERING.
func (u *OfferingUsecase) Accept(ctx context.Context, offeringID uuid.UUID) (*entities.Offering, error) {
	var offering *entities.Offering
	var project *entities.Project
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.offeringRepo.TransitionStatus(ctx, offeringID, entities.OfferingStatusOffering, entities.OfferingStatusAccepted); err != nil {
			return transitionError(err)
		}
		var err error
		offering, err = u.offeringRepo.GetByID(ctx, offeringID)
		if err != nil {
			return err
		}
		if err := u.projectRepo.UpdateStatus(ctx, offering.ProjectID, entities.ProjectStatusInProgress); err != nil {
			return notFoundAs(err, "Project not found")
		}
		project, err = u.projectRepo.GetByID(ctx, offering.ProjectID)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.unschedule(ctx, entities.ReminderPrefix(entities.ReminderOfferingConfirmation, offeringID))

	threadID := offering.DiscordThreadID.String
	if threadID == "" {
		return offering, nil
	}

	now := u.now()
	if _, err := u.chat.Send(ctx, threadID, acceptedMessage(utils.FormatDeadline(project.Deadline, now, u.settings.Location))); err != nil {
		logger.Error(ctx, "Failed to post acceptance", zap.String("offering", offeringID.String()), zap.Error(err))
	}
	if err := u.chat.ReactToStarter(ctx, threadID, reactionAccepted); err != nil {
		logger.Warn(ctx, "Failed to react on thread starter", zap.String("thread", threadID), zap.Error(err))
	}

	u.ScheduleDeadlineReminders(ctx, project)
	return offering, nil
}

// Reject closes the offering and asks the admin to pick another team.
func (u *OfferingUsecase) Reject(ctx context.Context, offeringID uuid.UUID) (*entities.Offering, error) {
	if err := u.offeringRepo.TransitionStatus(ctx, offeringID, entities.OfferingStatusOffering, entities.OfferingStatusRejected); err != nil {
		return nil, transitionError(err)
	}
	offering, err := u.offeringRepo.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}

	u.unschedule(ctx, entities.ReminderPrefix(entities.ReminderOfferingConfirmation, offeringID))

	threadID := offering.DiscordThreadID.String
	if threadID == "" {
		return offering, nil
	}
	if offering.Team != nil && offering.Team.DiscordUserID.String != "" {
		if err := u.chat.RemoveThreadMember(ctx, threadID, offering.Team.DiscordUserID.String); err != nil {
			logger.Warn(ctx, "Failed to remove team from thread", zap.String("thread", threadID), zap.Error(err))
		}
	}

	teams, err := u.teamRepo.List(ctx, entities.TeamFilter{})
	if err != nil {
		return offering, err
	}
	if _, err := u.chat.Send(ctx, threadID, chooseTeamMessage(offering.ProjectID, teams)); err != nil {
		logger.Error(ctx, "Failed to post team selection", zap.String("offering", offeringID.String()), zap.Error(err))
	}
	return offering, nil
}

// ChooseTeam opens a fresh offering for another team and re-assigns the project to it.
// staleChannelID, when set, is deleted afterwards on a best-effort basis.
func (u *OfferingUsecase) ChooseTeam(ctx context.Context, projectID, teamID uuid.UUID, staleChannelID string) (*entities.Offering, error) {
	project, err := u.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, notFoundAs(err, "Project not found")
	}
	team, err := u.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, notFoundAs(err, "Team not found")
	}
	if err := requireChatIdentity(team); err != nil {
		return nil, err
	}

	// The project moves to the new team only once an offering row exists for it.
	offering, err := u.Create(ctx, projectID, teamID)
	if offering == nil {
		return nil, err
	}
	project.TeamID = &teamID
	project.Status = entities.ProjectStatusOffering
	if uerr := u.projectRepo.Update(ctx, project); uerr != nil {
		return offering, uerr
	}
	if err != nil {
		return offering, err
	}

	if staleChannelID != "" {
		if err := u.chat.DeleteChannel(ctx, staleChannelID); err != nil {
			logger.Warn(ctx, "Failed to delete stale thread", zap.String("channel", staleChannelID), zap.Error(err))
		}
	}
	return offering, nil
}

func (u *OfferingUsecase) List(ctx context.Context, filter entities.OfferingFilter) ([]*entities.Offering, error) {
	return u.offeringRepo.List(ctx, filter)
}

// ThreadForProject resolves the newest offering of the project in one of the statuses
// together with its team and verified thread.
func (u *OfferingUsecase) ThreadForProject(ctx context.Context, projectID uuid.UUID, statuses ...entities.OfferingStatus) (*ProjectThread, error) {
	offering, err := u.offeringRepo.LatestForProject(ctx, projectID, statuses...)
	if err != nil {
		return nil, notFoundAs(err, "Offering not found")
	}

	team := offering.Team
	if team == nil {
		team, err = u.teamRepo.GetByID(ctx, offering.TeamID)
		if err != nil {
			return nil, notFoundAs(err, "Team not found")
		}
	}
	if !team.DiscordChannelID.Valid || team.DiscordChannelID.String == "" {
		return nil, domainerrors.NotFound("Channel not found")
	}
	if !offering.DiscordThreadID.Valid || offering.DiscordThreadID.String == "" {
		return nil, domainerrors.NotFound("Thread not found")
	}
	if err := u.chat.VerifyThread(ctx, offering.DiscordThreadID.String); err != nil {
		return nil, err
	}

	return &ProjectThread{Offering: offering, Team: team, ThreadID: offering.DiscordThreadID.String}, nil
}

// SendTask posts one task into an offering thread.
func (u *OfferingUsecase) SendTask(ctx context.Context, threadID string, task *entities.Task, number int, autoNumber bool) error {
	_, err := u.chat.Send(ctx, threadID, taskMessage(task, number, autoNumber))
	return err
}

// Notify posts a plain message; used for status announcements.
func (u *OfferingUsecase) Notify(ctx context.Context, threadID string, msg *entities.ChatMessage) error {
	_, err := u.chat.Send(ctx, threadID, msg)
	return err
}

// CancelDeadlineReminders drops pending deadline jobs of the project.
func (u *OfferingUsecase) CancelDeadlineReminders(ctx context.Context, projectID uuid.UUID) {
	u.unschedule(ctx, entities.ReminderPrefix(entities.ReminderProjectDeadline, projectID))
}

// ScheduleDeadlineReminders enqueues the project's future deadline reminders.
func (u *OfferingUsecase) ScheduleDeadlineReminders(ctx context.Context, project *entities.Project) {
	u.schedule(ctx, entities.PlanReminders(
		entities.ReminderProjectDeadline, project.ID, project.Deadline, u.now(), u.settings.DeadlineOffsets,
	))
}

// DeleteThread removes a thread channel.
func (u *OfferingUsecase) DeleteThread(ctx context.Context, threadID string) error {
	return u.chat.DeleteChannel(ctx, threadID)
}

// ReactPaid marks the accepted thread of each project as paid.
func (u *OfferingUsecase) ReactPaid(ctx context.Context, projectIDs []uuid.UUID) {
	for _, id := range projectIDs {
		offering, err := u.offeringRepo.LatestForProject(ctx, id, entities.OfferingStatusAccepted)
		if err != nil {
			if !errors.Is(err, domainerrors.ErrNotFound) {
				logger.Warn(ctx, "Failed to load accepted offering", zap.String("project", id.String()), zap.Error(err))
			}
			continue
		}
		if !offering.DiscordThreadID.Valid || offering.DiscordThreadID.String == "" {
			continue
		}
		if err := u.chat.ReactToStarter(ctx, offering.DiscordThreadID.String, reactionPaid); err != nil {
			logger.Warn(ctx, "Failed to react paid", zap.String("project", id.String()), zap.Error(err))
		}
	}
}

func (u *OfferingUsecase) schedule(ctx context.Context, jobs []entities.ReminderJob) {
	if len(jobs) == 0 || u.queue == nil {
		return
	}
	if err := u.queue.Enqueue(ctx, jobs...); err != nil {
		logger.Error(ctx, "Failed to schedule reminders", zap.String("job", jobs[0].ID()), zap.Error(err))
	}
}

func (u *OfferingUsecase) unschedule(ctx context.Context, prefix string) {
	if u.queue == nil {
		return
	}
	if _, err := u.queue.RemoveByPrefix(ctx, prefix); err != nil {
		logger.Warn(ctx, "Failed to remove reminders", zap.String("prefix", prefix), zap.Error(err))
	}
}

func requireChatIdentity(team *entities.Team) error {
	if !team.DiscordChannelID.Valid || team.DiscordChannelID.String == "" {
		return domainerrors.NotFound("Discord channel id is empty")
	}
	if !team.DiscordUserID.Valid || team.DiscordUserID.String == "" {
		return domainerrors.NotFound("Discord user id is empty")
	}
	return nil
}
