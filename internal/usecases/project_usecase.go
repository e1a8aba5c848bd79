package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/domain/repositories"
	"studio-ops.backend/pkg/logger"
	"studio-ops.backend/pkg/utils"
)

var liveOfferingStatuses = []entities.OfferingStatus{entities.OfferingStatusAccepted, entities.OfferingStatusOffering}

// ProjectUsecase handles project intake and lifecycle
type ProjectUsecase struct {
	uow            repositories.UnitOfWork
	projectRepo    repositories.ProjectRepository
	taskRepo       repositories.TaskRepository
	attachmentRepo repositories.ProjectAttachmentRepository
	teamRepo       repositories.TeamRepository
	offerings      *OfferingUsecase
	now            func() time.Time
}

func NewProjectUsecase(
	uow repositories.UnitOfWork,
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	attachmentRepo repositories.ProjectAttachmentRepository,
	teamRepo repositories.TeamRepository,
	offerings *OfferingUsecase,
) *ProjectUsecase {
	return &ProjectUsecase{
		uow:            uow,
		projectRepo:    projectRepo,
		taskRepo:       taskRepo,
		attachmentRepo: attachmentRepo,
		teamRepo:       teamRepo,
		offerings:      offerings,
		now:            time.Now,
	}
}

// SetClock overrides the time source.
func (u *ProjectUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// Create stores the project with its tasks and attachments; a published project is offered right away.
func (u *ProjectUsecase) Create(ctx context.Context, input *entities.CreateProjectInput) (*entities.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.BadRequest("Name is required")
	}
	if input.IsPublished && input.TeamID == nil {
		return nil, domainerrors.BadRequest("Team is required to publish a project")
	}
	if input.TeamID != nil {
		team, err := u.teamRepo.GetByID(ctx, *input.TeamID)
		if err != nil {
			return nil, notFoundAs(err, "Team not found")
		}
		if input.IsPublished {
			if err := requireChatIdentity(team); err != nil {
				return nil, err
			}
		}
	}

	now := u.now()
	project := &entities.Project{
		ID:                   utils.GenerateUUIDv7(),
		Name:                 input.Name,
		ClientName:           optionalString(input.ClientName),
		ImageRatio:           optionalString(input.ImageRatio),
		Note:                 null.StringFrom(input.Note),
		Deadline:             input.Deadline,
		ConfirmationDuration: input.ConfirmationDuration,
		AutoNumberTask:       input.AutoNumberTask,
		Status:               entities.ProjectStatusDraft,
		TeamID:               input.TeamID,
	}
	if input.IsPublished {
		project.Status = entities.ProjectStatusOffering
		project.PublishedAt = null.TimeFrom(now)
	}

	tasks := make([]*entities.Task, 0, len(input.Tasks))
	for _, t := range input.Tasks {
		task := &entities.Task{
			ID:         utils.GenerateUUIDv7(),
			ProjectID:  project.ID,
			Fee:        t.Fee,
			ImageCount: t.ImageCount,
			Note:       null.StringFrom(t.Note),
		}
		for _, url := range t.Attachments {
			task.Attachments = append(task.Attachments, &entities.TaskAttachment{TaskID: task.ID, URL: url})
		}
		project.Fee += t.Fee
		project.ImageCount += t.ImageCount
		tasks = append(tasks, task)
	}

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.projectRepo.Create(ctx, project); err != nil {
			return err
		}
		for _, task := range tasks {
			if err := u.taskRepo.Create(ctx, task); err != nil {
				return err
			}
		}
		if len(input.Attachments) > 0 {
			attachments, err := u.attachmentRepo.CreateMany(ctx, project.ID, input.Attachments)
			if err != nil {
				return err
			}
			project.Attachments = attachments
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	project.Tasks = tasks

	if input.IsPublished {
		if err := u.offer(ctx, project, *input.TeamID); err != nil {
			return nil, err
		}
	}
	return project, nil
}

// offer opens the project's first offering. When no offering row could be
// recorded the project goes back to DRAFT so it can be published again.
func (u *ProjectUsecase) offer(ctx context.Context, project *entities.Project, teamID uuid.UUID) error {
	offering, err := u.offerings.Create(ctx, project.ID, teamID)
	if err == nil {
		return nil
	}
	logger.Error(ctx, "Failed to offer project", zap.String("project", project.ID.String()), zap.Error(err))

	if offering == nil {
		project.Status = entities.ProjectStatusDraft
		project.PublishedAt = null.Time{}
		if rerr := u.projectRepo.Update(ctx, project); rerr != nil {
			logger.Error(ctx, "Failed to return project to draft", zap.String("project", project.ID.String()), zap.Error(rerr))
		}
	}
	return chatFailure(err, "Failed to offer project")
}

func (u *ProjectUsecase) List(ctx context.Context, filter entities.ProjectFilter) ([]*entities.Project, utils.ListMeta, error) {
	projects, err := u.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.ListMeta{}, err
	}
	if filter.Page.Limit <= 0 {
		return projects, utils.ListMeta{HasPrev: filter.Page.Skip > 0, Skip: filter.Page.Skip}, nil
	}
	projects, meta := utils.Trim(projects, filter.Page)
	return projects, meta, nil
}

func (u *ProjectUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	project, err := u.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Project not found")
	}
	return project, nil
}

// Update applies a partial change and announces status transitions in the project thread.
func (u *ProjectUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateProjectInput) (*entities.Project, error) {
	project, err := u.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Project not found")
	}
	oldStatus := project.Status

	if input.Status != nil && !input.Status.Valid() {
		return nil, domainerrors.BadRequest("Invalid status")
	}
	if input.TeamID != nil {
		if _, err := u.teamRepo.GetByID(ctx, *input.TeamID); err != nil {
			return nil, notFoundAs(err, "Team not found")
		}
	}

	applyProjectUpdate(project, input)

	now := u.now()
	published := oldStatus == entities.ProjectStatusDraft && input.Status != nil && *input.Status != entities.ProjectStatusDraft
	done := oldStatus != entities.ProjectStatusDone && project.Status == entities.ProjectStatusDone
	if published {
		project.PublishedAt = null.TimeFrom(now)
	}
	if done {
		project.DoneAt = null.TimeFrom(now.UTC())
	}

	if err := u.projectRepo.Update(ctx, project); err != nil {
		return nil, notFoundAs(err, "Project not found")
	}

	if published && project.TeamID != nil {
		if err := u.offer(ctx, project, *project.TeamID); err != nil {
			return nil, err
		}
	}

	active := project.Status == entities.ProjectStatusInProgress || project.Status == entities.ProjectStatusRevision
	if input.Deadline != nil && active {
		u.offerings.CancelDeadlineReminders(ctx, id)
		u.offerings.ScheduleDeadlineReminders(ctx, project)
	}

	if input.Status != nil {
		switch {
		case *input.Status == entities.ProjectStatusDone:
			u.offerings.CancelDeadlineReminders(ctx, id)
			u.announce(ctx, id, projectDoneMessage)
		case *input.Status == entities.ProjectStatusCancelled:
			u.offerings.CancelDeadlineReminders(ctx, id)
			u.announce(ctx, id, projectCancelledMessage)
		case oldStatus == entities.ProjectStatusDone && project.Status == entities.ProjectStatusInProgress:
			u.announce(ctx, id, projectRevertedMessage)
		}
	}
	return project, nil
}

// Delete soft-deletes the project and, when asked, its live thread.
func (u *ProjectUsecase) Delete(ctx context.Context, id uuid.UUID, deleteThread bool) error {
	if err := u.projectRepo.SoftDelete(ctx, id); err != nil {
		return notFoundAs(err, "Project not found")
	}
	u.offerings.CancelDeadlineReminders(ctx, id)

	if !deleteThread {
		return nil
	}
	thread, err := u.offerings.ThreadForProject(ctx, id, liveOfferingStatuses...)
	if err != nil {
		logger.Warn(ctx, "No thread to delete", zap.String("project", id.String()), zap.Error(err))
		return nil
	}
	if err := u.offerings.DeleteThread(ctx, thread.ThreadID); err != nil {
		logger.Warn(ctx, "Failed to delete project thread", zap.String("thread", thread.ThreadID), zap.Error(err))
	}
	return nil
}

// Recalculate copies the task sums onto the project.
func (u *ProjectUsecase) Recalculate(ctx context.Context, projectID uuid.UUID) error {
	return recalculateProject(ctx, u.taskRepo, u.projectRepo, projectID)
}

func (u *ProjectUsecase) announce(ctx context.Context, projectID uuid.UUID, render func(userID string) *entities.ChatMessage) {
	thread, err := u.offerings.ThreadForProject(ctx, projectID, liveOfferingStatuses...)
	if err != nil {
		logger.Warn(ctx, "Project thread unavailable", zap.String("project", projectID.String()), zap.Error(err))
		return
	}
	if err := u.offerings.Notify(ctx, thread.ThreadID, render(thread.Team.DiscordUserID.String)); err != nil {
		logger.Error(ctx, "Failed to announce project status", zap.String("project", projectID.String()), zap.Error(err))
	}
}

func recalculateProject(ctx context.Context, taskRepo repositories.TaskRepository, projectRepo repositories.ProjectRepository, projectID uuid.UUID) error {
	totals, err := taskRepo.SumByProject(ctx, projectID)
	if err != nil {
		return err
	}
	return projectRepo.SetTotals(ctx, projectID, totals)
}

func applyProjectUpdate(p *entities.Project, in *entities.UpdateProjectInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.ImageRatio != nil {
		p.ImageRatio = null.StringFrom(*in.ImageRatio)
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.TeamID != nil {
		p.TeamID = in.TeamID
	}
	if in.ImageCount != nil {
		p.ImageCount = *in.ImageCount
	}
	if in.ClientName != nil {
		p.ClientName = null.StringFrom(*in.ClientName)
	}
	if in.Note != nil {
		p.Note = null.StringFrom(*in.Note)
	}
	if in.Fee != nil {
		p.Fee = *in.Fee
	}
	if in.Deadline != nil {
		p.Deadline = *in.Deadline
	}
	if in.AutoNumberTask != nil {
		p.AutoNumberTask = *in.AutoNumberTask
	}
	if in.ConfirmationDuration != nil {
		p.ConfirmationDuration = *in.ConfirmationDuration
	}
}

func optionalString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
