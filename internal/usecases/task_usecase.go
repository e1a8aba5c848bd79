package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"studio-ops.backend/internal/domain/entities"
	"studio-ops.backend/internal/domain/repositories"
	"studio-ops.backend/pkg/logger"
	"studio-ops.backend/pkg/utils"
)

// TaskUsecase handles tasks; every mutation keeps the project totals in sync
type TaskUsecase struct {
	uow         repositories.UnitOfWork
	taskRepo    repositories.TaskRepository
	projectRepo repositories.ProjectRepository
	offerings   *OfferingUsecase
}

func NewTaskUsecase(
	uow repositories.UnitOfWork,
	taskRepo repositories.TaskRepository,
	projectRepo repositories.ProjectRepository,
	offerings *OfferingUsecase,
) *TaskUsecase {
	return &TaskUsecase{uow: uow, taskRepo: taskRepo, projectRepo: projectRepo, offerings: offerings}
}

func (u *TaskUsecase) List(ctx context.Context, filter entities.TaskFilter) ([]*entities.Task, error) {
	return u.taskRepo.List(ctx, filter)
}

// Create adds a task and, once the project is out of DRAFT, posts it into the live thread.
func (u *TaskUsecase) Create(ctx context.Context, input *entities.CreateTaskInput) (*entities.Task, error) {
	project, err := u.projectRepo.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, notFoundAs(err, "Project not found")
	}

	task := &entities.Task{
		ID:         utils.GenerateUUIDv7(),
		ProjectID:  input.ProjectID,
		Fee:        input.Fee,
		ImageCount: input.ImageCount,
		Note:       null.StringFrom(input.Note),
	}
	for _, url := range input.Attachments {
		task.Attachments = append(task.Attachments, &entities.TaskAttachment{TaskID: task.ID, URL: url})
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.taskRepo.Create(ctx, task); err != nil {
			return err
		}
		return recalculateProject(ctx, u.taskRepo, u.projectRepo, input.ProjectID)
	})
	if err != nil {
		return nil, err
	}

	if project.Status != entities.ProjectStatusDraft {
		thread, err := u.offerings.ThreadForProject(ctx, project.ID, entities.OfferingStatusOffering, entities.OfferingStatusAccepted)
		if err != nil {
			logger.Warn(ctx, "Task not posted, thread unavailable", zap.String("task", task.ID.String()), zap.Error(err))
			return task, nil
		}
		if err := u.offerings.SendTask(ctx, thread.ThreadID, task, input.TaskNumber, project.AutoNumberTask); err != nil {
			logger.Error(ctx, "Failed to post task", zap.String("task", task.ID.String()), zap.Error(err))
		}
	}
	return task, nil
}

// Update changes fee, image count and note; a non-nil attachment list replaces the old one.
func (u *TaskUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateTaskInput) (*entities.Task, error) {
	task, err := u.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Task not found")
	}
	if input.Fee != nil {
		task.Fee = *input.Fee
	}
	if input.ImageCount != nil {
		task.ImageCount = *input.ImageCount
	}
	if input.Note != nil {
		task.Note = null.StringFrom(*input.Note)
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.taskRepo.Update(ctx, task); err != nil {
			return err
		}
		if input.Attachments != nil {
			attachments, err := u.taskRepo.ReplaceAttachments(ctx, id, input.Attachments)
			if err != nil {
				return err
			}
			task.Attachments = attachments
		}
		return recalculateProject(ctx, u.taskRepo, u.projectRepo, task.ProjectID)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task with its attachments.
func (u *TaskUsecase) Delete(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	task, err := u.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Task not found")
	}
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.taskRepo.Delete(ctx, id); err != nil {
			return err
		}
		return recalculateProject(ctx, u.taskRepo, u.projectRepo, task.ProjectID)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}
