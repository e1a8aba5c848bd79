package repositories

import (
	"context"

	"github.com/google/uuid"
	"studio-ops.backend/internal/domain/entities"
)

// TaskRepository defines task data operations. Attachments are loaded with every read.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	List(ctx context.Context, filter entities.TaskFilter) ([]*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	ReplaceAttachments(ctx context.Context, taskID uuid.UUID, urls []string) ([]*entities.TaskAttachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SumByProject(ctx context.Context, projectID uuid.UUID) (entities.TaskTotals, error)
}
