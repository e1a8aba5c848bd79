package repositories

import (
	"context"

	"github.com/google/uuid"
	"studio-ops.backend/internal/domain/entities"
)

// ProjectRepository defines project data operations. Reads never return soft-deleted projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	List(ctx context.Context, filter entities.ProjectFilter) ([]*entities.Project, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Project, error)
	ListByPayroll(ctx context.Context, payrollID uuid.UUID) ([]*entities.Project, error)
	Update(ctx context.Context, project *entities.Project) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ProjectStatus) error
	SetTotals(ctx context.Context, id uuid.UUID, totals entities.TaskTotals) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	LinkPayroll(ctx context.Context, payrollID uuid.UUID, projectIDs []uuid.UUID) error
	UnlinkPayroll(ctx context.Context, payrollID uuid.UUID) error
	// MarkPaidByPayroll flips is_paid on exactly the projects linked to the payroll.
	MarkPaidByPayroll(ctx context.Context, payrollID uuid.UUID) error
}

// ProjectAttachmentRepository defines project attachment data operations
type ProjectAttachmentRepository interface {
	Create(ctx context.Context, attachment *entities.ProjectAttachment) error
	CreateMany(ctx context.Context, projectID uuid.UUID, urls []string) ([]*entities.ProjectAttachment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ProjectAttachment, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectAttachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
