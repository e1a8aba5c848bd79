package repositories

import (
	"context"

	"github.com/google/uuid"
	"studio-ops.backend/internal/domain/entities"
)

// PayrollRepository defines payroll data operations. Reads never return soft-deleted payrolls.
type PayrollRepository interface {
	Create(ctx context.Context, payroll *entities.Payroll) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payroll, error)
	List(ctx context.Context, filter entities.PayrollFilter) ([]*entities.Payroll, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PayrollStatus) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
