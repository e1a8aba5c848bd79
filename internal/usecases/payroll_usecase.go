package usecases

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/domain/repositories"
	"studio-ops.backend/pkg/logger"
	"studio-ops.backend/pkg/utils"
)

// PayrollUsecase bundles a team's projects into payable batches
type PayrollUsecase struct {
	uow         repositories.UnitOfWork
	payrollRepo repositories.PayrollRepository
	projectRepo repositories.ProjectRepository
	teamRepo    repositories.TeamRepository
	offerings   *OfferingUsecase
}

func NewPayrollUsecase(
	uow repositories.UnitOfWork,
	payrollRepo repositories.PayrollRepository,
	projectRepo repositories.ProjectRepository,
	teamRepo repositories.TeamRepository,
	offerings *OfferingUsecase,
) *PayrollUsecase {
	return &PayrollUsecase{
		uow:         uow,
		payrollRepo: payrollRepo,
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		offerings:   offerings,
	}
}

// Create sums the project fees into a new payroll; a PAID payroll marks its projects paid.
func (u *PayrollUsecase) Create(ctx context.Context, input *entities.CreatePayrollInput) (*entities.Payroll, error) {
	if !input.Status.Valid() {
		return nil, domainerrors.BadRequest("Invalid status")
	}
	if input.PeriodEnd.Before(input.PeriodStart) {
		return nil, domainerrors.BadRequest("Period end must not be before period start")
	}
	ids := uniqueIDs(input.ProjectIDs)
	if len(ids) == 0 {
		return nil, domainerrors.BadRequest("At least one project is required")
	}
	if _, err := u.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		return nil, notFoundAs(err, "Team not found")
	}

	payroll := &entities.Payroll{
		ID:          utils.GenerateUUIDv7(),
		TeamID:      input.TeamID,
		PeriodStart: input.PeriodStart,
		PeriodEnd:   input.PeriodEnd,
		Status:      input.Status,
	}
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		projects, err := u.projectRepo.ListByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(projects) != len(ids) {
			return domainerrors.NotFound("Project not found")
		}
		for _, p := range projects {
			payroll.Amount += p.Fee
		}
		if err := u.payrollRepo.Create(ctx, payroll); err != nil {
			return err
		}
		if err := u.projectRepo.LinkPayroll(ctx, payroll.ID, ids); err != nil {
			return err
		}
		if payroll.Status == entities.PayrollStatusPaid {
			return u.projectRepo.MarkPaidByPayroll(ctx, payroll.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if payroll.Status == entities.PayrollStatusPaid {
		u.offerings.ReactPaid(ctx, ids)
	}
	logger.Info(ctx, "Payroll created",
		zap.String("payroll", payroll.ID.String()),
		zap.Int64("amount", payroll.Amount),
		zap.Int("projects", len(ids)),
	)
	return payroll, nil
}

// Update changes the payroll status; moving to PAID marks every linked project paid.
func (u *PayrollUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdatePayrollInput) (*entities.Payroll, error) {
	if !input.Status.Valid() {
		return nil, domainerrors.BadRequest("Invalid status")
	}
	if _, err := u.payrollRepo.GetByID(ctx, id); err != nil {
		return nil, notFoundAs(err, "Payroll not found")
	}

	var linked []*entities.Project
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.payrollRepo.UpdateStatus(ctx, id, input.Status); err != nil {
			return err
		}
		if input.Status != entities.PayrollStatusPaid {
			return nil
		}
		if err := u.projectRepo.MarkPaidByPayroll(ctx, id); err != nil {
			return err
		}
		var err error
		linked, err = u.projectRepo.ListByPayroll(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if input.Status == entities.PayrollStatusPaid {
		ids := make([]uuid.UUID, 0, len(linked))
		for _, p := range linked {
			ids = append(ids, p.ID)
		}
		u.offerings.ReactPaid(ctx, ids)
	}
	return u.payrollRepo.GetByID(ctx, id)
}

// Delete soft-deletes the payroll and releases its projects.
func (u *PayrollUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.payrollRepo.SoftDelete(ctx, id); err != nil {
			return notFoundAs(err, "Payroll not found")
		}
		return u.projectRepo.UnlinkPayroll(ctx, id)
	})
}

func (u *PayrollUsecase) List(ctx context.Context, filter entities.PayrollFilter) ([]*entities.Payroll, utils.ListMeta, error) {
	payrolls, err := u.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.ListMeta{}, err
	}
	if filter.Page.Limit <= 0 {
		return payrolls, utils.ListMeta{HasPrev: filter.Page.Skip > 0, Skip: filter.Page.Skip}, nil
	}
	payrolls, meta := utils.Trim(payrolls, filter.Page)
	return payrolls, meta, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
