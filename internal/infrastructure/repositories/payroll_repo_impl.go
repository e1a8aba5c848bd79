package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/infrastructure/models"
)

// PayrollRepository implements payroll data operations
type PayrollRepository struct {
	db *gorm.DB
}

func NewPayrollRepository(db *gorm.DB) *PayrollRepository {
	return &PayrollRepository{db: db}
}

func (r *PayrollRepository) Create(ctx context.Context, payroll *entities.Payroll) error {
	if payroll.ID == uuid.Nil {
		payroll.ID = uuid.New()
	}
	m := &models.Payroll{
		ID:          payroll.ID,
		TeamID:      payroll.TeamID,
		PeriodStart: payroll.PeriodStart,
		PeriodEnd:   payroll.PeriodEnd,
		Status:      string(payroll.Status),
		Amount:      payroll.Amount,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Omit("Team", "Projects").Create(m).Error; err != nil {
		return err
	}
	payroll.CreatedAt = m.CreatedAt
	payroll.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *PayrollRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payroll, error) {
	var m models.Payroll
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return payrollToEntity(&m), nil
}

func (r *PayrollRepository) List(ctx context.Context, filter entities.PayrollFilter) ([]*entities.Payroll, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Payroll{})
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.TeamID != nil {
		query = query.Where("team_id = ?", *filter.TeamID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.WithTeam {
		query = query.Preload("Team")
	}
	if filter.WithProjects {
		query = query.Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	}

	if filter.Page.SortDesc {
		query = query.Order("created_at DESC")
	} else {
		query = query.Order("created_at ASC")
	}
	if filter.Page.Limit > 0 {
		query = query.Limit(filter.Page.FetchLimit())
	}
	if filter.Page.Skip > 0 {
		query = query.Offset(filter.Page.Skip)
	}

	var ms []models.Payroll
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Payroll, 0, len(ms))
	for i := range ms {
		items = append(items, payrollToEntity(&ms[i]))
	}
	return items, nil
}

func (r *PayrollRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PayrollStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Payroll{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *PayrollRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Payroll{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func payrollToEntity(m *models.Payroll) *entities.Payroll {
	e := &entities.Payroll{
		ID:          m.ID,
		TeamID:      m.TeamID,
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		Status:      entities.PayrollStatus(m.Status),
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAtPtr(m.DeletedAt),
		Team:        teamToEntity(m.Team),
	}
	for i := range m.Projects {
		e.Projects = append(e.Projects, projectToEntity(&m.Projects[i]))
	}
	return e
}
