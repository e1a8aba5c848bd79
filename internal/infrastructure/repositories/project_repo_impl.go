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

// ProjectRepository implements project data operations
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	m := r.toModel(project)
	if err := GetDB(ctx, r.db).WithContext(ctx).Omit("Team", "Payroll", "Offerings").Create(m).Error; err != nil {
		return err
	}
	project.CreatedAt = m.CreatedAt
	project.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	var m models.Project
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Team").
		Where("id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return projectToEntity(&m), nil
}

func (r *ProjectRepository) List(ctx context.Context, filter entities.ProjectFilter) ([]*entities.Project, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Project{})
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.TeamID != nil {
		query = query.Where("team_id = ?", *filter.TeamID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.IsPaid != nil {
		query = query.Where("is_paid = ?", *filter.IsPaid)
	}
	if filter.CreatedAtGTE != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAtGTE)
	}
	if filter.CreatedAtLTE != nil {
		query = query.Where("created_at <= ?", *filter.CreatedAtLTE)
	}
	if filter.WithTeam {
		query = query.Preload("Team")
	}
	if filter.WithPayroll {
		query = query.Preload("Payroll")
	}
	if filter.WithOffering {
		query = query.Preload("Offerings", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		})
	}

	order := "created_at DESC"
	if !filter.Page.SortDesc {
		order = "created_at ASC"
	}
	query = query.Order(order)
	if filter.Page.Limit > 0 {
		query = query.Limit(filter.Page.FetchLimit())
	}
	if filter.Page.Skip > 0 {
		query = query.Offset(filter.Page.Skip)
	}

	var ms []models.Project
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return projectsToEntities(ms), nil
}

func (r *ProjectRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Project, error) {
	if len(ids) == 0 {
		return []*entities.Project{}, nil
	}
	var ms []models.Project
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return projectsToEntities(ms), nil
}

func (r *ProjectRepository) ListByPayroll(ctx context.Context, payrollID uuid.UUID) ([]*entities.Project, error) {
	var ms []models.Project
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("payroll_id = ?", payrollID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return projectsToEntities(ms), nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *entities.Project) error {
	updates := map[string]interface{}{
		"name":                  project.Name,
		"client_name":           stringPtr(project.ClientName),
		"image_ratio":           stringPtr(project.ImageRatio),
		"note":                  stringPtr(project.Note),
		"fee":                   project.Fee,
		"image_count":           project.ImageCount,
		"deadline":              project.Deadline,
		"confirmation_duration": project.ConfirmationDuration,
		"auto_number_task":      project.AutoNumberTask,
		"status":                string(project.Status),
		"is_paid":               project.IsPaid,
		"team_id":               project.TeamID,
		"published_at":          timePtr(project.PublishedAt),
		"done_at":               timePtr(project.DoneAt),
		"updated_at":            time.Now(),
	}
	return r.updateColumns(ctx, project.ID, updates)
}

// UpdateStatus also stamps done_at when the project enters DONE.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ProjectStatus) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if status == entities.ProjectStatusDone {
		updates["done_at"] = time.Now().UTC()
	}
	return r.updateColumns(ctx, id, updates)
}

func (r *ProjectRepository) SetTotals(ctx context.Context, id uuid.UUID, totals entities.TaskTotals) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"fee":         totals.Fee,
		"image_count": totals.ImageCount,
		"updated_at":  time.Now(),
	})
}

func (r *ProjectRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) LinkPayroll(ctx context.Context, payrollID uuid.UUID, projectIDs []uuid.UUID) error {
	if len(projectIDs) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Project{}).
		Where("id IN ?", projectIDs).
		Updates(map[string]interface{}{"payroll_id": payrollID, "updated_at": time.Now()}).Error
}

func (r *ProjectRepository) UnlinkPayroll(ctx context.Context, payrollID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Project{}).
		Where("payroll_id = ?", payrollID).
		Updates(map[string]interface{}{"payroll_id": nil, "updated_at": time.Now()}).Error
}

func (r *ProjectRepository) MarkPaidByPayroll(ctx context.Context, payrollID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Project{}).
		Where("payroll_id = ? AND is_paid = ?", payrollID, false).
		Updates(map[string]interface{}{"is_paid": true, "updated_at": time.Now()}).Error
}

func (r *ProjectRepository) updateColumns(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func projectsToEntities(ms []models.Project) []*entities.Project {
	items := make([]*entities.Project, 0, len(ms))
	for i := range ms {
		items = append(items, projectToEntity(&ms[i]))
	}
	return items
}

func projectToEntity(m *models.Project) *entities.Project {
	e := &entities.Project{
		ID:                   m.ID,
		Name:                 m.Name,
		ClientName:           nullString(m.ClientName),
		ImageRatio:           nullString(m.ImageRatio),
		Note:                 nullString(m.Note),
		Fee:                  m.Fee,
		ImageCount:           m.ImageCount,
		Deadline:             m.Deadline,
		ConfirmationDuration: m.ConfirmationDuration,
		AutoNumberTask:       m.AutoNumberTask,
		Status:               entities.ProjectStatus(m.Status),
		IsPaid:               m.IsPaid,
		TeamID:               m.TeamID,
		PayrollID:            m.PayrollID,
		PublishedAt:          nullTime(m.PublishedAt),
		DoneAt:               nullTime(m.DoneAt),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		DeletedAt:            deletedAtPtr(m.DeletedAt),
		Team:                 teamToEntity(m.Team),
	}
	if m.Payroll != nil {
		e.Payroll = payrollToEntity(m.Payroll)
	}
	for i := range m.Offerings {
		e.Offerings = append(e.Offerings, offeringToEntity(&m.Offerings[i]))
	}
	return e
}

func (r *ProjectRepository) toModel(e *entities.Project) *models.Project {
	return &models.Project{
		ID:                   e.ID,
		Name:                 e.Name,
		ClientName:           stringPtr(e.ClientName),
		ImageRatio:           stringPtr(e.ImageRatio),
		Note:                 stringPtr(e.Note),
		Fee:                  e.Fee,
		ImageCount:           e.ImageCount,
		Deadline:             e.Deadline,
		ConfirmationDuration: e.ConfirmationDuration,
		AutoNumberTask:       e.AutoNumberTask,
		Status:               string(e.Status),
		IsPaid:               e.IsPaid,
		TeamID:               e.TeamID,
		PayrollID:            e.PayrollID,
		PublishedAt:          timePtr(e.PublishedAt),
		DoneAt:               timePtr(e.DoneAt),
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

// ProjectAttachmentRepository implements project attachment data operations
type ProjectAttachmentRepository struct {
	db *gorm.DB
}

func NewProjectAttachmentRepository(db *gorm.DB) *ProjectAttachmentRepository {
	return &ProjectAttachmentRepository{db: db}
}

func (r *ProjectAttachmentRepository) Create(ctx context.Context, attachment *entities.ProjectAttachment) error {
	if attachment.ID == uuid.Nil {
		attachment.ID = uuid.New()
	}
	m := &models.ProjectAttachment{ID: attachment.ID, ProjectID: attachment.ProjectID, URL: attachment.URL}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	attachment.CreatedAt = m.CreatedAt
	return nil
}

func (r *ProjectAttachmentRepository) CreateMany(ctx context.Context, projectID uuid.UUID, urls []string) ([]*entities.ProjectAttachment, error) {
	items := make([]*entities.ProjectAttachment, 0, len(urls))
	for _, url := range urls {
		a := &entities.ProjectAttachment{ProjectID: projectID, URL: url}
		if err := r.Create(ctx, a); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, nil
}

func (r *ProjectAttachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ProjectAttachment, error) {
	var m models.ProjectAttachment
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return projectAttachmentToEntity(&m), nil
}

// ListByProject returns the newest attachment first.
func (r *ProjectAttachmentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectAttachment, error) {
	var ms []models.ProjectAttachment
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").Order("id DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.ProjectAttachment, 0, len(ms))
	for i := range ms {
		items = append(items, projectAttachmentToEntity(&ms[i]))
	}
	return items, nil
}

func (r *ProjectAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.ProjectAttachment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func projectAttachmentToEntity(m *models.ProjectAttachment) *entities.ProjectAttachment {
	return &entities.ProjectAttachment{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		URL:       m.URL,
		CreatedAt: m.CreatedAt,
	}
}
