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

// TaskRepository implements task data operations
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts the task and the attachments it carries.
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	db := GetDB(ctx, r.db).WithContext(ctx)
	m := &models.Task{
		ID:         task.ID,
		ProjectID:  task.ProjectID,
		Fee:        task.Fee,
		ImageCount: task.ImageCount,
		Note:       stringPtr(task.Note),
	}
	if err := db.Omit("Attachments").Create(m).Error; err != nil {
		return err
	}
	task.CreatedAt = m.CreatedAt
	task.UpdatedAt = m.UpdatedAt

	for _, a := range task.Attachments {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		a.TaskID = task.ID
		am := &models.TaskAttachment{ID: a.ID, TaskID: a.TaskID, URL: a.URL}
		if err := db.Create(am).Error; err != nil {
			return err
		}
		a.CreatedAt = am.CreatedAt
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	var m models.Task
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Attachments", orderAttachments).
		Where("id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return taskToEntity(&m), nil
}

func (r *TaskRepository) List(ctx context.Context, filter entities.TaskFilter) ([]*entities.Task, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Task{}).Preload("Attachments", orderAttachments)
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.SortDesc {
		query = query.Order("created_at DESC")
	} else {
		query = query.Order("created_at ASC")
	}

	var ms []models.Task
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Task, 0, len(ms))
	for i := range ms {
		items = append(items, taskToEntity(&ms[i]))
	}
	return items, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"fee":         task.Fee,
			"image_count": task.ImageCount,
			"note":        stringPtr(task.Note),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) ReplaceAttachments(ctx context.Context, taskID uuid.UUID, urls []string) ([]*entities.TaskAttachment, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)
	if err := db.Where("task_id = ?", taskID).Delete(&models.TaskAttachment{}).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.TaskAttachment, 0, len(urls))
	for _, url := range urls {
		m := &models.TaskAttachment{ID: uuid.New(), TaskID: taskID, URL: url}
		if err := db.Create(m).Error; err != nil {
			return nil, err
		}
		items = append(items, taskAttachmentToEntity(m))
	}
	return items, nil
}

// Delete removes the task attachments first, then the task.
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db).WithContext(ctx)
	if err := db.Where("task_id = ?", id).Delete(&models.TaskAttachment{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) SumByProject(ctx context.Context, projectID uuid.UUID) (entities.TaskTotals, error) {
	var row struct {
		Fee        int64
		ImageCount int
	}
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Task{}).
		Select("COALESCE(SUM(fee), 0) AS fee, COALESCE(SUM(image_count), 0) AS image_count").
		Where("project_id = ?", projectID).
		Scan(&row).Error
	if err != nil {
		return entities.TaskTotals{}, err
	}
	return entities.TaskTotals{Fee: row.Fee, ImageCount: row.ImageCount}, nil
}

func orderAttachments(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func taskToEntity(m *models.Task) *entities.Task {
	e := &entities.Task{
		ID:         m.ID,
		ProjectID:  m.ProjectID,
		Fee:        m.Fee,
		ImageCount: m.ImageCount,
		Note:       nullString(m.Note),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	for i := range m.Attachments {
		e.Attachments = append(e.Attachments, taskAttachmentToEntity(&m.Attachments[i]))
	}
	return e
}

func taskAttachmentToEntity(m *models.TaskAttachment) *entities.TaskAttachment {
	return &entities.TaskAttachment{
		ID:        m.ID,
		TaskID:    m.TaskID,
		URL:       m.URL,
		CreatedAt: m.CreatedAt,
	}
}
