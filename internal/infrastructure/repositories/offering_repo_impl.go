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

// OfferingRepository implements offering data operations
type OfferingRepository struct {
	db *gorm.DB
}

func NewOfferingRepository(db *gorm.DB) *OfferingRepository {
	return &OfferingRepository{db: db}
}

func (r *OfferingRepository) Create(ctx context.Context, offering *entities.Offering) error {
	if offering.ID == uuid.Nil {
		offering.ID = uuid.New()
	}
	if offering.Status == "" {
		offering.Status = entities.OfferingStatusOffering
	}
	m := &models.Offering{
		ID:              offering.ID,
		ProjectID:       offering.ProjectID,
		TeamID:          offering.TeamID,
		Status:          string(offering.Status),
		DiscordThreadID: stringPtr(offering.DiscordThreadID),
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Omit("Team").Create(m).Error; err != nil {
		return err
	}
	offering.CreatedAt = m.CreatedAt
	offering.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *OfferingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Offering, error) {
	return r.first(ctx, GetDB(ctx, r.db).WithContext(ctx).Preload("Team").Where("id = ?", id))
}

func (r *OfferingRepository) GetByThreadID(ctx context.Context, threadID string) (*entities.Offering, error) {
	return r.first(ctx, GetDB(ctx, r.db).WithContext(ctx).
		Preload("Team").
		Where("discord_thread_id = ?", threadID).
		Order("created_at DESC"))
}

func (r *OfferingRepository) List(ctx context.Context, filter entities.OfferingFilter) ([]*entities.Offering, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Offering{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.WithTeam {
		query = query.Preload("Team")
	}
	if filter.SortDesc {
		query = query.Order("created_at DESC")
	} else {
		query = query.Order("created_at ASC")
	}

	var ms []models.Offering
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Offering, 0, len(ms))
	for i := range ms {
		items = append(items, offeringToEntity(&ms[i]))
	}
	return items, nil
}

func (r *OfferingRepository) LatestForProject(ctx context.Context, projectID uuid.UUID, statuses ...entities.OfferingStatus) (*entities.Offering, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Team").
		Where("project_id = ?", projectID)
	if len(statuses) > 0 {
		values := make([]string, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, string(s))
		}
		query = query.Where("status IN ?", values)
	}
	return r.first(ctx, query.Order("created_at DESC"))
}

func (r *OfferingRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.OfferingStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Offering{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{"status": string(to), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Offering{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.ErrInvalidTransition
}

func (r *OfferingRepository) first(_ context.Context, query *gorm.DB) (*entities.Offering, error) {
	var m models.Offering
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return offeringToEntity(&m), nil
}

func offeringToEntity(m *models.Offering) *entities.Offering {
	return &entities.Offering{
		ID:              m.ID,
		ProjectID:       m.ProjectID,
		TeamID:          m.TeamID,
		Status:          entities.OfferingStatus(m.Status),
		DiscordThreadID: nullString(m.DiscordThreadID),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Team:            teamToEntity(m.Team),
	}
}
