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

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *entities.Team) error {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	if team.Role == "" {
		team.Role = entities.TeamRoleArtist
	}
	m := r.toModel(team)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	team.CreatedAt = m.CreatedAt
	team.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	var m models.Team
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TeamRepository) GetByDiscordUserID(ctx context.Context, discordUserID string) (*entities.Team, error) {
	var m models.Team
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("discord_user_id = ?", discordUserID).
		Order("created_at ASC").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TeamRepository) List(ctx context.Context, filter entities.TeamFilter) ([]*entities.Team, error) {
	var ms []models.Team
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Team{})
	if filter.Role != nil {
		query = query.Where("role = ?", string(*filter.Role))
	}
	if filter.DiscordUserID != "" {
		query = query.Where("discord_user_id = ?", filter.DiscordUserID)
	}
	if err := query.Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Team, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *TeamRepository) Update(ctx context.Context, team *entities.Team) error {
	updates := map[string]interface{}{
		"name":                team.Name,
		"discord_user_id":     stringPtr(team.DiscordUserID),
		"discord_channel_id":  stringPtr(team.DiscordChannelID),
		"bank_number":         stringPtr(team.BankNumber),
		"bank_account_holder": stringPtr(team.BankAccountHolder),
		"bank_provider":       stringPtr(team.BankProvider),
		"role":                string(team.Role),
		"updated_at":          time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Team{}).
		Where("id = ?", team.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Team{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func teamToEntity(m *models.Team) *entities.Team {
	if m == nil {
		return nil
	}
	return &entities.Team{
		ID:                m.ID,
		Name:              m.Name,
		DiscordUserID:     nullString(m.DiscordUserID),
		DiscordChannelID:  nullString(m.DiscordChannelID),
		BankNumber:        nullString(m.BankNumber),
		BankAccountHolder: nullString(m.BankAccountHolder),
		BankProvider:      nullString(m.BankProvider),
		Role:              entities.TeamRole(m.Role),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		DeletedAt:         deletedAtPtr(m.DeletedAt),
	}
}

func (r *TeamRepository) toEntity(m *models.Team) *entities.Team {
	return teamToEntity(m)
}

func (r *TeamRepository) toModel(e *entities.Team) *models.Team {
	return &models.Team{
		ID:                e.ID,
		Name:              e.Name,
		DiscordUserID:     stringPtr(e.DiscordUserID),
		DiscordChannelID:  stringPtr(e.DiscordChannelID),
		BankNumber:        stringPtr(e.BankNumber),
		BankAccountHolder: stringPtr(e.BankAccountHolder),
		BankProvider:      stringPtr(e.BankProvider),
		Role:              string(e.Role),
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}
