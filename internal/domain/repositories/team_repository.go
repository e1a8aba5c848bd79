package repositories

import (
	"context"

	"github.com/google/uuid"
	"studio-ops.backend/internal/domain/entities"
)

// TeamRepository defines team data operations. Reads never return soft-deleted teams.
type TeamRepository interface {
	Create(ctx context.Context, team *entities.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	GetByDiscordUserID(ctx context.Context, discordUserID string) (*entities.Team, error)
	List(ctx context.Context, filter entities.TeamFilter) ([]*entities.Team, error)
	Update(ctx context.Context, team *entities.Team) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
