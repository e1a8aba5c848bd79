package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"studio-ops.backend/internal/domain/entities"
)

// StatisticRepository defines reporting queries
type StatisticRepository interface {
	// DoneImageCountByTeam sums image_count of non-deleted DONE projects with done_at in [from, to].
	DoneImageCountByTeam(ctx context.Context, from, to time.Time) (map[uuid.UUID]int, error)
	IncrementVisit(ctx context.Context, day time.Time) (*entities.VisitCounter, error)
	ListVisits(ctx context.Context, from, to time.Time) ([]*entities.VisitCounter, error)
}
