package repositories

import (
	"context"

	"github.com/google/uuid"
	"studio-ops.backend/internal/domain/entities"
)

// OfferingRepository defines offering data operations
type OfferingRepository interface {
	Create(ctx context.Context, offering *entities.Offering) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Offering, error)
	GetByThreadID(ctx context.Context, threadID string) (*entities.Offering, error)
	List(ctx context.Context, filter entities.OfferingFilter) ([]*entities.Offering, error)
	// LatestForProject returns the newest offering of the project in any of the statuses, with its team.
	LatestForProject(ctx context.Context, projectID uuid.UUID, statuses ...entities.OfferingStatus) (*entities.Offering, error)
	// TransitionStatus moves an offering from one status to another atomically.
	// It returns ErrInvalidTransition when the offering is no longer in from.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entities.OfferingStatus) error
}
