package gateways

import (
	"context"

	"studio-ops.backend/internal/domain/entities"
)

// QueryAssistant turns a natural-language question into SQL
type QueryAssistant interface {
	GenerateQuery(ctx context.Context, question string) (*entities.GeneratedQuery, error)
}

// QueryRunner executes read-only SQL against the analytics database
type QueryRunner interface {
	RunSelect(ctx context.Context, query string) (*entities.QueryResult, error)
}
