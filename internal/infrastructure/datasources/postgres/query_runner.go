package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
)

const nullCell = "NULL"

// QueryRunner executes generated SELECT statements in a read-only transaction
type QueryRunner struct {
	db      *sql.DB
	timeout time.Duration
}

func NewQueryRunner(db *sql.DB, timeout time.Duration) *QueryRunner {
	return &QueryRunner{db: db, timeout: timeout}
}

// IsSelect reports whether the statement starts with SELECT.
func IsSelect(query string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(query)), "select")
}

func (r *QueryRunner) RunSelect(ctx context.Context, query string) (*entities.QueryResult, error) {
	if !IsSelect(query) {
		return nil, domainerrors.BadRequest("Only SELECT queries are allowed for security reasons")
	}
	if r.db == nil {
		return nil, domainerrors.ErrNotConfigured
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &entities.QueryResult{Columns: columns}
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make([]string, len(columns))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			} else {
				row[i] = nullCell
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
