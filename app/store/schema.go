package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TableName is the table holding employee records
const TableName = "funcionarios"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS funcionarios (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nome TEXT NOT NULL,
		salario REAL NOT NULL,
		cargo TEXT NOT NULL
	)`,
}

// EnsureSchema creates the employee table if it does not exist yet, safe to call on every start
func EnsureSchema(ctx context.Context, db sqlx.ExecerContext) error {
	for _, query := range schema {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("%w: failed to execute query: %w", ErrSchema, err)
		}
	}
	return nil
}
