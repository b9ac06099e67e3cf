package common

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Lumos-Labs-HQ/dbreset/internal/resetdb"
)

// SQLExecutor runs resets over a database/sql pool.
type SQLExecutor struct {
	db *sql.DB
}

func NewSQLExecutor(db *sql.DB) *SQLExecutor {
	return &SQLExecutor{db: db}
}

func (e *SQLExecutor) DB() *sql.DB {
	return e.db
}

func (e *SQLExecutor) Ping(ctx context.Context) error {
	return e.db.PingContext(ctx)
}

func (e *SQLExecutor) Close() error {
	if e.db != nil {
		return e.db.Close()
	}
	return nil
}

func (e *SQLExecutor) QueryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (e *SQLExecutor) Exec(ctx context.Context, query string) (resetdb.Result, error) {
	res, err := e.db.ExecContext(ctx, query)
	if err != nil {
		return resetdb.Result{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		affected = -1
	}
	return resetdb.Result{RowsAffected: affected}, nil
}

// ExecBatch pins one connection so session settings such as
// FOREIGN_KEY_CHECKS apply to every statement.
func (e *SQLExecutor) ExecBatch(ctx context.Context, statements []string) error {
	conn, err := e.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	for _, stmt := range statements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
