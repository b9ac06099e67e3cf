package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/dbreset/internal/database/common"
	_ "github.com/mattn/go-sqlite3"
)

type Adapter struct {
	*common.SQLExecutor
	path string
}

func New() *Adapter {
	return &Adapter{}
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	s.path = dbPath
	if idx := strings.Index(s.path, "?"); idx > 0 {
		s.path = s.path[:idx]
	}
	if !strings.Contains(dbPath, "?") {
		dbPath += "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// A single connection keeps PRAGMA foreign_keys and the sequence
	// fan-out from racing for the write lock.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	s.SQLExecutor = common.NewSQLExecutor(db)
	return nil
}

func (s *Adapter) Path() string {
	return s.path
}

func (s *Adapter) Close() error {
	if s.SQLExecutor == nil {
		return nil
	}
	return s.SQLExecutor.Close()
}
