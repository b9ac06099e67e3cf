package database

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenSQLite(t *testing.T) {
	conn, err := Open(context.Background(), "sqlite", "", "sqlite://"+filepath.Join(t.TempDir(), "open.db"))
	if err != nil {
		t.Fatalf("Failed to open sqlite database: %v", err)
	}
	defer conn.Close()

	tables, err := conn.QueryStrings(context.Background(), "SELECT name FROM sqlite_master WHERE type = 'table'")
	if err != nil {
		t.Fatalf("Failed to query catalog: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("Expected an empty database, got tables %v", tables)
	}
}

func TestOpenUnsupportedProvider(t *testing.T) {
	if _, err := Open(context.Background(), "mongodb", "", "mongodb://localhost"); err == nil {
		t.Error("Expected an error for an unsupported provider")
	}
}

func TestOpenUnsupportedPostgresDriver(t *testing.T) {
	if _, err := Open(context.Background(), "postgres", "odbc", "postgres://localhost/db"); err == nil {
		t.Error("Expected an error for an unsupported postgres driver")
	}
}
