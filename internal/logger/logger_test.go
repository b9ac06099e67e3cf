package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Lumos-Labs-HQ/dbreset/internal/resetdb"
	"github.com/rs/zerolog"
)

var _ resetdb.Logger = (*Adapter)(nil)

func TestAdapterWritesFields(t *testing.T) {
	var buf bytes.Buffer
	a := NewAdapter(newLogger(&buf, "json", zerolog.InfoLevel))

	a.Warn("Could not reset ID sequence for orders", "table", "orders", "error", errors.New("no sequence"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "warn" {
		t.Errorf("Expected level warn, got %v", entry["level"])
	}
	if entry["table"] != "orders" {
		t.Errorf("Expected table field orders, got %v", entry["table"])
	}
	if entry["message"] != "Could not reset ID sequence for orders" {
		t.Errorf("Unexpected message %v", entry["message"])
	}
}

func TestAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	a := NewAdapter(newLogger(&buf, "json", zerolog.WarnLevel))

	a.Info("Truncating tables", "tables", "a,b")
	if buf.Len() != 0 {
		t.Errorf("Expected info to be filtered, got %q", buf.String())
	}

	a.Error("resetdb error", "error", "boom")
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Errorf("Expected error entry, got %q", buf.String())
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"
	if _, _, err := New(cfg); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}
