package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Lumos-Labs-HQ/dbreset/internal/resetdb"
	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Database.Provider != "postgresql" {
		t.Errorf("Expected database provider to be 'postgresql', got '%s'", cfg.Database.Provider)
	}
	if cfg.Database.URLEnv != "DATABASE_URL" {
		t.Errorf("Expected database url_env to be 'DATABASE_URL', got '%s'", cfg.Database.URLEnv)
	}
	if cfg.Database.Schema != "public" {
		t.Errorf("Expected schema to be 'public', got '%s'", cfg.Database.Schema)
	}
	if !cfg.Reset.ResetSequences {
		t.Error("Expected reset_sequences to default to true")
	}
	if cfg.Reset.FilterMode != "include" {
		t.Errorf("Expected filter_mode to be 'include', got '%s'", cfg.Reset.FilterMode)
	}
	if cfg.Reset.IDColumn != "id" {
		t.Errorf("Expected id_column to be 'id', got '%s'", cfg.Reset.IDColumn)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("Unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoadExplicitResetSequencesFalse(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("reset.reset_sequences", false)
	viper.Set("reset.skip_tables", []string{"orders"})
	viper.Set("database.provider", "sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Reset.ResetSequences {
		t.Error("Expected reset_sequences to stay false when set explicitly")
	}
	if len(cfg.Reset.SkipTables) != 1 || cfg.Reset.SkipTables[0] != "orders" {
		t.Errorf("Unexpected skip_tables: %v", cfg.Reset.SkipTables)
	}

	opts, err := cfg.ResetOptions()
	if err != nil {
		t.Fatalf("Failed to build reset options: %v", err)
	}
	if !opts.SkipSequenceReset {
		t.Error("Expected SkipSequenceReset to be set")
	}
	if opts.Dialect.Name() != "sqlite" {
		t.Errorf("Expected sqlite dialect, got %s", opts.Dialect.Name())
	}
	if opts.FilterMode != resetdb.FilterInclude {
		t.Errorf("Expected include filter mode, got %s", opts.FilterMode)
	}
}

func TestLoadNormalizesProvider(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("database.provider", " PostgreSQL ")
	viper.Set("database.driver", "PQ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.Provider != "postgresql" {
		t.Errorf("Expected provider to be normalized to 'postgresql', got '%s'", cfg.Database.Provider)
	}
	if cfg.Database.Driver != "pq" {
		t.Errorf("Expected driver to be normalized to 'pq', got '%s'", cfg.Database.Driver)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected normalized config to be valid, got %v", err)
	}
	if !cfg.isPostgres() {
		t.Error("Expected normalized provider to be recognised as postgres")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: Database{Provider: "postgresql", URLEnv: "DATABASE_URL", Schema: "public"},
			Reset:    Reset{FilterMode: "include", IDColumn: "id"},
		}
	}

	if err := base().Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"bad provider", func(c *Config) { c.Database.Provider = "oracle" }, "unsupported database provider"},
		{"bad driver", func(c *Config) { c.Database.Driver = "odbc" }, "unsupported database driver"},
		{"driver on mysql", func(c *Config) { c.Database.Provider = "mysql"; c.Database.Driver = "pq" }, "only valid for postgresql"},
		{"bad filter mode", func(c *Config) { c.Reset.FilterMode = "block" }, "unknown filter mode"},
		{"negative concurrency", func(c *Config) { c.Reset.Concurrency = -1 }, "cannot be negative"},
		{"both seeds", func(c *Config) { c.Reset.SeedSQL = "SELECT 1"; c.Reset.SeedPaths = []string{"seed.sql"} }, "mutually exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestReadSeedFromDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"002_orders.sql":   "INSERT INTO orders (id) VALUES (1);",
		"001_accounts.sql": "INSERT INTO accounts (id) VALUES (1);\n",
		"notes.txt":        "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	cfg := &Config{Reset: Reset{SeedPaths: []string{dir}}}
	seed, err := cfg.ReadSeed()
	if err != nil {
		t.Fatalf("Failed to read seed: %v", err)
	}

	want := "INSERT INTO accounts (id) VALUES (1);\nINSERT INTO orders (id) VALUES (1);\n"
	if string(seed) != want {
		t.Errorf("Expected seed %q, got %q", want, string(seed))
	}
}

func TestReadSeedInlineAndEmpty(t *testing.T) {
	cfg := &Config{Reset: Reset{SeedSQL: "SELECT 1"}}
	seed, err := cfg.ReadSeed()
	if err != nil || string(seed) != "SELECT 1" {
		t.Errorf("Expected inline seed, got %q (%v)", seed, err)
	}

	cfg = &Config{}
	seed, err = cfg.ReadSeed()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(seed) != 0 {
		t.Errorf("Expected no seed, got %q", seed)
	}
}

func TestReadSeedMissingFile(t *testing.T) {
	cfg := &Config{Reset: Reset{SeedPaths: []string{filepath.Join(t.TempDir(), "missing.sql")}}}
	if _, err := cfg.ReadSeed(); err == nil {
		t.Error("Expected an error for a missing seed file")
	}
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := &Config{Database: Database{URLEnv: "DBRESET_TEST_URL"}}

	t.Setenv("DBRESET_TEST_URL", "")
	if _, err := cfg.GetDatabaseURL(); err == nil {
		t.Error("Expected an error when the variable is empty")
	}

	t.Setenv("DBRESET_TEST_URL", "postgres://localhost/app")
	url, err := cfg.GetDatabaseURL()
	if err != nil || url != "postgres://localhost/app" {
		t.Errorf("Expected URL from environment, got %q (%v)", url, err)
	}
}
