package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Lumos-Labs-HQ/dbreset/internal/logger"
	"github.com/Lumos-Labs-HQ/dbreset/internal/resetdb"
	"github.com/spf13/viper"
)

type Config struct {
	Version  string        `json:"version" mapstructure:"version"`
	Database Database      `json:"database" mapstructure:"database"`
	Reset    Reset         `json:"reset" mapstructure:"reset"`
	Log      logger.Config `json:"log" mapstructure:"log"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	Driver   string `json:"driver,omitempty" mapstructure:"driver"` // postgres only: pgx, stdlib or pq
	Schema   string `json:"schema,omitempty" mapstructure:"schema"`
}

type Reset struct {
	// SkipTables restricts the reset to these tables in "include" mode and
	// leaves them untouched in "exclude" mode.
	SkipTables     []string `json:"skip_tables,omitempty" mapstructure:"skip_tables"`
	FilterMode     string   `json:"filter_mode,omitempty" mapstructure:"filter_mode"`
	SeedPaths      []string `json:"seed_paths,omitempty" mapstructure:"seed_paths"`
	SeedSQL        string   `json:"seed_sql,omitempty" mapstructure:"seed_sql"`
	ResetSequences bool     `json:"reset_sequences" mapstructure:"reset_sequences"`
	IDColumn       string   `json:"id_column,omitempty" mapstructure:"id_column"`
	Concurrency    int      `json:"concurrency,omitempty" mapstructure:"concurrency"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Version == "" {
		cfg.Version = "1"
	}
	cfg.Database.Provider = strings.ToLower(strings.TrimSpace(cfg.Database.Provider))
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Database.Schema == "" {
		cfg.Database.Schema = resetdb.DefaultSchema
	}
	if cfg.Reset.FilterMode == "" {
		cfg.Reset.FilterMode = string(resetdb.FilterInclude)
	}
	if cfg.Reset.IDColumn == "" {
		cfg.Reset.IDColumn = resetdb.DefaultIDColumn
	}
	if !viper.IsSet("reset.reset_sequences") {
		cfg.Reset.ResetSequences = true
	}

	defaults := logger.DefaultConfig()
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Format
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = defaults.Output
	}

	return &cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	if _, err := resetdb.DialectFor(c.Database.Provider, c.Database.Schema); err != nil {
		return err
	}

	switch c.Database.Driver {
	case "", "pgx", "stdlib", "pq":
	default:
		return fmt.Errorf("unsupported database driver: %s. Supported drivers: pgx, stdlib, pq", c.Database.Driver)
	}
	if c.Database.Driver != "" && c.Database.Driver != "pgx" && !c.isPostgres() {
		return fmt.Errorf("database driver %s is only valid for postgresql", c.Database.Driver)
	}

	if _, err := resetdb.ParseFilterMode(c.Reset.FilterMode); err != nil {
		return err
	}

	if c.Reset.Concurrency < 0 {
		return fmt.Errorf("reset.concurrency cannot be negative")
	}

	if c.Reset.SeedSQL != "" && len(c.Reset.SeedPaths) > 0 {
		return fmt.Errorf("reset.seed_sql and reset.seed_paths are mutually exclusive")
	}

	return nil
}

func (c *Config) isPostgres() bool {
	switch c.Database.Provider {
	case "postgresql", "postgres":
		return true
	}
	return false
}

// GetSeedFiles expands SeedPaths into .sql files. Directories contribute
// their .sql files in name order, e.g. 001_accounts.sql before 002_orders.sql.
func (c *Config) GetSeedFiles() ([]string, error) {
	var files []string
	for _, path := range c.Reset.SeedPaths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed path %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed directory %s: %w", path, err)
		}
		var dirFiles []string
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
				dirFiles = append(dirFiles, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(dirFiles)
		files = append(files, dirFiles...)
	}
	return files, nil
}

// ReadSeed returns the seed SQL, or nil when none is configured.
func (c *Config) ReadSeed() ([]byte, error) {
	if c.Reset.SeedSQL != "" {
		return []byte(c.Reset.SeedSQL), nil
	}

	files, err := c.GetSeedFiles()
	if err != nil {
		return nil, err
	}

	var seed []byte
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file %s: %w", file, err)
		}
		seed = append(seed, content...)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			seed = append(seed, '\n')
		}
	}
	return seed, nil
}

// ResetOptions maps the config onto reset options. Seed and logger are left
// for the caller.
func (c *Config) ResetOptions() (resetdb.Options, error) {
	dialect, err := resetdb.DialectFor(c.Database.Provider, c.Database.Schema)
	if err != nil {
		return resetdb.Options{}, err
	}
	mode, err := resetdb.ParseFilterMode(c.Reset.FilterMode)
	if err != nil {
		return resetdb.Options{}, err
	}

	return resetdb.Options{
		SkipTables:        c.Reset.SkipTables,
		FilterMode:        mode,
		SkipSequenceReset: !c.Reset.ResetSequences,
		IDColumn:          c.Reset.IDColumn,
		Schema:            c.Database.Schema,
		Dialect:           dialect,
		Concurrency:       c.Reset.Concurrency,
	}, nil
}
