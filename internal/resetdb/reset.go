package resetdb

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// Executor is the database capability a reset runs against. The caller owns
// the underlying connection or pool.
type Executor interface {
	// QueryStrings runs a query returning a single text column.
	QueryStrings(ctx context.Context, query string, args ...any) ([]string, error)
	// Exec submits raw SQL, which may hold several statements.
	Exec(ctx context.Context, query string) (Result, error)
	// ExecBatch runs statements in order on a single session and stops at
	// the first failure.
	ExecBatch(ctx context.Context, statements []string) error
}

// Result is what the driver reported for the seed submission.
type Result struct {
	RowsAffected int64
	Command      string
}

// DefaultIDColumn is the identifier column sequences are resynced from.
const DefaultIDColumn = "id"

// Options configures a single Reset or Plan call.
type Options struct {
	// SkipTables narrows the tables that are reset; see FilterMode for how.
	SkipTables []string
	FilterMode FilterMode

	// SeedSQL runs once after truncation. Empty means no seeding.
	SeedSQL []byte

	// SkipSequenceReset disables resyncing <table>_<id>_seq after seeding.
	SkipSequenceReset bool
	IDColumn          string

	Schema  string
	Dialect Dialect
	// Concurrency bounds the sequence fan-out; zero or less is unbounded.
	Concurrency int

	// Logger defaults to a ConsoleLogger on stderr with info silenced.
	Logger Logger
}

func (o Options) withDefaults() Options {
	if o.FilterMode == "" {
		o.FilterMode = FilterInclude
	}
	if o.IDColumn == "" {
		o.IDColumn = DefaultIDColumn
	}
	if o.Schema == "" {
		o.Schema = DefaultSchema
	}
	if o.Dialect == nil {
		o.Dialect = NewPostgres(o.Schema)
	}
	if o.Logger == nil {
		o.Logger = NewConsoleLogger(nil, false)
	}
	return o
}

// TablePlan describes what a reset would touch.
type TablePlan struct {
	Discovered []string
	Tables     []string
	Truncate   []string
}

// Plan discovers and filters tables without changing anything.
func Plan(ctx context.Context, exec Executor, opts Options) (*TablePlan, error) {
	opts = opts.withDefaults()
	return plan(ctx, exec, opts)
}

func plan(ctx context.Context, exec Executor, opts Options) (*TablePlan, error) {
	discovered, err := discoverTables(ctx, exec, opts)
	if err != nil {
		return nil, err
	}
	tables := FilterTables(discovered, opts.SkipTables, opts.FilterMode)
	return &TablePlan{
		Discovered: discovered,
		Tables:     tables,
		Truncate:   opts.Dialect.TruncateStatements(tables),
	}, nil
}

func discoverTables(ctx context.Context, exec Executor, opts Options) ([]string, error) {
	query, args, err := opts.Dialect.ListTablesQuery(opts.Schema)
	if err != nil {
		return nil, err
	}
	tables, err := exec.QueryStrings(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	sort.Strings(tables)
	return tables, nil
}

// Reset truncates the schema's tables, applies the seed and resyncs identifier
// sequences. It returns the seed result. Errors from discovery, truncation
// and seeding are logged and returned as they came from the executor;
// per-table sequence failures are only logged.
//
// Nothing is wrapped in a transaction: a failed seed leaves the tables empty.
func Reset(ctx context.Context, exec Executor, opts Options) (Result, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	result, err := reset(ctx, exec, opts)
	if err != nil {
		log.Error("resetdb error", "dialect", opts.Dialect.Name(), "error", err)
		return Result{}, err
	}

	log.Info("Reset complete")
	return result, nil
}

func reset(ctx context.Context, exec Executor, opts Options) (Result, error) {
	log := opts.Logger

	p, err := plan(ctx, exec, opts)
	if err != nil {
		return Result{}, err
	}

	log.Info("Truncating tables", "tables", strings.Join(p.Tables, ","))
	if len(p.Truncate) > 0 {
		if err := exec.ExecBatch(ctx, p.Truncate); err != nil {
			return Result{}, err
		}
	}

	result, err := seed(ctx, exec, opts)
	if err != nil {
		return Result{}, err
	}

	if !opts.SkipSequenceReset {
		log.Info("Resetting sequences")
		resetSequences(ctx, exec, opts, p.Tables)
	}

	return result, nil
}

func seed(ctx context.Context, exec Executor, opts Options) (Result, error) {
	seedSQL := decodeSeed(opts.SeedSQL)
	if strings.TrimSpace(seedSQL) == "" {
		opts.Logger.Info("No seed data configured")
		return Result{}, nil
	}
	return exec.Exec(ctx, seedSQL)
}

// decodeSeed treats the seed as UTF-8, replacing invalid sequences the way a
// lenient decoder would.
func decodeSeed(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), "�")
}

// resetSequences waits for every table's attempt to settle. Failures are
// reported as warnings and never cancel siblings.
func resetSequences(ctx context.Context, exec Executor, opts Options, tables []string) {
	var g errgroup.Group
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for _, table := range tables {
		table := table
		g.Go(func() error {
			stmt := opts.Dialect.ResetSequenceStatement(table, opts.IDColumn)
			if _, err := exec.Exec(ctx, stmt); err != nil {
				opts.Logger.Warn("Could not reset ID sequence for "+table, "table", table, "error", err)
			}
			return nil
		})
	}

	_ = g.Wait()
}
