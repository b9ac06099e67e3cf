package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/dbreset/internal/database/common"
	"github.com/Lumos-Labs-HQ/dbreset/internal/resetdb"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

type Adapter struct {
	pool *pgxpool.Pool
}

func New() *Adapter {
	return &Adapter{}
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	config.MaxConns = 4
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	p.pool = pool
	return nil
}

func (p *Adapter) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Adapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Adapter) QueryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// Exec uses the simple protocol so a seed file may hold many statements.
func (p *Adapter) Exec(ctx context.Context, query string) (resetdb.Result, error) {
	tag, err := p.pool.Exec(ctx, query, pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return resetdb.Result{}, err
	}
	return resetdb.Result{RowsAffected: tag.RowsAffected(), Command: tag.String()}, nil
}

func (p *Adapter) ExecBatch(ctx context.Context, statements []string) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	for _, stmt := range statements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// OpenSQL connects through database/sql, either with pgx's stdlib bridge or
// with lib/pq.
func OpenSQL(ctx context.Context, driver, url string) (*common.SQLExecutor, error) {
	var db *sql.DB
	switch driver {
	case "stdlib", "pgx-stdlib":
		config, err := pgx.ParseConfig(url)
		if err != nil {
			return nil, fmt.Errorf("failed to parse connection URL: %w", err)
		}
		config.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
		db = stdlib.OpenDB(*config)
	case "pq":
		var err error
		db, err = sql.Open("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres connection: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported postgres driver: %s", driver)
	}

	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(3 * time.Minute)

	exec := common.NewSQLExecutor(db)
	if err := exec.Ping(ctx); err != nil {
		exec.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return exec, nil
}
