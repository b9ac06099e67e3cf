package database

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/dbreset/internal/database/mysql"
	"github.com/Lumos-Labs-HQ/dbreset/internal/database/postgres"
	"github.com/Lumos-Labs-HQ/dbreset/internal/database/sqlite"
)

// Open connects to url with the adapter for provider. For PostgreSQL, driver
// picks between the native pgx pool ("pgx", the default), pgx's database/sql
// bridge ("stdlib") and lib/pq ("pq").
func Open(ctx context.Context, provider, driver, url string) (Conn, error) {
	switch provider {
	case "postgresql", "postgres", "":
		if driver == "" || driver == "pgx" {
			a := postgres.New()
			if err := a.Connect(ctx, url); err != nil {
				return nil, err
			}
			return ping(ctx, a)
		}
		exec, err := postgres.OpenSQL(ctx, driver, url)
		if err != nil {
			return nil, err
		}
		return exec, nil
	case "mysql":
		a := mysql.New()
		if err := a.Connect(ctx, url); err != nil {
			return nil, err
		}
		return ping(ctx, a)
	case "sqlite", "sqlite3":
		a := sqlite.New()
		if err := a.Connect(ctx, url); err != nil {
			return nil, err
		}
		return ping(ctx, a)
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", provider)
	}
}

func ping(ctx context.Context, c Conn) (Conn, error) {
	if err := c.Ping(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return c, nil
}
