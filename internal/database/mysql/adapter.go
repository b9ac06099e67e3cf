package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/dbreset/internal/database/common"
	"github.com/go-sql-driver/mysql"
)

type Adapter struct {
	*common.SQLExecutor
}

func New() *Adapter {
	return &Adapter{}
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	dsn, err := NormalizeDSN(url)
	if err != nil {
		return err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(15 * time.Minute)

	m.SQLExecutor = common.NewSQLExecutor(db)
	return nil
}

func (m *Adapter) Close() error {
	if m.SQLExecutor == nil {
		return nil
	}
	return m.SQLExecutor.Close()
}

// NormalizeDSN accepts either a driver DSN or a mysql:// URL and turns on
// multi-statement support so a seed file can be submitted in one call.
func NormalizeDSN(url string) (string, error) {
	dsn := url
	if strings.HasPrefix(url, "mysql://") {
		dsn = strings.TrimPrefix(url, "mysql://")

		if atIndex := strings.LastIndex(dsn, "@"); atIndex > 0 {
			credentials := dsn[:atIndex]
			remainder := dsn[atIndex+1:]

			if slashIndex := strings.Index(remainder, "/"); slashIndex > 0 {
				hostPort := remainder[:slashIndex]
				dbAndParams := remainder[slashIndex+1:]

				replacer := strings.NewReplacer(
					"ssl-mode=REQUIRED", "tls=skip-verify",
					"ssl-mode=DISABLED", "tls=false",
					"ssl-mode=VERIFY_CA", "tls=true",
					"ssl-mode=VERIFY_IDENTITY", "tls=true",
					"sslmode=require", "tls=skip-verify",
					"sslmode=disable", "tls=false",
					"sslmode=verify-ca", "tls=true",
					"sslmode=verify-full", "tls=true",
				)
				dsn = fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, replacer.Replace(dbAndParams))
			}
		}
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MySQL DSN: %w", err)
	}
	cfg.MultiStatements = true
	return cfg.FormatDSN(), nil
}
