package database

import (
	"context"

	"github.com/Lumos-Labs-HQ/dbreset/internal/resetdb"
)

// Conn is an open connection a reset can run against.
type Conn interface {
	resetdb.Executor
	Ping(ctx context.Context) error
	Close() error
}
