package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rana718/autoservice/internal/database/mysql"
	"github.com/Rana718/autoservice/internal/database/postgres"
	"github.com/Rana718/autoservice/internal/database/sqlite"
)

// ErrUnreachable wraps every failure to reach the configured store.
var ErrUnreachable = errors.New("database unreachable")

func NewAdapter(provider string) DatabaseAdapter {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New()
	case "mysql":
		return mysql.New()
	case "sqlite", "sqlite3":
		return sqlite.New()
	default:
		return postgres.New()
	}
}

// Open connects and pings. The caller owns the returned adapter and must
// Close it.
func Open(ctx context.Context, provider, url string) (DatabaseAdapter, error) {
	adapter := NewAdapter(provider)

	if err := adapter.Connect(ctx, url); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	return adapter, nil
}
