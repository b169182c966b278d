// Package repomanager owns the database connection and vends the repositories
// built on it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/loveletters/internal/server/config"
	"github.com/dmitrijs2005/loveletters/internal/server/repositories/messages"
	"github.com/dmitrijs2005/loveletters/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Messages() messages.Repository
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Open returns the manager for dsn with the schema migrated. config.MemoryDSN
// selects the in-process store, anything else is handed to the pgx driver.
func Open(ctx context.Context, dsn string) (RepositoryManager, error) {
	var (
		m   RepositoryManager
		err error
	)

	if dsn == config.MemoryDSN {
		m = NewMemoryRepositoryManager()
	} else {
		m, err = OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
