package repomanager

import (
	"context"

	"github.com/dmitrijs2005/loveletters/internal/server/repositories/memory"
	"github.com/dmitrijs2005/loveletters/internal/server/repositories/messages"
	"github.com/dmitrijs2005/loveletters/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process. Migrations, pings and
// close are no-ops.
type MemoryRepositoryManager struct {
	store *memory.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memory.NewStore()}
}

func (m *MemoryRepositoryManager) Users() users.Repository {
	return m.store.Users()
}

func (m *MemoryRepositoryManager) Messages() messages.Repository {
	return m.store.Messages()
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
