package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophgate/internal/server/repositories/users"
)

// MemoryRepositoryManager serialises WithinTx callers with a mutex. Writes made
// before fn fails are not undone.
type MemoryRepositoryManager struct {
	mu    sync.Mutex
	users *users.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{users: users.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repo users.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, m.users)
}

func (m *MemoryRepositoryManager) Close() error {
	return nil
}
