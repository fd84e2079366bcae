package repomanager

import (
	"context"

	"github.com/dmitrijs2005/polyglot/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/translations"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory. It is
// always healthy and has no schema.
type InMemoryRepositoryManager struct {
	users        *users.MemoryRepository
	sessions     *sessions.MemoryRepository
	translations *translations.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:        users.NewMemoryRepository(),
		sessions:     sessions.NewMemoryRepository(),
		translations: translations.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Sessions() sessions.Repository { return m.sessions }

func (m *InMemoryRepositoryManager) Translations() translations.Repository { return m.translations }

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) HealthCheck(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Close() error { return nil }
