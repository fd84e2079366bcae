// Package repomanager selects a storage backend and vends its repositories.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/polyglot/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/translations"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/users"
)

// RepositoryManager is implemented by every storage backend. Services only
// talk to repositories obtained here, so swapping the backend changes no
// observable result.
type RepositoryManager interface {
	Users() users.Repository
	Sessions() sessions.Repository
	Translations() translations.Repository

	RunMigrations(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Close() error
}
