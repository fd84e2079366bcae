// Package sessions stores server-side session records keyed by the signed
// session id handed to clients.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/polyglot/internal/server/models"
)

// Repository does not interpret expiry; callers compare ExpiresAt with their
// clock. Find fails with common.ErrorNotFound, Delete of a missing record
// succeeds.
type Repository interface {
	Create(ctx context.Context, session *models.Session) error
	Find(ctx context.Context, signedSessionID string) (*models.Session, error)
	Delete(ctx context.Context, signedSessionID string) error
}
