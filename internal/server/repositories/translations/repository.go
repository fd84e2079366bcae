// Package translations stores the append-only translation history.
package translations

import (
	"context"

	"github.com/dmitrijs2005/polyglot/internal/server/models"
)

// Repository lists records newest first. An empty history is an empty,
// non-nil slice.
type Repository interface {
	Create(ctx context.Context, t *models.Translation) (*models.Translation, error)
	ListByUser(ctx context.Context, userID, kind string) ([]models.Translation, error)
}
