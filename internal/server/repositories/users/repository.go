// Package users stores registered accounts and their language preferences.
package users

import (
	"context"

	"github.com/dmitrijs2005/polyglot/internal/server/models"
)

// Repository is implemented by the in-memory and the postgres backend with
// identical result and error shapes:
//   - Create fails with common.ErrDuplicateEmail for a taken email;
//   - GetUserByEmail fails with common.ErrorNotFound;
//   - GetPreferences and UpdatePreferences fail with common.ErrUserNotFound.
//
// Updating preferences to their current values succeeds.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetPreferences(ctx context.Context, userID string) (*models.Preferences, error)
	UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) error
}
