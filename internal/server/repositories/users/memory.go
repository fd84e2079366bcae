package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
)

// MemoryRepository keeps users in process memory. Data is lost on restart.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrDuplicateEmail
	}

	stored := *user
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID

	created := stored
	return &created, nil
}

func (r *MemoryRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}

	user := *r.byID[id]
	return &user, nil
}

func (r *MemoryRepository) GetPreferences(_ context.Context, userID string) (*models.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[userID]
	if !ok {
		return nil, common.ErrUserNotFound
	}

	return &models.Preferences{FromLang: user.DefaultFromLang, ToLang: user.DefaultToLang}, nil
}

func (r *MemoryRepository) UpdatePreferences(_ context.Context, userID string, prefs models.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[userID]
	if !ok {
		return common.ErrUserNotFound
	}

	user.DefaultFromLang = prefs.FromLang
	user.DefaultToLang = prefs.ToLang
	return nil
}
