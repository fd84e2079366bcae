package translations

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/polyglot/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	byUser map[string][]models.Translation
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUser: make(map[string][]models.Translation)}
}

func (r *MemoryRepository) Create(_ context.Context, t *models.Translation) (*models.Translation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byUser[t.UserID] = append(r.byUser[t.UserID], *t)

	created := *t
	return &created, nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID, kind string) ([]models.Translation, error) {
	r.mu.RLock()
	all := r.byUser[userID]
	list := make([]models.Translation, 0, len(all))
	// walk backwards so equal timestamps keep newest-inserted first
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Kind == kind {
			list = append(list, all[i])
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}
