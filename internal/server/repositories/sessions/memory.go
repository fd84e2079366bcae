package sessions

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	bySigned map[string]models.Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{bySigned: make(map[string]models.Session)}
}

func (r *MemoryRepository) Create(_ context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySigned[s.SignedSessionID] = *s
	return nil
}

func (r *MemoryRepository) Find(_ context.Context, signedSessionID string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.bySigned[signedSessionID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) Delete(_ context.Context, signedSessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.bySigned, signedSessionID)
	return nil
}
