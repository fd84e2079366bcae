// Package services contains server-side business logic: session issuing and
// validation, the user directory and translation history.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/server/auth"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// SessionService issues, validates and revokes bearer sessions.
type SessionService struct {
	repomanager repomanager.RepositoryManager
	signer      *auth.Signer
	ttl         time.Duration
	now         func() time.Time
	log         logging.Logger
}

type SessionOption func(*SessionService)

// WithClock replaces time.Now, used by expiry tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionService) { s.now = now }
}

func NewSessionService(m repomanager.RepositoryManager, signer *auth.Signer, ttl time.Duration,
	log logging.Logger, opts ...SessionOption) *SessionService {
	s := &SessionService{
		repomanager: m,
		signer:      signer,
		ttl:         ttl,
		now:         time.Now,
		log:         log.With("component", "sessions"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates and stores a session for userID. The record is persisted
// before the signed id is returned.
func (s *SessionService) Issue(ctx context.Context, userID string) (*models.Session, error) {
	id := uuid.NewString()
	signed, err := s.signer.Sign(id)
	if err != nil {
		return nil, fmt.Errorf("%w: sign session: %w", common.ErrorInternal, err)
	}

	now := s.now().UTC()
	session := &models.Session{
		SessionID:       id,
		SignedSessionID: signed,
		UserID:          userID,
		ExpiresAt:       now.Add(s.ttl),
		CreatedAt:       now,
	}

	if err := s.repomanager.Sessions().Create(ctx, session); err != nil {
		s.log.Error(ctx, "storing session failed", "user_id", userID, "error", err)
		return nil, err
	}

	s.log.Debug(ctx, "session issued", "user_id", userID, "expires_at", session.ExpiresAt)
	return session, nil
}

// Validate returns the owner of signed. Every failure, storage errors
// included, is reported as common.ErrInvalidOrExpiredSession.
func (s *SessionService) Validate(ctx context.Context, signed string) (string, error) {
	if signed == "" {
		return "", common.ErrInvalidOrExpiredSession
	}

	session, err := s.repomanager.Sessions().Find(ctx, signed)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.log.Error(ctx, "session lookup failed", "error", err)
		}
		return "", common.ErrInvalidOrExpiredSession
	}

	if session.Expired(s.now()) {
		return "", common.ErrInvalidOrExpiredSession
	}

	// a secret rotation invalidates every outstanding session
	if !s.signer.Verify(session.SessionID, signed) {
		s.log.Warn(ctx, "session signature mismatch", "user_id", session.UserID)
		return "", common.ErrInvalidOrExpiredSession
	}

	return session.UserID, nil
}

// Revoke deletes the session. Revoking an unknown or already revoked
// session succeeds.
func (s *SessionService) Revoke(ctx context.Context, signed string) error {
	if err := s.repomanager.Sessions().Delete(ctx, signed); err != nil {
		s.log.Error(ctx, "session revoke failed", "error", err)
		if errors.Is(err, common.ErrBackendUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", common.ErrBackendUnavailable, err)
	}
	return nil
}
