package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_IssueAndValidate(t *testing.T) {
	m := repomanager.NewInMemoryRepositoryManager()
	svc := newSessionService(t, m)
	ctx := context.Background()

	s, err := svc.Issue(ctx, "u-1")
	require.NoError(t, err)
	assert.NotEmpty(t, s.SessionID)
	assert.NotEqual(t, s.SessionID, s.SignedSessionID)

	stored, err := m.Sessions().Find(ctx, s.SignedSessionID)
	require.NoError(t, err, "session must be stored before Issue returns")
	assert.Equal(t, "u-1", stored.UserID)

	userID, err := svc.Validate(ctx, s.SignedSessionID)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
}

func TestSessionService_ExpiryBoundary(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	svc := newSessionService(t, repomanager.NewInMemoryRepositoryManager(), WithClock(clock.Now))
	ctx := context.Background()

	s, err := svc.Issue(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(testTTL), s.ExpiresAt)

	issuedAt := clock.t

	clock.t = issuedAt.Add(testTTL - time.Millisecond)
	_, err = svc.Validate(ctx, s.SignedSessionID)
	require.NoError(t, err, "valid just before expiry")

	clock.t = issuedAt.Add(testTTL)
	_, err = svc.Validate(ctx, s.SignedSessionID)
	require.ErrorIs(t, err, common.ErrInvalidOrExpiredSession, "invalid exactly at expiry")

	clock.t = issuedAt.Add(testTTL + time.Millisecond)
	_, err = svc.Validate(ctx, s.SignedSessionID)
	require.ErrorIs(t, err, common.ErrInvalidOrExpiredSession)
}

func TestSessionService_NeverIssued(t *testing.T) {
	svc := newSessionService(t, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	for _, token := range []string{"", "garbage", "dGhpcyBpcyBub3QgaXNzdWVk"} {
		_, err := svc.Validate(ctx, token)
		assert.Equal(t, common.ErrInvalidOrExpiredSession, err, "token %q", token)
	}
}

func TestSessionService_RevokeIsIdempotent(t *testing.T) {
	svc := newSessionService(t, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	s, err := svc.Issue(ctx, "u-1")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, s.SignedSessionID))
	_, err = svc.Validate(ctx, s.SignedSessionID)
	require.ErrorIs(t, err, common.ErrInvalidOrExpiredSession)

	require.NoError(t, svc.Revoke(ctx, s.SignedSessionID))
	require.NoError(t, svc.Revoke(ctx, "never-issued"))
}

func TestSessionService_SecretRotationInvalidates(t *testing.T) {
	m := repomanager.NewInMemoryRepositoryManager()
	ctx := context.Background()

	old := newSessionService(t, m)
	s, err := old.Issue(ctx, "u-1")
	require.NoError(t, err)

	rotated := NewSessionService(m, newSigner(t, "another-secret"), testTTL, logging.NopLogger{})
	_, err = rotated.Validate(ctx, s.SignedSessionID)
	require.ErrorIs(t, err, common.ErrInvalidOrExpiredSession)
}

func TestSessionService_StorageFailure(t *testing.T) {
	m := newStubManager()
	m.sessions = brokenSessions{}
	svc := newSessionService(t, m)
	ctx := context.Background()

	_, err := svc.Validate(ctx, "whatever")
	assert.Equal(t, common.ErrInvalidOrExpiredSession, err, "validation fails closed with the same error value")

	_, err = svc.Issue(ctx, "u-1")
	require.ErrorIs(t, err, common.ErrBackendUnavailable)

	err = svc.Revoke(ctx, "whatever")
	require.ErrorIs(t, err, common.ErrBackendUnavailable)
	require.ErrorIs(t, err, errDown)
}
