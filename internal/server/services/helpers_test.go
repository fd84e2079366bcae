package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/server/auth"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/translations"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	auth.PasswordCost = bcrypt.MinCost
}

const testTTL = time.Hour

var errDown = errors.New("connection refused")

// fakeClock is a settable time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newSigner(t *testing.T, secret string) *auth.Signer {
	t.Helper()
	s, err := auth.NewSigner(secret)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	return s
}

func newSessionService(t *testing.T, m repomanager.RepositoryManager, opts ...SessionOption) *SessionService {
	t.Helper()
	return NewSessionService(m, newSigner(t, "test-secret"), testTTL, logging.NopLogger{}, opts...)
}

// countingUsers records how many calls reached the backend.
type countingUsers struct {
	users.Repository
	calls int
}

func (c *countingUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	c.calls++
	return c.Repository.Create(ctx, u)
}

func (c *countingUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	c.calls++
	return c.Repository.GetUserByEmail(ctx, email)
}

type brokenSessions struct{}

func (brokenSessions) Create(context.Context, *models.Session) error {
	return errors.Join(common.ErrBackendUnavailable, errDown)
}

func (brokenSessions) Find(context.Context, string) (*models.Session, error) {
	return nil, errors.Join(common.ErrBackendUnavailable, errDown)
}

func (brokenSessions) Delete(context.Context, string) error {
	return errDown
}

type brokenTranslations struct{}

func (brokenTranslations) Create(context.Context, *models.Translation) (*models.Translation, error) {
	return nil, errors.Join(common.ErrBackendUnavailable, errDown)
}

func (brokenTranslations) ListByUser(context.Context, string, string) ([]models.Translation, error) {
	return nil, errors.Join(common.ErrBackendUnavailable, errDown)
}

// stubManager overrides individual repositories of an in-memory manager.
type stubManager struct {
	*repomanager.InMemoryRepositoryManager
	users        users.Repository
	sessions     sessions.Repository
	translations translations.Repository
}

func newStubManager() *stubManager {
	return &stubManager{InMemoryRepositoryManager: repomanager.NewInMemoryRepositoryManager()}
}

func (m *stubManager) Users() users.Repository {
	if m.users != nil {
		return m.users
	}
	return m.InMemoryRepositoryManager.Users()
}

func (m *stubManager) Sessions() sessions.Repository {
	if m.sessions != nil {
		return m.sessions
	}
	return m.InMemoryRepositoryManager.Sessions()
}

func (m *stubManager) Translations() translations.Repository {
	if m.translations != nil {
		return m.translations
	}
	return m.InMemoryRepositoryManager.Translations()
}
