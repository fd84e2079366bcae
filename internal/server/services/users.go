package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/server/auth"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	User            *models.User
	SignedSessionID string
	ExpiresAt       time.Time
}

// UserService provides account operations:
// - Register: validate and create users
// - Login/Logout: verify credentials and manage sessions
// - Preferences: read and update the default language pair
type UserService struct {
	repomanager repomanager.RepositoryManager
	sessions    *SessionService
	now         func() time.Time
	log         logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(m repomanager.RepositoryManager, sessions *SessionService, log logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		sessions:    sessions,
		now:         time.Now,
		log:         log.With("component", "users"),
	}
}

// Register validates the input before touching the backend, then stores a
// new user with empty default languages.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if err := auth.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users()

	// Create reports the race with a concurrent registration too; this
	// lookup only avoids hashing for an obviously taken address.
	if _, err := repo.GetUserByEmail(ctx, email); err == nil {
		return nil, common.ErrDuplicateEmail
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := repo.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies the credentials and issues a session. Unknown email and
// wrong password yield the same common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repomanager.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// keep timing close to the known-email path
			_, _ = auth.VerifyPassword(password, s.getDummyHash())
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		s.log.Error(ctx, "stored password hash is malformed", "user_id", user.ID, "error", err)
		return nil, common.ErrInvalidCredentials
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	session, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return &LoginResult{
		User:            user,
		SignedSessionID: session.SignedSessionID,
		ExpiresAt:       session.ExpiresAt,
	}, nil
}

func (s *UserService) Logout(ctx context.Context, signed string) error {
	return s.sessions.Revoke(ctx, signed)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repomanager.Users().GetUserByEmail(ctx, email)
}

func (s *UserService) GetPreferences(ctx context.Context, userID string) (*models.Preferences, error) {
	return s.repomanager.Users().GetPreferences(ctx, userID)
}

// UpdatePreferences stores the default language pair. Empty codes clear a
// preference. Writing the current values again succeeds.
func (s *UserService) UpdatePreferences(ctx context.Context, userID, from, to string) error {
	if err := auth.ValidateLang(from, true); err != nil {
		return err
	}
	if err := auth.ValidateLang(to, true); err != nil {
		return err
	}
	return s.repomanager.Users().UpdatePreferences(ctx, userID, models.Preferences{FromLang: from, ToLang: to})
}

func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		hash, err := auth.HashPassword("dummy-password-for-timing")
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
