package sessions

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
)

const (
	queryCreateSession = `INSERT INTO sessions (session_id, signed_session_id, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	queryFindSession = `SELECT session_id, signed_session_id, user_id, expires_at, created_at
		FROM sessions
		WHERE signed_session_id = $1`

	queryDeleteSession = `DELETE FROM sessions
		WHERE signed_session_id = $1`
)

// PostgresRepository runs every operation as a single statement over the
// pool handed out by dbx.ConnManager.
type PostgresRepository struct {
	conn *dbx.ConnManager
}

func NewPostgresRepository(conn *dbx.ConnManager) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

// Create persists the session before the token is handed out.
func (r *PostgresRepository) Create(ctx context.Context, s *models.Session) error {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, queryCreateSession,
		s.SessionID, s.SignedSessionID, s.UserID, s.ExpiresAt, s.CreatedAt); err != nil {
		return r.conn.Fault(db, err)
	}
	return nil
}

// Find returns the session for signedSessionID, expired or not.
func (r *PostgresRepository) Find(ctx context.Context, signedSessionID string) (*models.Session, error) {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	s := &models.Session{}
	err = db.QueryRowContext(ctx, queryFindSession, signedSessionID).
		Scan(&s.SessionID, &s.SignedSessionID, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, r.conn.Fault(db, err)
	}
	return s, nil
}

// Delete removes the session; deleting nothing is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, signedSessionID string) error {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, queryDeleteSession, signedSessionID); err != nil {
		return r.conn.Fault(db, err)
	}
	return nil
}
