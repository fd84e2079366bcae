package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
)

const (
	queryCreateUser = `INSERT INTO users (id, email, password_hash, default_from_lang, default_to_lang, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`

	queryGetUserByEmail = `SELECT id, email, password_hash, default_from_lang, default_to_lang, created_at
		 FROM users
		 WHERE email = $1`

	queryGetPreferences = `SELECT default_from_lang, default_to_lang
		 FROM users
		 WHERE id = $1`

	// postgres counts matched rows, so an update to identical values still
	// reports one affected row; zero means the user does not exist
	queryUpdatePreferences = `UPDATE users
		 SET default_from_lang = $2, default_to_lang = $3
		 WHERE id = $1`
)

type PostgresRepository struct {
	conn *dbx.ConnManager
}

func NewPostgresRepository(conn *dbx.ConnManager) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx, queryCreateUser,
		user.ID, user.Email, user.PasswordHash, user.DefaultFromLang, user.DefaultToLang, user.CreatedAt)
	if err != nil {
		if dbx.HasPgCode(err, dbx.PgUniqueViolation) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, r.conn.Fault(db, err)
	}

	created := *user
	return &created, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	user := &models.User{}
	err = db.QueryRowContext(ctx, queryGetUserByEmail, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.DefaultFromLang, &user.DefaultToLang, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, r.conn.Fault(db, err)
	}

	return user, nil
}

func (r *PostgresRepository) GetPreferences(ctx context.Context, userID string) (*models.Preferences, error) {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	prefs := &models.Preferences{}
	err = db.QueryRowContext(ctx, queryGetPreferences, userID).Scan(&prefs.FromLang, &prefs.ToLang)
	if err != nil {
		// ids are uuids, so a malformed one cannot name a user
		if errors.Is(err, sql.ErrNoRows) || dbx.HasPgCode(err, dbx.PgInvalidTextFormat) {
			return nil, common.ErrUserNotFound
		}
		return nil, r.conn.Fault(db, err)
	}

	return prefs, nil
}

func (r *PostgresRepository) UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) error {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, queryUpdatePreferences, userID, prefs.FromLang, prefs.ToLang)
	if err != nil {
		if dbx.HasPgCode(err, dbx.PgInvalidTextFormat) {
			return common.ErrUserNotFound
		}
		return r.conn.Fault(db, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return r.conn.Fault(db, err)
	}
	if n == 0 {
		return common.ErrUserNotFound
	}

	return nil
}
