package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/server/migrations"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/translations"
	"github.com/dmitrijs2005/polyglot/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresDriver is the database/sql driver name registered by pgx.
const PostgresDriver = "pgx"

// PostgresRepositoryManager vends PostgreSQL-backed repositories sharing one
// dbx.ConnManager.
type PostgresRepositoryManager struct {
	conn *dbx.ConnManager

	users        *users.PostgresRepository
	sessions     *sessions.PostgresRepository
	translations *translations.PostgresRepository
}

func NewPostgresRepositoryManager(conn *dbx.ConnManager) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{
		conn:         conn,
		users:        users.NewPostgresRepository(conn),
		sessions:     sessions.NewPostgresRepository(conn),
		translations: translations.NewPostgresRepository(conn),
	}
}

func (m *PostgresRepositoryManager) Users() users.Repository { return m.users }

func (m *PostgresRepositoryManager) Sessions() sessions.Repository { return m.sessions }

func (m *PostgresRepositoryManager) Translations() translations.Repository { return m.translations }

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded goose migrations. It connects first,
// so a call against an unreachable database fails with
// common.ErrBackendUnavailable.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	db, err := m.conn.Acquire(ctx)
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(PostgresDriver); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (m *PostgresRepositoryManager) HealthCheck(ctx context.Context) error {
	return m.conn.HealthCheck(ctx)
}

func (m *PostgresRepositoryManager) Close() error {
	return m.conn.Close()
}
