package dbx

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/singleflight"
)

const DefaultConnectTimeout = 30 * time.Second

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// ConnManager owns the connection pool of the production backend.
//
// The pool is opened on first Acquire and replaced whenever it is found
// dead (failed ping or a connection-level error reported through Fault).
// Concurrent callers that find no pool share a single connect attempt; the
// resulting pool replaces (and closes) whatever was current before.
type ConnManager struct {
	driver         string
	dsn            string
	connectTimeout time.Duration

	connecting singleflight.Group

	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

func NewConnManager(driver, dsn string, connectTimeout time.Duration) *ConnManager {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	return &ConnManager{driver: driver, dsn: dsn, connectTimeout: connectTimeout}
}

// NewConnManagerWithDB wraps an already opened pool. It is still replaced
// by a fresh sql.Open(driver, dsn) once invalidated.
func NewConnManagerWithDB(driver, dsn string, db *sql.DB) *ConnManager {
	m := NewConnManager(driver, dsn, DefaultConnectTimeout)
	m.db = db
	return m
}

// Acquire returns the live pool, connecting first if there is none.
// Connection failures are reported as common.ErrBackendUnavailable.
func (m *ConnManager) Acquire(ctx context.Context) (*sql.DB, error) {
	m.mu.Lock()
	db, closed := m.db, m.closed
	m.mu.Unlock()

	if closed {
		return nil, fmt.Errorf("%w: connection manager closed", common.ErrBackendUnavailable)
	}
	if db != nil {
		return db, nil
	}
	return m.connect(ctx)
}

func (m *ConnManager) connect(ctx context.Context) (*sql.DB, error) {
	ch := m.connecting.DoChan("connect", func() (any, error) {
		// the caller's ctx may be cancelled while others still wait on us
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.connectTimeout)
		defer cancel()
		return m.open(ctx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*sql.DB), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: connect: %w", common.ErrBackendUnavailable, ctx.Err())
	}
}

func (m *ConnManager) open(ctx context.Context) (*sql.DB, error) {
	m.mu.Lock()
	if m.db != nil {
		db := m.db
		m.mu.Unlock()
		return db, nil
	}
	m.mu.Unlock()

	db, err := sqlOpen(m.driver, m.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %w", common.ErrBackendUnavailable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: connect: %w", common.ErrBackendUnavailable, err)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		_ = db.Close()
		return nil, fmt.Errorf("%w: connection manager closed", common.ErrBackendUnavailable)
	}
	old := m.db
	m.db = db
	m.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return db, nil
}

// HealthCheck pings the pool, reconnecting if needed. A pool that fails the
// ping is dropped so the next Acquire opens a fresh one.
func (m *ConnManager) HealthCheck(ctx context.Context) error {
	db, err := m.Acquire(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, m.connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		m.Invalidate(db)
		return fmt.Errorf("%w: ping: %w", common.ErrBackendUnavailable, err)
	}
	return nil
}

// Invalidate drops db if it is still the current pool.
func (m *ConnManager) Invalidate(db *sql.DB) {
	m.mu.Lock()
	if m.db != db || db == nil {
		m.mu.Unlock()
		return
	}
	m.db = nil
	m.mu.Unlock()

	_ = db.Close()
}

// Fault converts a storage error into common.ErrBackendUnavailable, dropping
// the pool when the error says the connection itself is gone.
func (m *ConnManager) Fault(db *sql.DB, err error) error {
	if IsConnError(err) {
		m.Invalidate(db)
	}
	return fmt.Errorf("%w: db error: %w", common.ErrBackendUnavailable, err)
}

// Close releases the pool; Acquire fails afterwards.
func (m *ConnManager) Close() error {
	m.mu.Lock()
	db := m.db
	m.db = nil
	m.closed = true
	m.mu.Unlock()

	if db == nil {
		return nil
	}
	return db.Close()
}

// IsConnError reports errors that mean the pool cannot reach the server.
func IsConnError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// Postgres error codes the repositories translate into domain errors.
const (
	PgUniqueViolation   = "23505"
	PgInvalidTextFormat = "22P02"
)

// HasPgCode reports whether err carries the given postgres error code.
func HasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
