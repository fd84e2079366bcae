package translations

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(dbx.NewConnManagerWithDB("pgx", "", db)), mock, db
}

const (
	qInsert = `(?s)^\s*INSERT\s+INTO\s+translations\b.*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7,\s*\$8,\s*\$9\)\s*$`
	qList   = `(?s)^\s*SELECT\s+id,.*FROM\s+translations\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+kind\s*=\s*\$2\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s*$`
)

var columns = []string{"id", "user_id", "kind", "from_lang", "to_lang", "original_text", "translated_text", "audio_key", "created_at"}

func record(id string, at time.Time) models.Translation {
	return models.Translation{
		ID: id, UserID: "u1", Kind: common.KindText,
		FromLang: "en", ToLang: "fr", OriginalText: "hello", TranslatedText: "bonjour",
		CreatedAt: at,
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	tr := record("t1", time.Now().UTC())
	mock.ExpectExec(qInsert).
		WithArgs(tr.ID, tr.UserID, tr.Kind, tr.FromLang, tr.ToLang, tr.OriginalText, tr.TranslatedText, "", tr.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), &tr)
	require.NoError(t, err)
	assert.Equal(t, tr, *got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	tr := record("t1", time.Now().UTC())
	mock.ExpectExec(qInsert).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &tr)
	require.ErrorIs(t, err, common.ErrBackendUnavailable)
}

func TestListByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	newer := record("t2", time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC))
	older := record("t1", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	rows := sqlmock.NewRows(columns)
	for _, tr := range []models.Translation{newer, older} {
		rows.AddRow(tr.ID, tr.UserID, tr.Kind, tr.FromLang, tr.ToLang, tr.OriginalText, tr.TranslatedText, tr.AudioKey, tr.CreatedAt)
	}
	mock.ExpectQuery(qList).WithArgs("u1", common.KindText).WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u1", common.KindText)
	require.NoError(t, err)
	assert.Equal(t, []models.Translation{newer, older}, got)
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qList).WithArgs("u1", common.KindVoice).WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.ListByUser(context.Background(), "u1", common.KindVoice)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByUser_MalformedUserID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qList).WithArgs("x", common.KindText).
		WillReturnError(&pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "x"`})

	got, err := repo.ListByUser(context.Background(), "x", common.KindText)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByUser_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qList).WithArgs("u1", common.KindText).WillReturnError(errors.New("db err"))

	_, err := repo.ListByUser(context.Background(), "u1", common.KindText)
	require.ErrorIs(t, err, common.ErrBackendUnavailable)
}
