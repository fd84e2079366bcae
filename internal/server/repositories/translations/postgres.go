package translations

import (
	"context"

	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/server/models"
)

const (
	queryCreateTranslation = `
		INSERT INTO translations (id, user_id, kind, from_lang, to_lang, original_text, translated_text, audio_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	queryListTranslations = `
		SELECT id, user_id, kind, from_lang, to_lang, original_text, translated_text, audio_key, created_at
		FROM translations
		WHERE user_id = $1 AND kind = $2
		ORDER BY created_at DESC, id DESC
	`
)

type PostgresRepository struct {
	conn *dbx.ConnManager
}

func NewPostgresRepository(conn *dbx.ConnManager) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Translation) (*models.Translation, error) {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx, queryCreateTranslation,
		t.ID, t.UserID, t.Kind, t.FromLang, t.ToLang, t.OriginalText, t.TranslatedText, t.AudioKey, t.CreatedAt)
	if err != nil {
		return nil, r.conn.Fault(db, err)
	}

	created := *t
	return &created, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID, kind string) ([]models.Translation, error) {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, queryListTranslations, userID, kind)
	if err != nil {
		if dbx.HasPgCode(err, dbx.PgInvalidTextFormat) {
			return make([]models.Translation, 0), nil
		}
		return nil, r.conn.Fault(db, err)
	}
	defer rows.Close()

	list := make([]models.Translation, 0)
	for rows.Next() {
		var t models.Translation
		if err := rows.Scan(&t.ID, &t.UserID, &t.Kind, &t.FromLang, &t.ToLang,
			&t.OriginalText, &t.TranslatedText, &t.AudioKey, &t.CreatedAt); err != nil {
			return nil, r.conn.Fault(db, err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, r.conn.Fault(db, err)
	}

	return list, nil
}
