package decks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophslides/internal/client/models"
	"github.com/dmitrijs2005/gophslides/internal/common"
	"github.com/dmitrijs2005/gophslides/internal/dbx"
	"github.com/jmoiron/sqlx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// deckRow keeps updated_at as unix seconds; SQLite has no native timestamp.
type deckRow struct {
	PublicID   string `db:"public_id"`
	EditSecret string `db:"edit_secret"`
	KeyToken   string `db:"key_token"`
	Title      string `db:"title"`
	UpdatedAt  int64  `db:"updated_at"`
}

func (r deckRow) toModel() *models.SavedDeck {
	return &models.SavedDeck{
		PublicID:   r.PublicID,
		EditSecret: r.EditSecret,
		KeyToken:   r.KeyToken,
		Title:      r.Title,
		UpdatedAt:  time.Unix(r.UpdatedAt, 0).UTC(),
	}
}

// Save inserts or refreshes a deck. An empty edit secret or title never
// overwrites a stored one, so opening a view link of a deck you own keeps
// your edit rights.
func (r *SQLiteRepository) Save(ctx context.Context, d *models.SavedDeck) error {
	updated := d.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO decks (public_id, edit_secret, key_token, title, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(public_id) DO UPDATE SET
			edit_secret = CASE WHEN excluded.edit_secret = '' THEN decks.edit_secret ELSE excluded.edit_secret END,
			key_token   = excluded.key_token,
			title       = CASE WHEN excluded.title = '' THEN decks.title ELSE excluded.title END,
			updated_at  = excluded.updated_at
	`, d.PublicID, d.EditSecret, d.KeyToken, d.Title, updated.Unix())
	if err != nil {
		return fmt.Errorf("failed to save deck[%s]: %w", d.PublicID, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, publicID string) (*models.SavedDeck, error) {
	var row deckRow
	err := sqlx.GetContext(ctx, r.db, &row, `
		SELECT public_id, edit_secret, key_token, title, updated_at
		FROM decks WHERE public_id = ?`, publicID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck[%s]: %w", publicID, err)
	}
	return row.toModel(), nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.SavedDeck, error) {
	var rows []deckRow
	err := sqlx.SelectContext(ctx, r.db, &rows, `
		SELECT public_id, edit_secret, key_token, title, updated_at
		FROM decks ORDER BY updated_at DESC, public_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}

	out := make([]*models.SavedDeck, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, publicID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE public_id = ?`, publicID)
	if err != nil {
		return fmt.Errorf("failed to delete deck[%s]: %w", publicID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete deck[%s]: %w", publicID, err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
