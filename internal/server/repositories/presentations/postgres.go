// Package presentations provides the PostgreSQL-backed repository for
// presentation rows.
package presentations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophslides/internal/common"
	"github.com/dmitrijs2005/gophslides/internal/dbx"
	"github.com/dmitrijs2005/gophslides/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

const uniqueViolation = "23505"

// PostgresRepository implements presentation storage over a dbx.DBTX
// (*sqlx.DB or *sqlx.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts p and fills in its database-assigned ID and CreatedAt.
// A public id collision yields common.ErrorAlreadyExists; an insert that
// does not produce a usable id yields common.ErrCreationFailed.
func (r *PostgresRepository) Create(ctx context.Context, p *models.Presentation) error {
	query := `
		INSERT INTO presentations (public_id, hashed_edit_key, theme)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, p.PublicID, p.HashedEditKey, p.Theme).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorAlreadyExists
		}
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrCreationFailed
		}
		return fmt.Errorf("db error: %w", err)
	}
	if p.ID <= 0 {
		return common.ErrCreationFailed
	}
	return nil
}

// GetByPublicID loads a presentation row without its slides.
func (r *PostgresRepository) GetByPublicID(ctx context.Context, publicID string) (*models.Presentation, error) {
	query := `
		SELECT id, public_id, hashed_edit_key, theme, created_at
		FROM presentations
		WHERE public_id = $1
	`
	p := &models.Presentation{}
	if err := sqlx.GetContext(ctx, r.db, p, query, publicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select presentation: %w", err)
	}
	return p, nil
}

// UpdateTheme sets the theme of the presentation with the given internal id.
func (r *PostgresRepository) UpdateTheme(ctx context.Context, id int64, theme string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE presentations SET theme = $1 WHERE id = $2`, theme, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
