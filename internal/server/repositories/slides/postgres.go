// Package slides provides the PostgreSQL-backed repository for slide rows.
package slides

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophslides/internal/common"
	"github.com/dmitrijs2005/gophslides/internal/dbx"
	"github.com/dmitrijs2005/gophslides/internal/server/models"
	"github.com/jmoiron/sqlx"
)

// PostgresRepository implements slide storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts s and fills in its database-assigned ID.
func (r *PostgresRepository) Create(ctx context.Context, s *models.Slide) error {
	query := `
		INSERT INTO slides (presentation_id, content, slide_order)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := r.db.QueryRowxContext(ctx, query, s.PresentationID, s.Content, s.Order).Scan(&s.ID); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if s.ID <= 0 {
		return common.ErrCreationFailed
	}
	return nil
}

// ListByPresentation returns the slides of a presentation in display order:
// ascending by order, ties broken by id (insertion order).
func (r *PostgresRepository) ListByPresentation(ctx context.Context, presentationID int64) ([]*models.Slide, error) {
	query := `
		SELECT id, presentation_id, content, slide_order FROM slides
		WHERE presentation_id = $1
		ORDER BY slide_order ASC, id ASC
	`
	var result []*models.Slide
	if err := sqlx.SelectContext(ctx, r.db, &result, query, presentationID); err != nil {
		return nil, fmt.Errorf("failed to select slides: %w", err)
	}
	return result, nil
}

// DeleteExcept removes every slide of the presentation whose id is not in
// keepIDs, in one statement. An empty keepIDs removes all of them.
// It returns the number of deleted rows.
func (r *PostgresRepository) DeleteExcept(ctx context.Context, presentationID int64, keepIDs []int64) (int64, error) {
	var (
		query string
		args  []any
	)

	if len(keepIDs) == 0 {
		query = `DELETE FROM slides WHERE presentation_id = $1`
		args = []any{presentationID}
	} else {
		q, a, err := sqlx.In(`DELETE FROM slides WHERE presentation_id = ? AND id NOT IN (?)`, presentationID, keepIDs)
		if err != nil {
			return 0, fmt.Errorf("build delete: %w", err)
		}
		query, args = r.db.Rebind(q), a
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// Update overwrites content and order of a slide, matched by slide id AND
// presentation id so that a slide of another presentation is never touched.
// It reports whether a row was updated.
func (r *PostgresRepository) Update(ctx context.Context, s *models.Slide) (bool, error) {
	query := `
		UPDATE slides SET content = $1, slide_order = $2
		WHERE id = $3 AND presentation_id = $4
	`
	res, err := r.db.ExecContext(ctx, query, s.Content, s.Order, s.ID, s.PresentationID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("unexpected rows affected: %d", n)
	}
}
