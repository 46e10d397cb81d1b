package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophslides/internal/dbx"
	"github.com/dmitrijs2005/gophslides/internal/server/repositories/presentations"
	"github.com/dmitrijs2005/gophslides/internal/server/repositories/slides"
)

// RepositoryManager builds repositories over a DBTX, so the same code runs
// on a plain connection or inside dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Presentations(db dbx.DBTX) presentations.Repository
	Slides(db dbx.DBTX) slides.Repository
}
