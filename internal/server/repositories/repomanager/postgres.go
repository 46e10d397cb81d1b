// Package repomanager vends the Postgres repositories of presentations and
// slides bound to a connection or a transaction, and migrates the schema.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophslides/internal/dbx"
	"github.com/dmitrijs2005/gophslides/internal/server/migrations"
	"github.com/dmitrijs2005/gophslides/internal/server/repositories/presentations"
	"github.com/dmitrijs2005/gophslides/internal/server/repositories/slides"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// migrationsDialect is the goose dialect for the pgx stdlib driver.
const migrationsDialect = "pgx"

type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Presentations(db dbx.DBTX) presentations.Repository {
	return presentations.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Slides(db dbx.DBTX) slides.Repository {
	return slides.NewPostgresRepository(db)
}

// migrateUp is replaced in tests.
var migrateUp = func(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(migrationsDialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// RunMigrations applies every embedded migration not yet recorded in the
// goose version table.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	if err := migrateUp(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
