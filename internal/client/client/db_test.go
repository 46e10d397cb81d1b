package client

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophslides/internal/client/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func tableExists(t *testing.T, db *sqlx.DB, name string) bool {
	t.Helper()
	var n int
	err := db.Get(&n, `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name)
	if err != nil {
		t.Fatalf("tableExists query failed: %v", err)
	}
	return n > 0
}

func TestInitDatabase_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "library.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer repos.Close()

	require.NoError(t, repos.DB.PingContext(ctx))
	require.True(t, tableExists(t, repos.DB, "goose_db_version"))
	require.True(t, tableExists(t, repos.DB, "decks"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "library.db")

	db, err := sqlx.Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db), "second run must be a no-op")
	require.True(t, tableExists(t, db, "decks"))
}

func TestInitDatabase_DecksRepositoryWired(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "library.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer repos.Close()

	require.NoError(t, repos.Decks.Save(ctx, &models.SavedDeck{PublicID: "p1", KeyToken: "k"}))
	got, err := repos.Decks.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "k", got.KeyToken)
}
