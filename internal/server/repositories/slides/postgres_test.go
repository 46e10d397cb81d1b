package slides

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophslides/internal/common"
	"github.com/dmitrijs2005/gophslides/internal/server/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(sqlx.NewDb(db, "pgx")), mock, db
}

const insertQ = `(?s)^\s*INSERT\s+INTO\s+slides\s*\(presentation_id,\s*content,\s*slide_order\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id\s*$`

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).WithArgs(int64(1), "blob", 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	s := &models.Slide{PresentationID: 1, Content: "blob", Order: 2}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, int64(11), s.ID)

	mock.ExpectQuery(insertQ).WithArgs(int64(1), "blob", 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(0)))
	assert.ErrorIs(t, repo.Create(context.Background(), &models.Slide{PresentationID: 1, Content: "blob", Order: 3}), common.ErrCreationFailed)

	mock.ExpectQuery(insertQ).WithArgs(int64(1), "blob", 4).WillReturnError(errors.New("down"))
	err := repo.Create(context.Background(), &models.Slide{PresentationID: 1, Content: "blob", Order: 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error performing sql request")

	require.NoError(t, mock.ExpectationsWereMet())
}

const listQ = `(?s)^\s*SELECT\s+id,\s*presentation_id,\s*content,\s*slide_order\s+FROM\s+slides\s+WHERE\s+presentation_id\s*=\s*\$1\s+ORDER\s+BY\s+slide_order\s+ASC,\s*id\s+ASC\s*$`

func TestListByPresentation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "presentation_id", "content", "slide_order"}).
			AddRow(int64(2), int64(5), "a", 0).
			AddRow(int64(1), int64(5), "b", 1))

	got, err := repo.ListByPresentation(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, "b", got[1].Content)
	assert.Equal(t, 1, got[1].Order)
}

func TestListByPresentation_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "presentation_id", "content", "slide_order"}))

	got, err := repo.ListByPresentation(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListByPresentation_Error(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WithArgs(int64(5)).WillReturnError(errors.New("down"))

	_, err := repo.ListByPresentation(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to select slides")
}

func TestDeleteExcept_WithKeepSet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE FROM slides WHERE presentation_id = \$1 AND id NOT IN \(\$2, \$3\)$`).
		WithArgs(int64(5), int64(10), int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExcept(context.Background(), 5, []int64{10, 12})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExcept_EmptyKeepSetDeletesAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE FROM slides WHERE presentation_id = \$1$`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteExcept(context.Background(), 5, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExcept_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE FROM slides`).WillReturnError(errors.New("down"))

	_, err := repo.DeleteExcept(context.Background(), 5, []int64{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

const updateQ = `(?s)^\s*UPDATE\s+slides\s+SET\s+content\s*=\s*\$1,\s*slide_order\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$3\s+AND\s+presentation_id\s*=\s*\$4\s*$`

func TestUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	s := &models.Slide{ID: 3, PresentationID: 5, Content: "new", Order: 1}

	mock.ExpectExec(updateQ).WithArgs("new", 1, int64(3), int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.Update(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(updateQ).WithArgs("new", 1, int64(3), int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.Update(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectExec(updateQ).WithArgs("new", 1, int64(3), int64(5)).WillReturnResult(sqlmock.NewResult(0, 2))
	_, err = repo.Update(context.Background(), s)
	require.Error(t, err)

	mock.ExpectExec(updateQ).WithArgs("new", 1, int64(3), int64(5)).WillReturnError(errors.New("down"))
	_, err = repo.Update(context.Background(), s)
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}
