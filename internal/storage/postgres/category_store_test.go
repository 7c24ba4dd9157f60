package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/moviecatalog/internal/catalog"
)

func newMockCategories(t *testing.T) (pgxmock.PgxPoolIface, *CategoryStore) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	client, err := NewClientWithPool(mock)
	require.NoError(t, err)
	return mock, client.Categories()
}

func TestCategoryStoreSeedIfEmpty(t *testing.T) {
	t.Parallel()

	mock, store := newMockCategories(t)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO category").
		WithArgs(catalog.DefaultCategories).
		WillReturnResult(pgxmock.NewResult("INSERT", 5))
	mock.ExpectExec("INSERT INTO category").
		WithArgs(catalog.DefaultCategories).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	seeded, err := store.SeedIfEmpty(context.Background(), catalog.DefaultCategories)
	require.NoError(t, err)
	require.True(t, seeded)

	seeded, err = store.SeedIfEmpty(context.Background(), catalog.DefaultCategories)
	require.NoError(t, err)
	require.False(t, seeded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryStoreListNames(t *testing.T) {
	t.Parallel()

	mock, store := newMockCategories(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT name FROM category ORDER BY name").
		WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("Action").AddRow("Comedy"))

	names, err := store.ListNames(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Action", "Comedy"}, names)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryStoreListNamesError(t *testing.T) {
	t.Parallel()

	mock, store := newMockCategories(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT name FROM category").WillReturnError(errors.New("boom"))

	_, err := store.ListNames(context.Background())
	require.ErrorContains(t, err, "list categories")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientEnsureSchema(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	client, err := NewClientWithPool(mock)
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS movie").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS movie_created_at_idx").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS movie_title_idx").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS category").WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, client.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewClientRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := NewClient(context.Background(), Config{})
	require.ErrorContains(t, err, "postgres.dsn")

	_, err = NewClientWithPool(nil)
	require.Error(t, err)
}
