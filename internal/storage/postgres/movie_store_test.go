package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/moviecatalog/internal/catalog"
)

const testMovieID = "0190d4c8-7a9e-7c4b-9a51-3f3a7f5e2b10"

var movieCols = []string{"id", "title", "director", "rating", "category", "description", "created_at"}

type fixedIDGen struct{ id string }

func (g fixedIDGen) NewID() (string, error) { return g.id, nil }

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *MovieStore) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	client, err := NewClientWithPool(mock)
	require.NoError(t, err)
	return mock, client.Movies(fixedIDGen{id: testMovieID})
}

func TestMovieStoreInsertWritesRow(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)
	defer mock.Close()

	created := time.Unix(1700000000, 0).UTC()
	movie := catalog.Movie{
		Title:       "Arrival",
		Director:    "Denis Villeneuve",
		Rating:      8.5,
		Category:    "Drama",
		Description: "...",
		CreatedAt:   created,
	}
	mock.ExpectExec("INSERT INTO movie").
		WithArgs(testMovieID, "Arrival", "Denis Villeneuve", 8.5, "Drama", "...", created).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	id, err := store.Insert(context.Background(), movie)
	require.NoError(t, err)
	require.Equal(t, testMovieID, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieStoreGet(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)
	defer mock.Close()

	created := time.Unix(1700000000, 0).UTC()
	mock.ExpectQuery("FROM movie WHERE id").
		WithArgs(testMovieID).
		WillReturnRows(pgxmock.NewRows(movieCols).
			AddRow(testMovieID, "Arrival", "Denis Villeneuve", 8.5, "Drama", "...", created))

	got, err := store.Get(context.Background(), testMovieID)
	require.NoError(t, err)
	require.Equal(t, catalog.Movie{
		ID:          testMovieID,
		Title:       "Arrival",
		Director:    "Denis Villeneuve",
		Rating:      8.5,
		Category:    "Drama",
		Description: "...",
		CreatedAt:   created,
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieStoreGetNotFound(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)
	defer mock.Close()

	mock.ExpectQuery("FROM movie WHERE id").
		WithArgs(testMovieID).
		WillReturnError(pgx.ErrNoRows)

	_, err := store.Get(context.Background(), testMovieID)
	require.ErrorIs(t, err, catalog.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieStoreMalformedIDSkipsQuery(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)
	defer mock.Close()

	ctx := context.Background()
	_, err := store.Get(ctx, "nope")
	require.ErrorIs(t, err, catalog.ErrMalformedID)
	require.ErrorIs(t, store.Update(ctx, "nope", catalog.Movie{}), catalog.ErrMalformedID)
	require.ErrorIs(t, store.Delete(ctx, "nope"), catalog.ErrMalformedID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieStoreFindByTitle(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)
	defer mock.Close()

	mock.ExpectQuery("FROM movie WHERE title").
		WithArgs("Missing").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("FROM movie WHERE title").
		WithArgs("Broken").
		WillReturnError(errors.New("conn closed"))

	_, err := store.FindByTitle(context.Background(), "Missing")
	require.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = store.FindByTitle(context.Background(), "Broken")
	require.Error(t, err)
	require.NotErrorIs(t, err, catalog.ErrNotFound)
	require.Contains(t, err.Error(), "find movie by title")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieStoreUpdateLeavesCreatedAt(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE movie").
		WithArgs("Arrival", "Denis Villeneuve", 9.0, "Sci-Fi", "", testMovieID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := store.Update(context.Background(), testMovieID, catalog.Movie{
		Title:     "Arrival",
		Director:  "Denis Villeneuve",
		Rating:    9,
		Category:  "Sci-Fi",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieStoreDeleteMissingIsNoOp(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM movie").
		WithArgs(testMovieID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, store.Delete(context.Background(), testMovieID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieStoreTopRated(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)
	defer mock.Close()

	created := time.Unix(1700000000, 0).UTC()
	mock.ExpectQuery("ORDER BY rating DESC, created_at DESC, id ASC LIMIT").
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows(movieCols).
			AddRow("a", "A", "D", 9.0, "", "", created).
			AddRow("b", "B", "D", 7.0, "", "", created).
			AddRow("c", "C", "D", 5.0, "", "", created))

	top, err := store.TopRated(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.Equal(t, "A", top[0].Title)
	require.Equal(t, 5.0, top[2].Rating)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieStoreListEmpty(t *testing.T) {
	t.Parallel()

	mock, store := newMockStore(t)
	defer mock.Close()

	mock.ExpectQuery("ORDER BY created_at DESC").
		WillReturnRows(pgxmock.NewRows(movieCols))

	movies, err := store.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, movies)
	require.Empty(t, movies)
	require.NoError(t, mock.ExpectationsWereMet())
}
