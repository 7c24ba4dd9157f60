package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/moviecatalog/internal/catalog"
)

func TestMovieStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMovieStore(nil)
	created := time.Unix(1700000000, 0).UTC()
	in := catalog.Movie{
		Title:       "Arrival",
		Director:    "Denis Villeneuve",
		Rating:      8.5,
		Category:    "Drama",
		Description: "...",
		CreatedAt:   created,
	}

	id, err := store.Insert(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	in.ID = id
	require.Equal(t, in, got)

	byTitle, err := store.FindByTitle(ctx, "Arrival")
	require.NoError(t, err)
	require.Equal(t, id, byTitle.ID)
}

func TestMovieStoreGetErrors(t *testing.T) {
	t.Parallel()

	store := NewMovieStore(nil)
	_, err := store.Get(context.Background(), "zzz")
	require.ErrorIs(t, err, catalog.ErrMalformedID)

	_, err = store.Get(context.Background(), "0190d4c8-7a9e-7c4b-9a51-3f3a7f5e2b10")
	require.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = store.FindByTitle(context.Background(), "missing")
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestMovieStoreUpdateKeepsCreatedAt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMovieStore(nil)
	created := time.Unix(1700000000, 0).UTC()
	id, err := store.Insert(ctx, catalog.Movie{Title: "Old", Director: "D", Rating: 1, CreatedAt: created})
	require.NoError(t, err)

	err = store.Update(ctx, id, catalog.Movie{
		Title:     "New",
		Director:  "E",
		Rating:    2,
		Category:  "Comedy",
		CreatedAt: created.Add(time.Hour),
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "New", got.Title)
	require.Equal(t, "Comedy", got.Category)
	require.Equal(t, created, got.CreatedAt)
}

func TestMovieStoreMissingIDsAreNoOps(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMovieStore(nil)
	missing := "0190d4c8-7a9e-7c4b-9a51-3f3a7f5e2b10"
	require.NoError(t, store.Update(ctx, missing, catalog.Movie{Title: "x"}))
	require.NoError(t, store.Delete(ctx, missing))
	require.NoError(t, store.Delete(ctx, missing))
	require.ErrorIs(t, store.Delete(ctx, "bad"), catalog.ErrMalformedID)
	require.ErrorIs(t, store.Update(ctx, "bad", catalog.Movie{}), catalog.ErrMalformedID)

	movies, err := store.List(ctx)
	require.NoError(t, err)
	require.Empty(t, movies)
}

func TestMovieStoreOrdering(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMovieStore(nil)
	base := time.Unix(1700000000, 0).UTC()
	for i, rating := range []float64{9, 7, 5, 3, 1} {
		_, err := store.Insert(ctx, catalog.Movie{
			Title:     fmt.Sprintf("movie-%d", i),
			Director:  "D",
			Rating:    rating,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	top, err := store.TopRated(ctx, catalog.TopListSize)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.Equal(t, []float64{9, 7, 5}, []float64{top[0].Rating, top[1].Rating, top[2].Rating})

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	require.Equal(t, "movie-4", all[0].Title)
	require.Equal(t, "movie-0", all[4].Title)
}
