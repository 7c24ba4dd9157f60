package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/moviecatalog/internal/catalog"
)

func TestCategoryStoreSeedOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewCategoryStore()

	seeded, err := store.SeedIfEmpty(ctx, []string{"Romance", "Action"})
	require.NoError(t, err)
	require.True(t, seeded)

	seeded, err = store.SeedIfEmpty(ctx, []string{"Romance", "Action"})
	require.NoError(t, err)
	require.False(t, seeded)

	names, err := store.ListNames(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Action", "Romance"}, names)
}

func TestCategoryStoreConcurrentSeed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewCategoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.SeedIfEmpty(ctx, catalog.DefaultCategories)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	names, err := store.ListNames(ctx)
	require.NoError(t, err)
	require.Equal(t, catalog.DefaultCategories, names)
}
