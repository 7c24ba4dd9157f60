// Package uuid includes tests for the UUID generator wrapper.
package uuid

import (
	"strings"
	"testing"

	goUUID "github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/moviecatalog/internal/catalog"
)

// TestGeneratorNewID ensures generated IDs are unique, valid, version 7 UUIDs.
func TestGeneratorNewID(t *testing.T) {
	t.Parallel()

	gen := New()
	id1, err := gen.NewID()
	require.NoError(t, err)
	id2, err := gen.NewID()
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)

	parsed, err := goUUID.Parse(id1)
	require.NoError(t, err)
	require.Equal(t, goUUID.Version(7), parsed.Version())
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	id := goUUID.New().String()
	got, err := Canonical(strings.ToUpper(id))
	require.NoError(t, err)
	require.Equal(t, id, got)

	_, err = Canonical("not-a-uuid")
	require.ErrorIs(t, err, catalog.ErrMalformedID)
	_, err = Canonical("")
	require.ErrorIs(t, err, catalog.ErrMalformedID)
}
