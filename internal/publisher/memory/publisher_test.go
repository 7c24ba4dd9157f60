package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/moviecatalog/internal/catalog"
)

func TestPublisherStoresMessages(t *testing.T) {
	t.Parallel()

	pub := New()
	event := catalog.ChangeEvent{Type: catalog.MovieCreated, MovieID: "m1", Title: "Heat", OccurredAt: time.Unix(0, 0).UTC()}
	id1, err := pub.Publish(context.Background(), "movies", event)
	require.NoError(t, err)
	require.Equal(t, "memory-1", id1)

	id2, err := pub.Publish(context.Background(), "audit", "payload")
	require.NoError(t, err)
	require.Equal(t, "memory-2", id2)

	msgs := pub.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, "movies", msgs[0].Topic)
	require.Equal(t, event, msgs[0].Payload)
	require.Equal(t, "audit", msgs[1].Topic)

	msgs[0].Topic = "modified"
	require.Equal(t, "movies", pub.Messages()[0].Topic, "Messages must return a copy")
}

func TestPublisherFailWith(t *testing.T) {
	t.Parallel()

	pub := New()
	boom := errors.New("boom")
	pub.FailWith(boom)

	_, err := pub.Publish(context.Background(), "movies", "x")
	require.ErrorIs(t, err, boom)
	require.Empty(t, pub.Messages())

	pub.FailWith(nil)
	_, err = pub.Publish(context.Background(), "movies", "x")
	require.NoError(t, err)
	require.Len(t, pub.Messages(), 1)
	require.NoError(t, pub.Close())
}
