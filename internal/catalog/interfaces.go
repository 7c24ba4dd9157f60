package catalog

import (
	"context"
	"time"
)

// MovieFinder is the read used by validation to detect duplicate titles.
type MovieFinder interface {
	FindByTitle(ctx context.Context, title string) (Movie, error)
}

// MovieRepository persists movies.
type MovieRepository interface {
	MovieFinder
	// List returns every movie, newest first.
	List(ctx context.Context) ([]Movie, error)
	// Get loads one movie or returns ErrNotFound / ErrMalformedID.
	Get(ctx context.Context, id string) (Movie, error)
	// Insert stores a new movie and returns its assigned ID.
	Insert(ctx context.Context, movie Movie) (string, error)
	// Update replaces the editable fields. Unknown IDs are a no-op.
	Update(ctx context.Context, id string, movie Movie) error
	// Delete removes a movie. Unknown IDs are a no-op.
	Delete(ctx context.Context, id string) error
	// TopRated returns at most n movies ordered by SortTopRated.
	TopRated(ctx context.Context, n int) ([]Movie, error)
}

// CategoryRepository persists the category reference list.
type CategoryRepository interface {
	// ListNames returns category names in ascending order.
	ListNames(ctx context.Context) ([]string, error)
	// SeedIfEmpty inserts names only when no category exists yet and reports
	// whether anything was written.
	SeedIfEmpty(ctx context.Context, names []string) (bool, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Publisher pushes change events to Pub/Sub (or similar).
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) (string, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces movie IDs for drivers that do not assign their own.
type IDGenerator interface {
	NewID() (string, error)
}
