// Package memory provides in-process catalog stores for development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/JakeFAU/moviecatalog/internal/catalog"
	"github.com/JakeFAU/moviecatalog/internal/id/uuid"
)

// MovieStore provides an in-memory catalog.MovieRepository.
type MovieStore struct {
	mu     sync.RWMutex
	movies map[string]catalog.Movie
	idGen  catalog.IDGenerator
}

// NewMovieStore constructs a MovieStore. A nil idGen defaults to UUIDv7.
func NewMovieStore(idGen catalog.IDGenerator) *MovieStore {
	if idGen == nil {
		idGen = uuid.New()
	}
	return &MovieStore{
		movies: make(map[string]catalog.Movie),
		idGen:  idGen,
	}
}

// List returns every movie, newest first.
func (s *MovieStore) List(_ context.Context) ([]catalog.Movie, error) {
	out := s.snapshot()
	catalog.SortNewestFirst(out)
	return out, nil
}

// Get fetches a movie by ID.
func (s *MovieStore) Get(_ context.Context, id string) (catalog.Movie, error) {
	key, err := uuid.Canonical(id)
	if err != nil {
		return catalog.Movie{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	movie, ok := s.movies[key]
	if !ok {
		return catalog.Movie{}, catalog.ErrNotFound
	}
	return movie, nil
}

// FindByTitle returns the first movie with an exactly matching title.
func (s *MovieStore) FindByTitle(_ context.Context, title string) (catalog.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, movie := range s.movies {
		if movie.Title == title {
			return movie, nil
		}
	}
	return catalog.Movie{}, catalog.ErrNotFound
}

// Insert stores a new movie under a generated ID.
func (s *MovieStore) Insert(_ context.Context, movie catalog.Movie) (string, error) {
	id, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate movie id: %w", err)
	}
	movie.ID = id
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.movies[id]; exists {
		return "", fmt.Errorf("movie %s already exists", id)
	}
	s.movies[id] = movie
	return id, nil
}

// Update replaces the editable fields of an existing movie.
func (s *MovieStore) Update(_ context.Context, id string, movie catalog.Movie) error {
	key, err := uuid.Canonical(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.movies[key]
	if !ok {
		return nil
	}
	current.Title = movie.Title
	current.Director = movie.Director
	current.Rating = movie.Rating
	current.Category = movie.Category
	current.Description = movie.Description
	s.movies[key] = current
	return nil
}

// Delete removes a movie if present.
func (s *MovieStore) Delete(_ context.Context, id string) error {
	key, err := uuid.Canonical(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.movies, key)
	return nil
}

// TopRated returns at most n movies, best rated first.
func (s *MovieStore) TopRated(_ context.Context, n int) ([]catalog.Movie, error) {
	out := s.snapshot()
	catalog.SortTopRated(out)
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Ping always succeeds.
func (s *MovieStore) Ping(context.Context) error {
	return nil
}

func (s *MovieStore) snapshot() []catalog.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Movie, 0, len(s.movies))
	for _, movie := range s.movies {
		out = append(out, movie)
	}
	return out
}
