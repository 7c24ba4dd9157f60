package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JakeFAU/moviecatalog/internal/catalog"
	"github.com/JakeFAU/moviecatalog/internal/id/uuid"
)

const movieColumns = `id::text, title, director, rating, category, description, created_at`

// MovieStore implements catalog.MovieRepository on the movie table.
type MovieStore struct {
	pool  pgxIface
	idGen catalog.IDGenerator
}

// Movies returns a MovieStore sharing the client's pool. A nil idGen
// defaults to UUIDv7.
func (c *Client) Movies(idGen catalog.IDGenerator) *MovieStore {
	if idGen == nil {
		idGen = uuid.New()
	}
	return &MovieStore{pool: c.pool, idGen: idGen}
}

// List returns every movie, newest first.
func (s *MovieStore) List(ctx context.Context) ([]catalog.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movie ORDER BY created_at DESC, id DESC`
	return s.queryMovies(ctx, "list movies", query)
}

// Get loads one movie by ID.
func (s *MovieStore) Get(ctx context.Context, id string) (catalog.Movie, error) {
	key, err := uuid.Canonical(id)
	if err != nil {
		return catalog.Movie{}, err
	}
	query := `SELECT ` + movieColumns + ` FROM movie WHERE id = $1`
	movie, err := scanMovie(s.pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Movie{}, catalog.ErrNotFound
		}
		return catalog.Movie{}, fmt.Errorf("get movie: %w", err)
	}
	return movie, nil
}

// FindByTitle returns the oldest movie with the given title.
func (s *MovieStore) FindByTitle(ctx context.Context, title string) (catalog.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movie WHERE title = $1 ORDER BY created_at ASC LIMIT 1`
	movie, err := scanMovie(s.pool.QueryRow(ctx, query, title))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Movie{}, catalog.ErrNotFound
		}
		return catalog.Movie{}, fmt.Errorf("find movie by title: %w", err)
	}
	return movie, nil
}

// Insert writes a new row under a generated ID.
func (s *MovieStore) Insert(ctx context.Context, movie catalog.Movie) (string, error) {
	id, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate movie id: %w", err)
	}
	query := `
		INSERT INTO movie (id, title, director, rating, category, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.pool.Exec(ctx, query,
		id,
		movie.Title,
		movie.Director,
		movie.Rating,
		movie.Category,
		movie.Description,
		movie.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert movie: %w", err)
	}
	return id, nil
}

// Update replaces the editable columns. created_at is left untouched.
func (s *MovieStore) Update(ctx context.Context, id string, movie catalog.Movie) error {
	key, err := uuid.Canonical(id)
	if err != nil {
		return err
	}
	query := `
		UPDATE movie
		SET title = $1, director = $2, rating = $3, category = $4, description = $5
		WHERE id = $6
	`
	_, err = s.pool.Exec(ctx, query,
		movie.Title,
		movie.Director,
		movie.Rating,
		movie.Category,
		movie.Description,
		key,
	)
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	return nil
}

// Delete removes a movie by ID.
func (s *MovieStore) Delete(ctx context.Context, id string) error {
	key, err := uuid.Canonical(id)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM movie WHERE id = $1`, key); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	return nil
}

// TopRated returns at most n movies, best rated first.
func (s *MovieStore) TopRated(ctx context.Context, n int) ([]catalog.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movie ORDER BY rating DESC, created_at DESC, id ASC LIMIT $1`
	return s.queryMovies(ctx, "list top rated movies", query, n)
}

// Ping checks the pool can reach the server.
func (s *MovieStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

func (s *MovieStore) queryMovies(ctx context.Context, op, query string, args ...any) ([]catalog.Movie, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	movies := []catalog.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return movies, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(row scanner) (catalog.Movie, error) {
	var movie catalog.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Director,
		&movie.Rating,
		&movie.Category,
		&movie.Description,
		&movie.CreatedAt,
	)
	if err != nil {
		return catalog.Movie{}, err
	}
	movie.CreatedAt = movie.CreatedAt.UTC()
	return movie, nil
}
