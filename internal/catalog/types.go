package catalog

import (
	"sort"
	"strconv"
	"time"
)

// DefaultCategories seeds the category collection the first time the add form
// is requested against an empty store.
var DefaultCategories = []string{"Action", "Comedy", "Crime", "Horror", "Romance"}

// TopListSize is the number of movies shown on the top-rated page.
const TopListSize = 3

// Movie is one catalog record.
type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Director    string    `json:"director"`
	Rating      float64   `json:"rating"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// RatingText renders the rating the way the edit form expects it back.
func (m Movie) RatingText() string {
	return strconv.FormatFloat(m.Rating, 'f', -1, 64)
}

// Form converts a stored movie back into form values.
func (m Movie) Form() MovieForm {
	return MovieForm{
		Title:       m.Title,
		Director:    m.Director,
		Rating:      m.RatingText(),
		Category:    m.Category,
		Description: m.Description,
	}
}

// MovieForm carries the raw, unvalidated values submitted by the add and edit
// forms.
type MovieForm struct {
	Title       string
	Director    string
	Rating      string
	Category    string
	Description string
}

// ChangeType labels a catalog mutation.
type ChangeType string

// Change types published after successful writes.
const (
	MovieCreated ChangeType = "movie.created"
	MovieUpdated ChangeType = "movie.updated"
	MovieDeleted ChangeType = "movie.deleted"
)

// ChangeEvent is the payload published for every successful mutation.
type ChangeEvent struct {
	Type       ChangeType `json:"type"`
	MovieID    string     `json:"movie_id"`
	Title      string     `json:"title,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// EventType returns the change type as a plain string for message attributes.
func (e ChangeEvent) EventType() string {
	return string(e.Type)
}

// SortNewestFirst orders movies by CreatedAt descending, falling back to ID
// descending so equal timestamps keep a stable order.
func SortNewestFirst(movies []Movie) {
	sort.SliceStable(movies, func(i, j int) bool {
		if !movies[i].CreatedAt.Equal(movies[j].CreatedAt) {
			return movies[i].CreatedAt.After(movies[j].CreatedAt)
		}
		return movies[i].ID > movies[j].ID
	})
}

// SortTopRated orders movies by Rating descending. Ties go to the newer movie,
// then to the lower ID. Every storage driver uses the same ordering.
func SortTopRated(movies []Movie) {
	sort.SliceStable(movies, func(i, j int) bool {
		a, b := movies[i], movies[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
