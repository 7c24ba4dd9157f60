// Package uuid generates and checks the UUIDv7 identifiers used by the
// memory and Postgres movie stores.
package uuid

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/JakeFAU/moviecatalog/internal/catalog"
)

// Generator creates UUID v7 strings.
type Generator struct{}

// New creates a new Generator.
func New() *Generator {
	return &Generator{}
}

// NewID returns a UUID7 string.
func (Generator) NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid7: %w", err)
	}
	return id.String(), nil
}

// Canonical parses id and returns its lowercase hyphenated form. Anything
// that is not a UUID yields catalog.ErrMalformedID.
func Canonical(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", catalog.MalformedID(id, err)
	}
	return parsed.String(), nil
}
