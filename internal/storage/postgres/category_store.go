package postgres

import (
	"context"
	"fmt"
)

// CategoryStore implements catalog.CategoryRepository on the category table.
type CategoryStore struct {
	pool pgxIface
}

// Categories returns a CategoryStore sharing the client's pool.
func (c *Client) Categories() *CategoryStore {
	return &CategoryStore{pool: c.pool}
}

// ListNames returns category names in ascending order.
func (s *CategoryStore) ListNames(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM category ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return names, nil
}

// SeedIfEmpty inserts names in one statement that only writes when the table
// is empty. The primary key on name absorbs a concurrent seeder.
func (s *CategoryStore) SeedIfEmpty(ctx context.Context, names []string) (bool, error) {
	if len(names) == 0 {
		return false, nil
	}
	query := `
		INSERT INTO category (name)
		SELECT unnest($1::text[])
		WHERE NOT EXISTS (SELECT 1 FROM category)
		ON CONFLICT (name) DO NOTHING
	`
	tag, err := s.pool.Exec(ctx, query, names)
	if err != nil {
		return false, fmt.Errorf("seed categories: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
