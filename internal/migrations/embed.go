// Package migrations provides embedded SQL migration files.
package migrations

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed sql/001_rating_cache.sql
var RatingCacheSQL string

// Apply runs every migration against db in order.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range []string{RatingCacheSQL} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %03d: %w", i+1, err)
		}
	}
	return nil
}
