package ratings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmunix/boxoffice/internal/metrics"
)

const cacheName = "ratings"

// Store is the rating cache backed by SQLite. Entries have no expiry.
type Store struct {
	db *sql.DB
}

// NewStore creates a store on db. The rating_cache table must exist.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the cached rating for key.
func (s *Store) Get(ctx context.Context, key string) (*Rating, bool) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM rating_cache WHERE key = ?", key,
	).Scan(&payload)
	if err != nil {
		metrics.CacheLookups.WithLabelValues(cacheName, "miss").Inc()
		return nil, false
	}

	var r Rating
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		metrics.CacheLookups.WithLabelValues(cacheName, "miss").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues(cacheName, "hit").Inc()
	return &r, true
}

// Put stores r under key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key string, r *Rating) error {
	if r == nil || r.Unavailable {
		return errors.New("cache put: refusing to store an unavailable rating")
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO rating_cache (key, imdb_id, payload)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET imdb_id = excluded.imdb_id, payload = excluded.payload`,
		key, r.IMDBID, string(payload),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}

	if n, err := s.Len(ctx); err == nil {
		metrics.CacheEntries.WithLabelValues(cacheName).Set(float64(n))
	}
	return nil
}

// Len returns the number of cached ratings.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rating_cache").Scan(&n); err != nil {
		return 0, fmt.Errorf("cache count: %w", err)
	}
	return n, nil
}
