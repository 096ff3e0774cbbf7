package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ScheduleCacheRepository implements tasks.ScheduleCache over the SQLite
// session store.
//
// The store holds raw song_schedules response bodies keyed by song, written
// only after a successful fetch. A stale entry is valid until overwritten;
// staleness is bounded by the session lifetime, not wall-clock freshness.
type ScheduleCacheRepository struct {
	db *sql.DB
}

// NewScheduleCacheRepository creates a new ScheduleCacheRepository with the given database connection
func NewScheduleCacheRepository(db *sql.DB) *ScheduleCacheRepository {
	return &ScheduleCacheRepository{db: db}
}

// Get retrieves a cached response body. A missing entry is not an error.
func (r *ScheduleCacheRepository) Get(key string) (string, bool, error) {
	var body string
	err := r.db.QueryRow("SELECT body FROM schedule_cache WHERE key = ?", key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return body, true, nil
}

// Set writes or overwrites a cached response body.
func (r *ScheduleCacheRepository) Set(key, body string) error {
	query := `
		INSERT INTO schedule_cache (key, body) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.Exec(query, key, body); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Clear removes every cache entry, ending the cached portion of the session.
func (r *ScheduleCacheRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM schedule_cache"); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// CacheStats describes the current contents of the session store.
type CacheStats struct {
	Entries   int
	LastWrite *time.Time
}

// Stats returns entry counts and the most recent write time.
func (r *ScheduleCacheRepository) Stats() (CacheStats, error) {
	var stats CacheStats
	if err := r.db.QueryRow("SELECT COUNT(*) FROM schedule_cache").Scan(&stats.Entries); err != nil {
		return stats, fmt.Errorf("failed to count cache entries: %w", err)
	}

	if stats.Entries == 0 {
		return stats, nil
	}

	var last time.Time
	if err := r.db.QueryRow("SELECT updated_at FROM schedule_cache ORDER BY updated_at DESC LIMIT 1").Scan(&last); err != nil {
		return stats, fmt.Errorf("failed to read last write time: %w", err)
	}
	stats.LastWrite = &last

	return stats, nil
}
