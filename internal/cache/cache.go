// Package cache is the durable local key-value store behind offline
// snapshots and UI preferences. Values are JSON blobs in a single sqlite
// table keyed by fixed string constants.
//
// Corrupt or missing entries are never surfaced to callers as errors: a
// failed read logs a warning, drops the row and reports a miss, so every
// consumer falls back to its hard-coded defaults.
package cache

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// Well-known keys
const (
	KeyUIPrefs       = "ui.prefs"
	KeySnapshotBase  = "project.snapshot." // + project id
	KeyRecentProject = "project.recent"
)

// SnapshotKey returns the cache key for a project's offline snapshot
func SnapshotKey(projectID string) string {
	return KeySnapshotBase + projectID
}

// Cache wraps the sqlite handle
type Cache struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the cache database at path.
// modernc.org/sqlite driver name is "sqlite".
func Open(path string, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL,
		updated_at_unixms INTEGER NOT NULL
	);`); err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db, logger: logger}, nil
}

// Close releases the underlying database handle
func (c *Cache) Close() error {
	return c.db.Close()
}

// PutJSON stores v under key, replacing any previous value
func (c *Cache) PutJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = c.db.Exec(`INSERT OR REPLACE INTO kv(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
		key, string(data), time.Now().UTC().UnixMilli())
	return err
}

// GetJSON loads the value under key into out. It reports false on a miss,
// and treats corrupt entries as misses: the bad row is dropped and a
// warning logged, never an error returned.
func (c *Cache) GetJSON(key string, out any) bool {
	var raw string
	err := c.db.QueryRow(`SELECT v FROM kv WHERE k = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		c.logger.Warn("discarding corrupt cache entry", "key", key, "error", err)
		c.Delete(key)
		return false
	}
	return true
}

// Delete removes the value under key, if any
func (c *Cache) Delete(key string) {
	if _, err := c.db.Exec(`DELETE FROM kv WHERE k = ?`, key); err != nil {
		c.logger.Warn("cache delete failed", "key", key, "error", err)
	}
}
