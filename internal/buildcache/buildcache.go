// Package buildcache persists the results of expensive build steps in a
// sqlite database. An entry is keyed by a string and remembers the content
// digest of every file it was computed from; it goes stale when one of
// those files changes, disappears or, if it was missing, appears, or when
// it outlives the cache's TTL.
package buildcache

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

// absentDigest is stored for a dependency that did not exist. No blake2b
// digest is this short.
var absentDigest = []byte("absent")

const schema = `
CREATE TABLE IF NOT EXISTS entry (
    key TEXT PRIMARY KEY
    ,value BLOB NOT NULL
    ,created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS dependency (
    key TEXT NOT NULL REFERENCES entry (key) ON DELETE CASCADE
    ,path TEXT NOT NULL
    ,digest BLOB NOT NULL
    ,PRIMARY KEY (key, path)
);
`

// Cache is an on-disk memoization cache. It is safe for concurrent use.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
	// OnInvalidate, if set, is called with the key of every stale entry
	// that is dropped and the reason it went stale.
	OnInvalidate func(key, reason string)
}

// Open opens or creates the cache database at path. Entries older than ttl
// are stale; a ttl of zero keeps entries until a dependency changes.
func Open(path string, ttl time.Duration) (*Cache, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dataSourceName := path + "?_pragma=busy_timeout(10000)&_pragma=foreign_keys(ON)&_pragma=journal_mode(WAL)"
	db, err := sql.Open(sqliteDriverName, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("buildcache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("buildcache: create schema in %s: %w", path, err)
	}
	return &Cache{db: db, ttl: ttl, now: time.Now}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Digest returns the blake2b-256 digest of the file at path.
func Digest(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sum := blake2b.Sum256(b)
	return sum[:], nil
}

// Get returns the value stored under key if it is still fresh. A stale
// entry is deleted and reported as a miss.
func (c *Cache) Get(ctx context.Context, key string) (value []byte, ok bool, err error) {
	var createdAt int64
	err = c.db.QueryRowContext(ctx, "SELECT value, created_at FROM entry WHERE key = ?", key).Scan(&value, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("buildcache: get %s: %w", key, err)
	}
	reason, err := c.staleReason(ctx, key, time.Unix(0, createdAt))
	if err != nil {
		return nil, false, err
	}
	if reason != "" {
		if err := c.invalidate(ctx, key, reason); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	return value, true, nil
}

func (c *Cache) staleReason(ctx context.Context, key string, createdAt time.Time) (string, error) {
	if c.ttl > 0 && c.now().Sub(createdAt) > c.ttl {
		return "expired", nil
	}
	rows, err := c.db.QueryContext(ctx, "SELECT path, digest FROM dependency WHERE key = ? ORDER BY path", key)
	if err != nil {
		return "", fmt.Errorf("buildcache: dependencies of %s: %w", key, err)
	}
	defer rows.Close()
	for rows.Next() {
		var path string
		var digest []byte
		if err := rows.Scan(&path, &digest); err != nil {
			return "", fmt.Errorf("buildcache: dependencies of %s: %w", key, err)
		}
		current, err := Digest(path)
		if bytes.Equal(digest, absentDigest) {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "appeared " + path, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return "removed " + path, nil
		}
		if err != nil {
			return "unreadable " + path, nil
		}
		if string(current) != string(digest) {
			return "changed " + path, nil
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("buildcache: dependencies of %s: %w", key, err)
	}
	return "", nil
}

func (c *Cache) invalidate(ctx context.Context, key, reason string) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM entry WHERE key = ?", key); err != nil {
		return fmt.Errorf("buildcache: invalidate %s: %w", key, err)
	}
	if c.OnInvalidate != nil {
		c.OnInvalidate(key, reason)
	}
	return nil
}

// Put stores value under key, computed from the files in deps. The files
// are digested now, so Put must follow the computation that read them. A
// file of deps that does not exist is recorded as absent: the entry goes
// stale when it is created.
func (c *Cache) Put(ctx context.Context, key string, value []byte, deps []string) (err error) {
	digests := make(map[string][]byte, len(deps))
	for _, dep := range deps {
		abs, err := filepath.Abs(dep)
		if err != nil {
			return err
		}
		digest, err := Digest(abs)
		if errors.Is(err, os.ErrNotExist) {
			digest = absentDigest
		} else if err != nil {
			return fmt.Errorf("buildcache: put %s: %w", key, err)
		}
		digests[abs] = digest
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("buildcache: put %s: %w", key, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, "DELETE FROM entry WHERE key = ?", key); err != nil {
		return fmt.Errorf("buildcache: put %s: %w", key, err)
	}
	if _, err = tx.ExecContext(ctx, "INSERT INTO entry (key, value, created_at) VALUES (?, ?, ?)", key, value, c.now().UnixNano()); err != nil {
		return fmt.Errorf("buildcache: put %s: %w", key, err)
	}
	for path, digest := range digests {
		if _, err = tx.ExecContext(ctx, "INSERT INTO dependency (key, path, digest) VALUES (?, ?, ?)", key, path, digest); err != nil {
			return fmt.Errorf("buildcache: put %s: %w", key, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("buildcache: put %s: %w", key, err)
	}
	return nil
}

// Memoize returns the fresh value stored under key, or runs compute and
// stores its result together with the dependencies compute reports.
// Errors from compute are returned and nothing is stored.
func (c *Cache) Memoize(ctx context.Context, key string, compute func() (value []byte, deps []string, err error)) ([]byte, error) {
	value, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		return value, nil
	}
	value, deps, err := compute()
	if err != nil {
		return nil, err
	}
	if err := c.Put(ctx, key, value, deps); err != nil {
		return nil, err
	}
	return value, nil
}
