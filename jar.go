package rawcookie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (pure Go).
)

const jarSchema = `
CREATE TABLE IF NOT EXISTS cookies (
	name       TEXT PRIMARY KEY,
	serialized TEXT NOT NULL
)`

// Jar persists cookies in a SQLite database, keyed by cookie name. Each row
// stores the full serialized Set-Cookie value, so a Put is a plain write of
// Cookie.String and a Get is a Parse.
//
// A Jar is safe for concurrent use; all shared state lives in database/sql.
type Jar struct {
	db      *sql.DB
	cleanup func()
}

// OpenJar opens the jar database at path, creating it and its schema when
// missing.
func OpenJar(ctx context.Context, path string) (*Jar, error) {
	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(path)+"?mode=rwc")
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, jarSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Jar{db: db}, nil
}

// OpenJarSnapshot copies the jar database (plus WAL sidecars, if present)
// into a temporary directory and opens the copy read-only. Use it to read a
// jar another process may be writing.
func OpenJarSnapshot(ctx context.Context, path string) (*Jar, error) {
	dir, err := os.MkdirTemp("", "rawcookie-jar-")
	if err != nil {
		return nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	target := filepath.Join(dir, "cookies.db")
	if err := copyFile(path, target); err != nil {
		cleanup()
		return nil, fmt.Errorf("rawcookie: failed to copy jar: %w", err)
	}
	// If WAL mode is enabled, recent writes may live in sidecars.
	_ = copyFileIfExists(path+"-wal", target+"-wal")
	_ = copyFileIfExists(path+"-shm", target+"-shm")

	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(target)+"?mode=ro")
	if err != nil {
		cleanup()
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		cleanup()
		return nil, err
	}
	return &Jar{db: db, cleanup: cleanup}, nil
}

// Close releases the database handle and any snapshot files.
func (j *Jar) Close() error {
	err := j.db.Close()
	if j.cleanup != nil {
		j.cleanup()
	}
	return err
}

// Put stores the cookie, replacing any stored cookie with the same name.
func (j *Jar) Put(ctx context.Context, c *Cookie) error {
	if c.Name() == "" {
		return fmt.Errorf("%w: cookie name must not be empty", ErrInvalidOperation)
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO cookies (name, serialized) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET serialized = excluded.serialized`,
		c.Name(), c.String())
	return err
}

// Get returns the stored cookie with the given name, or ErrNotFound.
func (j *Jar) Get(ctx context.Context, name string) (*Cookie, error) {
	var serialized string
	err := j.db.QueryRowContext(ctx,
		`SELECT serialized FROM cookies WHERE name = ?`, name).Scan(&serialized)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	c, err := Parse(serialized)
	if err != nil {
		return nil, fmt.Errorf("rawcookie: stored cookie %q: %w", name, err)
	}
	return c, nil
}

// Delete removes the stored cookie with the given name. Deleting an absent
// name is a no-op.
func (j *Jar) Delete(ctx context.Context, name string) error {
	_, err := j.db.ExecContext(ctx, `DELETE FROM cookies WHERE name = ?`, name)
	return err
}

// All returns every stored cookie in name order. Rows that no longer parse
// are skipped and reported as warnings rather than failing the read.
func (j *Jar) All(ctx context.Context) ([]*Cookie, []string, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT name, serialized FROM cookies ORDER BY name`)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*Cookie
	var warnings []string
	for rows.Next() {
		var name, serialized string
		if err := rows.Scan(&name, &serialized); err != nil {
			return nil, warnings, err
		}
		c, err := Parse(serialized)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("rawcookie: stored cookie %q: %v", name, err))
			continue
		}
		out = append(out, c)
	}
	return out, warnings, rows.Err()
}

// Match returns the stored cookies a client would send to rawURL: the
// cookie's Domain must cover the URL host, its Path must cover the URL
// path, Secure cookies require an https/wss scheme, and expired cookies
// are dropped.
func (j *Jar) Match(ctx context.Context, rawURL string) ([]*Cookie, []string, error) {
	origin, err := parseOrigin(rawURL)
	if err != nil {
		return nil, nil, err
	}

	all, warnings, err := j.All(ctx)
	if err != nil {
		return nil, warnings, err
	}

	now := time.Now()
	var out []*Cookie
	for _, c := range all {
		if cookieMatchesOrigin(c, origin, now) {
			out = append(out, c)
		}
	}
	return out, warnings, nil
}
