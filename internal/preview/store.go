package preview

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/capreq/staticpages"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// ErrPageNotFound is returned by Lookup when no row matches the path.
var ErrPageNotFound = errors.New("page not found")

// HTMLContentType is stored for every generated page.
const HTMLContentType = "text/html; charset=utf-8"

const schema = `CREATE TABLE IF NOT EXISTS static_pages (
	path         TEXT PRIMARY KEY,
	content      TEXT NOT NULL,
	content_type TEXT NOT NULL
)`

// Page is a stored static page.
type Page struct {
	Path        string
	Content     string
	ContentType string
}

// Store is a SQLite-backed static_pages table.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at dsn (":memory:" for a throwaway store),
// applies pragmas and creates the static_pages table.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("preview: open: %w", err)
	}

	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("preview: %s: %w", p, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("preview: exec schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Replace deletes every row and inserts pages, in one transaction.
// This mirrors the DELETE + INSERT migration document.
func (s *Store) Replace(ctx context.Context, pages []staticpages.ProducedPage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("preview: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM static_pages"); err != nil {
		return fmt.Errorf("preview: delete: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO static_pages (path, content, content_type) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preview: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range pages {
		if _, err := stmt.ExecContext(ctx, p.Name, p.Content, HTMLContentType); err != nil {
			return fmt.Errorf("preview: insert %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("preview: commit: %w", err)
	}
	return nil
}

// Lookup returns the page stored under path.
func (s *Store) Lookup(ctx context.Context, path string) (Page, error) {
	p := Page{Path: path}
	err := s.db.QueryRowContext(ctx,
		"SELECT content, content_type FROM static_pages WHERE path = ?", path,
	).Scan(&p.Content, &p.ContentType)
	if errors.Is(err, sql.ErrNoRows) {
		return Page{}, fmt.Errorf("%w: %s", ErrPageNotFound, path)
	}
	if err != nil {
		return Page{}, fmt.Errorf("preview: lookup %s: %w", path, err)
	}
	return p, nil
}

// Count returns the number of stored pages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM static_pages").Scan(&n); err != nil {
		return 0, fmt.Errorf("preview: count: %w", err)
	}
	return n, nil
}
