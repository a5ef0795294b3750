package preview

import (
	"context"
	"errors"
	"testing"

	"github.com/capreq/staticpages"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_ReplaceAndLookup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	pages := []staticpages.ProducedPage{
		{Name: "index.html", Content: "<h1>home</h1>"},
		{Name: "detail.html", Content: "<h1>detail</h1>"},
	}
	if err := s.Replace(ctx, pages); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	got, err := s.Lookup(ctx, "detail.html")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got.Content != "<h1>detail</h1>" {
		t.Errorf("Content = %q, want %q", got.Content, "<h1>detail</h1>")
	}
	if got.ContentType != HTMLContentType {
		t.Errorf("ContentType = %q, want %q", got.ContentType, HTMLContentType)
	}
	if got.Path != "detail.html" {
		t.Errorf("Path = %q, want %q", got.Path, "detail.html")
	}
}

func TestStore_ReplaceDeletesPreviousRows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	if err := s.Replace(ctx, []staticpages.ProducedPage{
		{Name: "old.html", Content: "old"},
		{Name: "index.html", Content: "v1"},
	}); err != nil {
		t.Fatalf("first Replace() error = %v", err)
	}
	if err := s.Replace(ctx, []staticpages.ProducedPage{
		{Name: "index.html", Content: "v2"},
	}); err != nil {
		t.Fatalf("second Replace() error = %v", err)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}

	if _, err := s.Lookup(ctx, "old.html"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("Lookup(old.html) error = %v, want ErrPageNotFound", err)
	}
	got, err := s.Lookup(ctx, "index.html")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got.Content != "v2" {
		t.Errorf("Content = %q, want %q", got.Content, "v2")
	}
}

func TestStore_ReplaceIsAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	if err := s.Replace(ctx, []staticpages.ProducedPage{{Name: "index.html", Content: "kept"}}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	// Duplicate primary keys fail the second insert and roll back the delete.
	err := s.Replace(ctx, []staticpages.ProducedPage{
		{Name: "dup.html", Content: "a"},
		{Name: "dup.html", Content: "b"},
	})
	if err == nil {
		t.Fatal("expected error for duplicate paths")
	}

	got, err := s.Lookup(ctx, "index.html")
	if err != nil {
		t.Fatalf("Lookup() after failed Replace error = %v", err)
	}
	if got.Content != "kept" {
		t.Errorf("Content = %q, want %q", got.Content, "kept")
	}
}

func TestStore_ContentWithQuotesAndDollars(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTestStore(t)

	content := "<script>const a = 'it''s'; const b = `$x`;</script>"
	if err := s.Replace(ctx, []staticpages.ProducedPage{{Name: "index.html", Content: content}}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	got, err := s.Lookup(ctx, "index.html")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got.Content != content {
		t.Errorf("Content = %q, want %q", got.Content, content)
	}
}
