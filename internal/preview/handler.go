package preview

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// DefaultPage is served when the page parameter is absent.
const DefaultPage = "index.html"

// NotFoundBody is the fixed response for unknown pages.
const NotFoundBody = `<!DOCTYPE html><html><head><title>404</title></head><body><h1>404 — Not Found</h1></body></html>`

// PageStore looks up stored pages by path.
type PageStore interface {
	Lookup(ctx context.Context, path string) (Page, error)
}

// NewHandler returns the preview router serving pages from store
// under the given route (e.g. "www").
func NewHandler(store PageStore, route string, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	prefix := "/" + route

	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, prefix, http.StatusFound)
	})

	r.Get(prefix, func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "" {
			page = DefaultPage
		}

		p, err := store.Lookup(r.Context(), page)
		if err != nil {
			if !errors.Is(err, ErrPageNotFound) {
				logger.Error("lookup failed", "page", page, "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			logger.Debug("page not found", "page", page)
			w.Header().Set("Content-Type", HTMLContentType)
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, NotFoundBody) //nolint:errcheck
			return
		}

		logger.Debug("serving page", "page", page, "bytes", len(p.Content))
		w.Header().Set("Content-Type", p.ContentType)
		io.WriteString(w, p.Content) //nolint:errcheck
	})

	return r
}
