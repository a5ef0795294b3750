package staticpages

import (
	"fmt"
	"strings"
)

// Default deployment values. The anon key is the public client key of the
// production project; it is already shipped to every browser that loads a page.
const (
	DefaultSupabaseURL = "https://oandzthkyemwojhebqwc.supabase.co"
	DefaultAnonKey     = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJpc3MiOiJzdXBhYmFzZSIsInJlZiI6Im9hbmR6dGhreWVtd29qaGVicXdjIiwi" +
		"cm9sZSI6ImFub24iLCJpYXQiOjE3NzExMDgwNzUsImV4cCI6MjA4NjY4NDA3NX0." +
		"v7hwYm4a-b1aiWj04cCQY2WT9v08FEqvioFU3BG7nus"

	DefaultStylesheet   = "style.css"
	DefaultConfigScript = "config.js"
	DefaultRoute        = "www"
	DefaultBucket       = "www"
)

// storagePublicPath is the object storage prefix for public buckets.
const storagePublicPath = "/storage/v1/object/public/"

// Credentials are the deployment values inlined into every page.
type Credentials struct {
	URL     string // Storage endpoint base URL, e.g. https://<ref>.supabase.co
	AnonKey string // Public access token
}

// Site describes the fixed set of pages and the deployment they target.
// Pages order is significant: it is the order of INSERT statements.
type Site struct {
	Pages        []string // Ordered page enumeration
	Stylesheet   string   // Shared stylesheet file name
	ConfigScript string   // Local configuration script replaced by inline credentials
	Route        string   // Dynamic route serving pages, e.g. "www"
	Bucket       string   // Public storage bucket holding images
	Images       []string // Image assets redirected to storage
	IDLinkPages  []string // Pages whose "?id=" links move to the hash fragment
	Credentials  Credentials
}

// DefaultPages returns the production page enumeration.
func DefaultPages() []string {
	return []string{
		"index.html",
		"detail.html",
		"new.html",
		"confirm.html",
		"queue.html",
		"analytics.html",
	}
}

// DefaultSite returns the production site description.
func DefaultSite() Site {
	return Site{
		Pages:        DefaultPages(),
		Stylesheet:   DefaultStylesheet,
		ConfigScript: DefaultConfigScript,
		Route:        DefaultRoute,
		Bucket:       DefaultBucket,
		Images:       []string{"capreq-icon.png"},
		IDLinkPages:  []string{"detail.html", "confirm.html"},
		Credentials: Credentials{
			URL:     DefaultSupabaseURL,
			AnonKey: DefaultAnonKey,
		},
	}
}

// StorageBase returns the absolute URL images are served from.
func (s Site) StorageBase() string {
	return strings.TrimRight(s.Credentials.URL, "/") + storagePublicPath + s.Bucket
}

// Validate checks that the site can be transformed and emitted.
func (s Site) Validate() error {
	if len(s.Pages) == 0 {
		return fmt.Errorf("%w: page list is empty", ErrInvalidSite)
	}

	seen := make(map[string]bool, len(s.Pages))
	for _, page := range s.Pages {
		if err := validateFileName("page", page); err != nil {
			return err
		}
		if seen[page] {
			return fmt.Errorf("%w: duplicate page %q", ErrInvalidSite, page)
		}
		seen[page] = true
	}

	for _, pair := range []struct{ field, value string }{
		{"stylesheet", s.Stylesheet},
		{"config script", s.ConfigScript},
	} {
		if err := validateFileName(pair.field, pair.value); err != nil {
			return err
		}
	}

	for _, img := range s.Images {
		if err := validateFileName("image", img); err != nil {
			return err
		}
	}

	for _, page := range s.IDLinkPages {
		if !seen[page] {
			return fmt.Errorf("%w: id link page %q is not in the page list", ErrInvalidSite, page)
		}
	}

	if s.Route == "" || strings.ContainsAny(s.Route, "?#\"' ") {
		return fmt.Errorf("%w: route %q", ErrInvalidSite, s.Route)
	}
	if s.Bucket == "" || strings.ContainsAny(s.Bucket, "/\"' ") {
		return fmt.Errorf("%w: bucket %q", ErrInvalidSite, s.Bucket)
	}
	if s.Credentials.URL == "" {
		return fmt.Errorf("%w: credentials url is empty", ErrInvalidSite)
	}
	if s.Credentials.AnonKey == "" {
		return fmt.Errorf("%w: credentials anon key is empty", ErrInvalidSite)
	}
	// Both values are embedded in single-quoted JS string literals.
	if strings.ContainsAny(s.Credentials.URL+s.Credentials.AnonKey, "'\\\n") {
		return fmt.Errorf("%w: credentials contain quote, backslash or newline", ErrInvalidSite)
	}

	return nil
}

// validateFileName rejects names that cannot appear in attribute values,
// SQL literals or relative paths.
func validateFileName(field, name string) error {
	if name == "" {
		return fmt.Errorf("%w: %s name is empty", ErrInvalidSite, field)
	}
	if strings.ContainsAny(name, "/\\\"'?# \x00") || name == "." || name == ".." {
		return fmt.Errorf("%w: %s name %q", ErrInvalidSite, field, name)
	}
	return nil
}
