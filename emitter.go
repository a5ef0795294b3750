package staticpages

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Source supplies raw page and stylesheet text by file name.
// Implemented by assets.FilesystemLoader and by fstest.MapFS.
type Source interface {
	ReadFile(name string) ([]byte, error)
}

// Reporter receives each produced page after a successful build,
// in enumeration order. Used for diagnostics.
type Reporter func(ProducedPage)

// EmitterOption configures an Emitter.
type EmitterOption func(*emitterConfig)

// emitterConfig holds internal configuration for Emitter.
type emitterConfig struct {
	table       string
	delimiter   string
	preamble    []string
	preambleSet bool
	workers     int
	reporter    Reporter
}

// WithTable sets the target table name. Default: static_pages.
func WithTable(name string) EmitterOption {
	return func(c *emitterConfig) {
		c.table = name
	}
}

// WithDelimiter sets the dollar-quote tag wrapping page bodies. Default: $page$.
func WithDelimiter(tag string) EmitterOption {
	return func(c *emitterConfig) {
		c.delimiter = tag
	}
}

// WithPreamble replaces the leading comment block.
// Lines are prefixed with "-- " unless they already start with "--".
func WithPreamble(lines ...string) EmitterOption {
	return func(c *emitterConfig) {
		c.preamble = append([]string(nil), lines...)
		c.preambleSet = true
	}
}

// WithWorkers sets how many pages are transformed concurrently. Default: 1.
func WithWorkers(n int) EmitterOption {
	return func(c *emitterConfig) {
		c.workers = n
	}
}

// WithReporter registers a callback invoked once per produced page.
func WithReporter(r Reporter) EmitterOption {
	return func(c *emitterConfig) {
		c.reporter = r
	}
}

// Emitter builds the static pages migration for a site.
// Create with NewEmitter, then call Emit or EmitTo.
type Emitter struct {
	site        Site
	cfg         emitterConfig
	transformer pageTransformer
	migration   *migration
}

// NewEmitter creates an Emitter for site.
// Returns an error if the site or any option is invalid.
func NewEmitter(site Site, opts ...EmitterOption) (*Emitter, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}

	cfg := emitterConfig{
		table:     DefaultTable,
		delimiter: DefaultDelimiter,
		workers:   MinWorkers,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validateTable(cfg.table); err != nil {
		return nil, err
	}
	if err := validateDelimiter(cfg.delimiter); err != nil {
		return nil, err
	}
	if cfg.workers < MinWorkers {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, cfg.workers)
	}
	if !cfg.preambleSet {
		cfg.preamble = defaultPreamble(site, cfg.table)
	}

	t := NewTransformer(site)
	return &Emitter{
		site:        t.site,
		cfg:         cfg,
		transformer: t,
		migration: &migration{
			table:     cfg.table,
			delimiter: cfg.delimiter,
			preamble:  cfg.preamble,
		},
	}, nil
}

// Build reads the stylesheet once, then reads, transforms and checks every
// page. Any failure aborts the whole build and no pages are returned.
func (e *Emitter) Build(ctx context.Context, src Source) ([]ProducedPage, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := src.ReadFile(e.site.Stylesheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadStylesheet, e.site.Stylesheet, err)
	}
	css := string(raw)

	jobs := buildBatch(ctx, e.site.Pages, e.cfg.workers, func(_ context.Context, name string) (ProducedPage, error) {
		return e.buildPage(src, name, css)
	})

	// First failure in enumeration order wins, independent of scheduling.
	pages := make([]ProducedPage, 0, len(jobs))
	for _, job := range jobs {
		if job.err != nil {
			return nil, job.err
		}
		pages = append(pages, job.page)
	}

	if e.cfg.reporter != nil {
		for _, p := range pages {
			e.cfg.reporter(p)
		}
	}

	return pages, nil
}

// buildPage reads, transforms and checks a single page.
func (e *Emitter) buildPage(src Source, name, css string) (ProducedPage, error) {
	raw, err := src.ReadFile(name)
	if err != nil {
		return ProducedPage{}, fmt.Errorf("%w: %s: %w", ErrReadPage, name, err)
	}

	res := e.transformer.Transform(string(raw), css)
	if err := e.migration.checkDelimiter(name, res.Content); err != nil {
		return ProducedPage{}, err
	}

	return ProducedPage{Name: name, Content: res.Content, Matches: res.Matches}, nil
}

// Emit builds every page and returns the migration document.
// On error the document is empty: no partial migration is ever produced.
func (e *Emitter) Emit(ctx context.Context, src Source) (string, error) {
	var b strings.Builder
	if err := e.EmitTo(ctx, &b, src); err != nil {
		return "", err
	}
	return b.String(), nil
}

// EmitTo builds every page and writes the migration document to w.
// Nothing is written unless every page builds successfully.
func (e *Emitter) EmitTo(ctx context.Context, w io.Writer, src Source) error {
	pages, err := e.Build(ctx, src)
	if err != nil {
		return err
	}
	return e.Render(w, pages)
}

// Render writes the migration document for already built pages.
func (e *Emitter) Render(w io.Writer, pages []ProducedPage) error {
	return e.migration.write(w, pages)
}

// Site returns a copy of the emitter's site description.
func (e *Emitter) Site() Site {
	s := e.site
	s.Pages = append([]string(nil), s.Pages...)
	s.Images = append([]string(nil), s.Images...)
	s.IDLinkPages = append([]string(nil), s.IDLinkPages...)
	return s
}
