package main

import (
	"context"
	"fmt"

	"github.com/capreq/staticpages/internal/config"
	"github.com/capreq/staticpages/internal/hints"
	"github.com/capreq/staticpages/internal/preview"
)

// runPreviewCmd parses flags and runs preview.
func runPreviewCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return parseError(err)
	}
	if err := noPositionalArgs(positional); err != nil {
		return err
	}
	return runPreview(ctx, flags, env)
}

// runPreview builds every page, loads them into a static_pages table and
// serves them until ctx is cancelled.
func runPreview(ctx context.Context, flags *previewFlags, env *Environment) error {
	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	if err := validateWorkers(flags.site.workers); err != nil {
		return err
	}

	cfg, err := resolveConfig(flags.common, flags.site, env, logger, func(c *config.Config) {
		mergePreviewFlags(flags, c)
	})
	if err != nil {
		return err
	}

	_, pages, err := buildPages(ctx, cfg, flags.diagnose, logger)
	if err != nil {
		return err
	}

	store, err := preview.Open(ctx, cfg.Preview.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Replace(ctx, pages); err != nil {
		return err
	}
	logger.Info("pages loaded", "db", cfg.Preview.DB, "pages", len(pages))

	handler := preview.NewHandler(store, cfg.Site.Route, logger)
	if err := preview.Serve(ctx, cfg.Preview.Addr, handler, logger); err != nil {
		return fmt.Errorf("%w%s", err, hints.ForListen(cfg.Preview.Addr))
	}
	return nil
}

// mergePreviewFlags applies preview-only flags over cfg.
func mergePreviewFlags(flags *previewFlags, cfg *config.Config) {
	if flags.addr != "" {
		cfg.Preview.Addr = flags.addr
	}
	if flags.db != "" {
		cfg.Preview.DB = flags.db
	}
}
