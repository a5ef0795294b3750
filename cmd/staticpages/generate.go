package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/capreq/staticpages/internal/fileutil"
	"github.com/capreq/staticpages/internal/hints"
)

// outputPermissions is rw-r--r-- for written migrations.
const outputPermissions = 0o644

// runGenerateCmd parses flags and runs generate.
func runGenerateCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return parseError(err)
	}
	if err := noPositionalArgs(positional); err != nil {
		return err
	}
	return runGenerate(ctx, flags, env)
}

// runGenerate builds every page and writes the migration to stdout or --output.
// Nothing is written if any page fails.
func runGenerate(ctx context.Context, flags *generateFlags, env *Environment) error {
	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	if err := validateWorkers(flags.site.workers); err != nil {
		return err
	}

	cfg, err := resolveConfig(flags.common, flags.site, env, logger)
	if err != nil {
		return err
	}

	em, pages, err := buildPages(ctx, cfg, flags.diagnose, logger)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := em.Render(&buf, pages); err != nil {
		return err
	}

	if flags.output == "" {
		if _, err := env.Stdout.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		logger.Info("migration generated", "pages", len(pages), "bytes", buf.Len())
		return nil
	}

	if err := fileutil.WriteFileAtomic(flags.output, buf.Bytes(), outputPermissions); err != nil {
		return fmt.Errorf("%w: %s: %w%s", ErrWriteOutput, flags.output, err, hints.ForOutputFile())
	}
	logger.Info("migration written", "path", flags.output, "pages", len(pages), "bytes", buf.Len())
	return nil
}
