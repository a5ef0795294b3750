package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/capreq/staticpages"
	"github.com/capreq/staticpages/internal/assets"
	"github.com/capreq/staticpages/internal/config"
	"github.com/capreq/staticpages/internal/fileutil"
	"github.com/capreq/staticpages/internal/hints"
	"github.com/capreq/staticpages/internal/linkaudit"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrWriteOutput = errors.New("failed to write migration")
)

// defaultCommand runs when no command name is given.
const defaultCommand = "generate"

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()
	return runCommand(ctx, args, env)
}

// runCommand is runMain with an explicit context.
func runCommand(ctx context.Context, args []string, env *Environment) int {
	cmd, rest := splitCommand(args)

	var err error
	switch cmd {
	case "generate":
		err = runGenerateCmd(ctx, rest, env)
	case "preview":
		err = runPreviewCmd(ctx, rest, env)
	case "config":
		err = runConfigCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "staticpages %s\n", Version)
	case "help":
		runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	}
	return exitCodeFor(err)
}

// splitCommand separates the command name from its arguments.
// Invocation without a command, or starting with a flag, runs generate.
func splitCommand(args []string) (string, []string) {
	if len(args) < 2 {
		return defaultCommand, nil
	}
	rest := args[1:]
	if strings.HasPrefix(rest[0], "-") {
		return defaultCommand, rest
	}
	return rest[0], rest[1:]
}

// parseError converts a flag parsing error into a usage error.
// Returns nil for -h/--help, which pflag has already answered.
func parseError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// noPositionalArgs rejects stray arguments.
func noPositionalArgs(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, args[0])
	}
	return nil
}

// resolveConfig loads the effective configuration.
// Priority: CLI flags > env vars > config file > defaults.
// Command-specific overrides run after the shared flags, before validation.
func resolveConfig(common commonFlags, site siteFlags, env *Environment, logger *slog.Logger, overrides ...func(*config.Config)) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Environ(), logger)

	configName := common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(triedPaths(err)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
		logger.Debug("config loaded", "source", configName)
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(site, cfg)
	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// triedPaths extracts the searched locations from a config-not-found error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}

// mergeFlags applies explicitly set CLI flags over cfg.
func mergeFlags(f siteFlags, cfg *config.Config) {
	if f.dir != "" {
		cfg.Site.Dir = f.dir
	}
	if f.workers > 0 {
		cfg.Migration.Workers = f.workers
	}
	if f.table != "" {
		cfg.Migration.Table = f.table
	}
	if f.delimiter != "" {
		cfg.Migration.Delimiter = f.delimiter
	}
}

// validateWorkers rejects negative worker counts given on the command line.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: --workers must be >= 0, got %d", ErrUsage, n)
	}
	return nil
}

// buildPages reads and transforms every configured page.
// Returns the emitter so callers can render the migration.
func buildPages(ctx context.Context, cfg *config.Config, diagnose bool, logger *slog.Logger) (*staticpages.Emitter, []staticpages.ProducedPage, error) {
	src, err := assets.NewFilesystemLoader(cfg.Site.Dir)
	if err != nil {
		if !fileutil.DirExists(cfg.Site.Dir) {
			return nil, nil, fmt.Errorf("%w%s", err, hints.ForMissingPage(cfg.Site.Dir, ""))
		}
		return nil, nil, err
	}

	workers := staticpages.ResolveWorkers(cfg.Migration.Workers)
	logger.Debug("building pages", "dir", src.BasePath(), "pages", len(cfg.Site.Pages), "workers", workers)

	em, err := staticpages.NewEmitter(cfg.ToSite(),
		staticpages.WithTable(cfg.Migration.Table),
		staticpages.WithDelimiter(cfg.Migration.Delimiter),
		staticpages.WithWorkers(workers),
		staticpages.WithReporter(diagnosticReporter(logger, diagnose, linkaudit.New(cfg.Site.Route))),
	)
	if err != nil {
		return nil, nil, err
	}

	pages, err := em.Build(ctx, src)
	if err != nil {
		return nil, nil, withBuildHint(err, cfg)
	}
	return em, pages, nil
}

// withBuildHint appends an actionable hint to page build errors.
func withBuildHint(err error, cfg *config.Config) error {
	var hint string
	switch {
	case errors.Is(err, staticpages.ErrDelimiterCollision):
		hint = hints.ForDelimiterCollision(cfg.Migration.Delimiter)
	case errors.Is(err, staticpages.ErrReadStylesheet):
		hint = hints.ForMissingPage(cfg.Site.Dir, cfg.Site.Stylesheet)
	case errors.Is(err, staticpages.ErrReadPage):
		hint = hints.ForMissingPage(cfg.Site.Dir, failedPage(err, cfg.Site.Pages))
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// failedPage returns the first page named in err's message.
func failedPage(err error, pages []string) string {
	msg := err.Error()
	for _, p := range pages {
		if strings.Contains(msg, p) {
			return p
		}
	}
	return ""
}

// diagnosticReporter logs per-page rule statistics.
// With diagnose, every rule that matched nothing on a page is a warning, and
// so is every relative reference the audit finds.
func diagnosticReporter(logger *slog.Logger, diagnose bool, audit *linkaudit.Auditor) staticpages.Reporter {
	return func(p staticpages.ProducedPage) {
		total := 0
		for _, m := range p.Matches {
			total += m.Count
			if diagnose && m.Count == 0 {
				logger.Warn("rule matched nothing", "page", p.Name, "rule", m.Rule)
			}
		}
		logger.Debug("page transformed", "page", p.Name, "replacements", total, "bytes", len(p.Content))

		if !diagnose {
			return
		}
		refs, err := audit.Audit(p.Content)
		if err != nil {
			logger.Warn("link audit failed", "page", p.Name, "error", err)
			return
		}
		for _, ref := range refs {
			logger.Warn("relative reference not rewritten",
				"page", p.Name, "element", ref.Element, "attr", ref.Attr, "value", ref.Value)
		}
	}
}
