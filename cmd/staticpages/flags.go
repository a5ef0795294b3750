package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds flags selecting the pages and how they are built.
type siteFlags struct {
	dir       string
	workers   int
	table     string
	delimiter string
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common   commonFlags
	site     siteFlags
	output   string
	diagnose bool
}

// previewFlags holds all flags for the preview command.
type previewFlags struct {
	common   commonFlags
	site     siteFlags
	addr     string
	db       string
	diagnose bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logging")
}

// addSiteFlags adds page source and migration flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVarP(&f.dir, "dir", "d", "", "directory holding the pages (default: www)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.table, "table", "", "target table (default: static_pages)")
	fs.StringVar(&f.delimiter, "delimiter", "", "dollar-quote tag (default: $page$)")
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string, stderr io.Writer) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &generateFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "write the migration to a file instead of stdout")
	fs.BoolVar(&f.diagnose, "diagnose", false, "report unmatched rules and relative links")

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)

	fs.Usage = func() { printGenerateUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parsePreviewFlags parses preview command flags and returns positional args.
func parsePreviewFlags(args []string, stderr io.Writer) (*previewFlags, []string, error) {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &previewFlags{}

	fs.StringVar(&f.addr, "addr", "", "listen address (default: 127.0.0.1:8080)")
	fs.StringVar(&f.db, "db", "", "SQLite database path (default: :memory:)")
	fs.BoolVar(&f.diagnose, "diagnose", false, "report unmatched rules and relative links")

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)

	fs.Usage = func() { printPreviewUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, stderr io.Writer) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &generateFlags{}

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)

	fs.Usage = func() { printConfigUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
