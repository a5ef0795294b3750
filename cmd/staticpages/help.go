package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: staticpages [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Generate the static pages migration (default)")
	fmt.Fprintln(w, "  preview    Serve generated pages locally")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'staticpages help <command>' for details on a specific command.")
}

// printSiteFlags prints flags shared by generate, preview and config.
func printSiteFlags(w io.Writer) {
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -d, --dir <path>          Directory holding the pages (default: www)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Migration:")
	fmt.Fprintln(w, "      --table <name>        Target table (default: static_pages)")
	fmt.Fprintln(w, "      --delimiter <tag>     Dollar-quote tag (default: $page$)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  STATICPAGES_CONFIG, STATICPAGES_DIR, STATICPAGES_SUPABASE_URL,")
	fmt.Fprintln(w, "  STATICPAGES_ANON_KEY, STATICPAGES_WORKERS")
	fmt.Fprintln(w)
}

// printOutputControl prints logging flags.
func printOutputControl(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --diagnose            Warn about unmatched rules and relative links")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logging")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: staticpages generate [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Transform every page and print a SQL migration that replaces the")
	fmt.Fprintln(w, "static_pages table contents.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Write to a file instead of stdout")
	fmt.Fprintln(w)
	printOutputControl(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: staticpages preview [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Load generated pages into a SQLite static_pages table and serve them")
	fmt.Fprintln(w, "at /www?page=<name>.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default: 127.0.0.1:8080)")
	fmt.Fprintln(w, "      --db <path>           SQLite database (default: :memory:)")
	fmt.Fprintln(w)
	printOutputControl(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: staticpages config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration after applying the config file,")
	fmt.Fprintln(w, "environment variables and flags.")
	fmt.Fprintln(w)
	printSiteFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: staticpages version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: staticpages help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
