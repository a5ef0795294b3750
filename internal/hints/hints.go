// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/capreq/staticpages/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/staticpages/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/staticpages) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/staticpages") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForMissingPage returns hints when a page or the stylesheet cannot be read.
// Distinguishes a missing pages directory from a missing file inside it.
func ForMissingPage(dir, name string) string {
	if !fileutil.DirExists(dir) {
		return format("directory " + dir + " does not exist; use --dir or set STATICPAGES_DIR")
	}
	return format("create " + filepath.Join(dir, name) + " or remove it from site.pages")
}

// ForDelimiterCollision returns a hint for pages containing the quoting tag.
func ForDelimiterCollision(delimiter string) string {
	alt := "$body$"
	if delimiter == alt {
		alt = "$html$"
	}
	return format("pick another tag with --delimiter " + alt)
}

// ForOutputFile returns hints for output file write errors.
func ForOutputFile() string {
	return format("check parent directory exists and is writable")
}

// ForListen returns hints for preview server listen errors.
// Inside containers a loopback address is unreachable from the host.
func ForListen(addr string) string {
	var hints []string

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return format("use --addr host:port, e.g. 127.0.0.1:8080")
	}

	if IsInContainer() && (host == "127.0.0.1" || host == "localhost") {
		hints = append(hints, "use --addr 0.0.0.0:8080 inside Docker")
	}
	if os.Getenv("PORT") != "" {
		hints = append(hints, "PORT is set; pass --addr :"+os.Getenv("PORT"))
	}
	hints = append(hints, "the port may already be in use")

	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
