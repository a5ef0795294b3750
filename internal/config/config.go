package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/capreq/staticpages"
	"github.com/capreq/staticpages/internal/fileutil"
	"github.com/capreq/staticpages/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096 // Directory and database paths
	MaxFileNameLength  = 255  // Page, stylesheet and image names
	MaxURLLength       = 2048 // Browser limit
	MaxKeyLength       = 4096 // JWT anon keys are a few hundred bytes
	MaxNameLength      = 63   // Route, bucket, table (PostgreSQL identifier limit)
	MaxDelimiterLength = 64   // $tag$
	MaxAddrLength      = 255  // host:port
	MaxPages           = 256  // Page enumeration size
	MaxWorkers         = 64   // Explicit worker count
)

// appDirName is the directory searched under the user config dir.
const appDirName = "staticpages"

// Config holds all configuration for migration generation and preview.
type Config struct {
	Site        SiteConfig        `yaml:"site"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Migration   MigrationConfig   `yaml:"migration"`
	Preview     PreviewConfig     `yaml:"preview"`
}

// SiteConfig defines the page set and its marker file names.
type SiteConfig struct {
	Dir          string   `yaml:"dir"`          // Directory holding pages (default: www)
	Pages        []string `yaml:"pages"`        // Ordered page enumeration
	Stylesheet   string   `yaml:"stylesheet"`   // Shared stylesheet (default: style.css)
	ConfigScript string   `yaml:"configScript"` // Local config script (default: config.js)
	Route        string   `yaml:"route"`        // Dynamic route (default: www)
	Bucket       string   `yaml:"bucket"`       // Public storage bucket (default: www)
	Images       []string `yaml:"images"`       // Images redirected to storage
	IDLinkPages  []string `yaml:"idLinkPages"`  // Pages whose ?id= links move to the hash
}

// CredentialsConfig defines the deployment values inlined into pages.
type CredentialsConfig struct {
	URL     string `yaml:"url"`
	AnonKey string `yaml:"anonKey"`
}

// MigrationConfig defines SQL output options.
type MigrationConfig struct {
	Table     string `yaml:"table"`     // Target table (default: static_pages)
	Delimiter string `yaml:"delimiter"` // Dollar-quote tag (default: $page$)
	Workers   int    `yaml:"workers"`   // 0 = auto
}

// PreviewConfig defines the local preview server options.
type PreviewConfig struct {
	Addr string `yaml:"addr"` // Listen address (default: 127.0.0.1:8080)
	DB   string `yaml:"db"`   // SQLite path (default: :memory:)
}

// Preview defaults.
const (
	DefaultDir         = "www"
	DefaultPreviewAddr = "127.0.0.1:8080"
	DefaultPreviewDB   = ":memory:"
)

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("site.dir", c.Site.Dir, MaxPathLength); err != nil {
		return err
	}
	if len(c.Site.Pages) > MaxPages {
		return fmt.Errorf("%w: site.pages (%d entries, max %d)", ErrFieldTooLong, len(c.Site.Pages), MaxPages)
	}
	for i, page := range c.Site.Pages {
		if err := validateFieldLength(fmt.Sprintf("site.pages[%d]", i), page, MaxFileNameLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("site.stylesheet", c.Site.Stylesheet, MaxFileNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.configScript", c.Site.ConfigScript, MaxFileNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.route", c.Site.Route, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.bucket", c.Site.Bucket, MaxNameLength); err != nil {
		return err
	}
	for i, img := range c.Site.Images {
		if err := validateFieldLength(fmt.Sprintf("site.images[%d]", i), img, MaxFileNameLength); err != nil {
			return err
		}
	}
	for i, page := range c.Site.IDLinkPages {
		if err := validateFieldLength(fmt.Sprintf("site.idLinkPages[%d]", i), page, MaxFileNameLength); err != nil {
			return err
		}
	}

	// Validate credentials
	if err := validateFieldLength("credentials.url", c.Credentials.URL, MaxURLLength); err != nil {
		return err
	}
	if c.Credentials.URL != "" && !fileutil.IsURL(c.Credentials.URL) {
		return fmt.Errorf("%w: credentials.url must start with http:// or https://, got %q", ErrInvalidField, c.Credentials.URL)
	}
	if err := validateFieldLength("credentials.anonKey", c.Credentials.AnonKey, MaxKeyLength); err != nil {
		return err
	}

	// Validate migration fields
	if err := validateFieldLength("migration.table", c.Migration.Table, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("migration.delimiter", c.Migration.Delimiter, MaxDelimiterLength); err != nil {
		return err
	}
	if c.Migration.Workers < 0 || c.Migration.Workers > MaxWorkers {
		return fmt.Errorf("%w: migration.workers must be between 0 and %d, got %d", ErrInvalidField, MaxWorkers, c.Migration.Workers)
	}

	// Validate preview fields
	if err := validateFieldLength("preview.addr", c.Preview.Addr, MaxAddrLength); err != nil {
		return err
	}
	if err := validateFieldLength("preview.db", c.Preview.DB, MaxPathLength); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the production configuration.
func DefaultConfig() *Config {
	site := staticpages.DefaultSite()
	return &Config{
		Site: SiteConfig{
			Dir:          DefaultDir,
			Pages:        site.Pages,
			Stylesheet:   site.Stylesheet,
			ConfigScript: site.ConfigScript,
			Route:        site.Route,
			Bucket:       site.Bucket,
			Images:       site.Images,
			IDLinkPages:  site.IDLinkPages,
		},
		Credentials: CredentialsConfig{
			URL:     site.Credentials.URL,
			AnonKey: site.Credentials.AnonKey,
		},
		Migration: MigrationConfig{
			Table:     staticpages.DefaultTable,
			Delimiter: staticpages.DefaultDelimiter,
		},
		Preview: PreviewConfig{
			Addr: DefaultPreviewAddr,
			DB:   DefaultPreviewDB,
		},
	}
}

// ToSite converts the site and credentials sections to a staticpages.Site.
func (c *Config) ToSite() staticpages.Site {
	return staticpages.Site{
		Pages:        append([]string(nil), c.Site.Pages...),
		Stylesheet:   c.Site.Stylesheet,
		ConfigScript: c.Site.ConfigScript,
		Route:        c.Site.Route,
		Bucket:       c.Site.Bucket,
		Images:       append([]string(nil), c.Site.Images...),
		IDLinkPages:  append([]string(nil), c.Site.IDLinkPages...),
		Credentials: staticpages.Credentials{
			URL:     c.Credentials.URL,
			AnonKey: c.Credentials.AnonKey,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yamlutil.Marshal(cfg)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/staticpages/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
