package main

import (
	"errors"
	"os"

	"github.com/capreq/staticpages"
	"github.com/capreq/staticpages/internal/assets"
	"github.com/capreq/staticpages/internal/config"
)

// Exit codes for the staticpages CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Migration written or command completed
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, config, or validation
	ExitIO        = 3 // Missing pages, unreadable directory, output write
	ExitCollision = 4 // Produced page contains the quoting delimiter
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Delimiter collision (exit 4)
	if errors.Is(err, staticpages.ErrDelimiterCollision) {
		return ExitCollision
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, staticpages.ErrReadPage) ||
		errors.Is(err, staticpages.ErrReadStylesheet) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, staticpages.ErrInvalidSite) ||
		errors.Is(err, staticpages.ErrInvalidDelimiter) ||
		errors.Is(err, staticpages.ErrInvalidTable) ||
		errors.Is(err, staticpages.ErrInvalidWorkers) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
