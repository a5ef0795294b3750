package assets

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors for asset operations.
var (
	// ErrAssetNotFound indicates the requested file does not exist.
	// Errors wrapping it also wrap fs.ErrNotExist.
	ErrAssetNotFound = errors.New("asset not found")

	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("path traversal detected")
)

// readError classifies an os.ReadFile failure for name.
func readError(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q: %w", ErrAssetNotFound, name, fs.ErrNotExist)
	}
	return fmt.Errorf("%w: %q: %v", ErrAssetRead, name, err)
}
