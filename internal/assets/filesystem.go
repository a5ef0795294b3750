package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/capreq/staticpages"
)

// Compile-time check that the loader can feed an Emitter.
var _ staticpages.Source = (*FilesystemLoader)(nil)

// FilesystemLoader reads site files from one directory.
type FilesystemLoader struct {
	dir string // Absolute, symlinks resolved
}

// NewFilesystemLoader creates a FilesystemLoader for dir.
// Returns ErrInvalidBasePath unless dir is a readable directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if realPath, err := filepath.EvalSymlinks(abs); err == nil {
		abs = realPath
	}

	// ReadDir fails for missing paths, regular files and unreadable directories.
	if _, err := os.ReadDir(abs); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidBasePath, abs, err)
	}

	return &FilesystemLoader{dir: abs}, nil
}

// ReadFile returns the content of dir/name.
func (l *FilesystemLoader) ReadFile(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	path, err := l.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path confined to dir by resolve
	if err != nil {
		return nil, readError(name, err)
	}
	return data, nil
}

// BasePath returns the resolved absolute directory files are read from.
func (l *FilesystemLoader) BasePath() string {
	return l.dir
}

// resolve joins name to dir and follows symlinks. A target outside dir is
// rejected; a missing target is returned as is so the read reports it.
func (l *FilesystemLoader) resolve(name string) (string, error) {
	path := filepath.Join(l.dir, name)

	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path, nil
	}

	rel, err := filepath.Rel(l.dir, realPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s resolves outside %s", ErrPathTraversal, name, l.dir)
	}
	return realPath, nil
}
