package assets

import (
	"fmt"
	"strings"
)

// checkName accepts bare, non-hidden file names only.
func checkName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, "/\\\x00"), strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
