package paths

import (
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

// ValidatePath rejects empty paths, null bytes and paths over 4096 bytes.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Check path length (common filesystem limit)
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ValidateName ensures a category or file name is a single path element.
// Names must:
// - Not be empty
// - Not contain path separators
// - Not be reserved names (. or ..)
// - Not contain control characters
func ValidateName(kind, name string) error {
	if name == "" {
		return errors.Newf(errors.ErrInvalidInput, "%s name cannot be empty", kind)
	}

	if strings.ContainsAny(name, "/\\") {
		return errors.Newf(errors.ErrInvalidInput, "%s name %q cannot contain path separators", kind, name)
	}

	if name == "." || name == ".." {
		return errors.Newf(errors.ErrInvalidInput, "%s name cannot be '.' or '..'", kind)
	}

	for _, r := range name {
		if r < 32 {
			return errors.Newf(errors.ErrInvalidInput, "%s name %q contains control characters", kind, name)
		}
	}

	return nil
}
