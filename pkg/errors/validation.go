package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePatternName validates a catalog pattern name.
// Pattern names are free text ("Square Grid Pattern") but must be non-empty,
// reasonably short and free of control characters.
func ValidatePatternName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "pattern name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "pattern name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "pattern name contains invalid control characters")
		}
	}

	return nil
}

// wallNameRegex matches wall identifiers such as "east" or "bathroom-floor".
var wallNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateWallName validates a wall identifier used as a store and cache key.
func ValidateWallName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "wall name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "wall name too long (max 64 characters)")
	}

	if !wallNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid wall name: %q (lowercase letters, digits, - and _)", name)
	}

	return nil
}

// ValidatePath validates a relative file path referenced from a project file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
