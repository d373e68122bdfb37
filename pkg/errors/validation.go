package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateFilename validates a diagram output name (for example the name of a
// batch manifest entry) for safety. It must be a simple basename that can be
// combined with an output directory and a format extension.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 128 characters
//   - No path separators or control characters
//   - No hidden files (leading dot)
//   - Only letters, digits, '-', '_' and '.'
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidPath, "name too long (max 128 characters)")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "name cannot contain path separators")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "name contains invalid control characters")
		}
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "name cannot be a hidden file")
	}

	if !filenameRegex.MatchString(name) {
		return New(ErrCodeInvalidPath, "invalid name: %q", name)
	}

	return nil
}

var filenameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidatePath validates a relative output path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
