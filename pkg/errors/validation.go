package errors

import (
	"strings"
	"unicode"
)

// maxElementLength bounds element names read from or written to text files.
const maxElementLength = 256

// ValidateElement validates an element name for the text-based tree formats.
// The leaf-path format quotes each element with double quotes and separates
// fields with whitespace, so names carrying either cannot round-trip.
//
// The validation rules:
//   - No empty names
//   - No control characters or whitespace
//   - No double quotes
//   - Maximum length of 256 characters
func ValidateElement(name string) error {
	if name == "" {
		return New(ErrCodeInvalidElement, "element name cannot be empty")
	}

	if len(name) > maxElementLength {
		return New(ErrCodeInvalidElement, "element name too long (max %d characters)", maxElementLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidElement, "element %q contains control characters", name)
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidElement, "element %q contains whitespace", name)
		}
	}

	if strings.Contains(name, `"`) {
		return New(ErrCodeInvalidElement, "element %q contains a double quote", name)
	}

	return nil
}

// ValidatePath validates a user-supplied file path before it is opened.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
