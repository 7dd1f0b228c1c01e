package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// MaxExpressionLength bounds the raw input accepted from untrusted callers.
const MaxExpressionLength = 4096

// ValidateExpressionInput validates raw expression text received over the API.
// It does not parse the expression; it rejects input that could never be a
// single line of boolean algebra.
//
// Validation rules:
//   - No empty input
//   - Maximum length of MaxExpressionLength bytes
//   - No control characters other than tabs
//   - No line breaks (the input is a single line)
func ValidateExpressionInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return New(ErrCodeEmptyExpression, "expression cannot be empty")
	}

	if len(input) > MaxExpressionLength {
		return New(ErrCodeInvalidInput, "expression too long (max %d characters)", MaxExpressionLength)
	}

	col := 0
	for _, r := range input {
		col++
		if r == '\n' || r == '\r' {
			return At(ErrCodeInvalidInput, col, "expression must be a single line")
		}
		if r != '\t' && unicode.IsControl(r) {
			return At(ErrCodeInvalidInput, col, "expression contains invalid control characters")
		}
	}

	return nil
}

// ValidateRecordID validates a render record identifier (a UUID).
func ValidateRecordID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "record id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid record id %q", id)
	}
	return nil
}

// ValidateOutputPath validates an output path supplied on the command line.
// It rejects empty names and names ending in a path separator.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidInput, "output path %q names a directory", path)
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}
	return nil
}
