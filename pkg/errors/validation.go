package errors

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// MinOrder is the smallest polygonal order (triangular numbers).
const MinOrder = 3

// ValidateOrder checks the polygonal order k.
func ValidateOrder(k int) error {
	if k < MinOrder {
		return New(ErrCodeInvalidParameter, "k must be >= %d, got %d", MinOrder, k)
	}
	return nil
}

// ValidateRows checks a requested row count against an upper bound.
// A max of 0 disables the upper bound.
func ValidateRows(n, max int) error {
	if n < 1 {
		return New(ErrCodeInvalidParameter, "n must be >= 1, got %d", n)
	}
	if max > 0 && n > max {
		return New(ErrCodeInvalidParameter, "n must be <= %d, got %d", max, n)
	}
	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Path cannot name a directory
//   - The parent directory must exist
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q is a directory", path)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return New(ErrCodeInvalidPath, "output path %q is a directory", path)
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "output directory %q", dir)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "output directory %q is not a directory", dir)
	}
	return nil
}
