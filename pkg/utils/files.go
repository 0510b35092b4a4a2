package utils

import (
	"path/filepath"
	"strings"
)

// Stem returns the file name of path without directory or extension,
// e.g. "examples/fib.ce" -> "fib".
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
