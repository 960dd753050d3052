package storage

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UniqueName returns "{uuid}_{base}{ext}" for the last path component of original.
func UniqueName(original string) string {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(original), "\\", "/"))
	if base == "." || base == ".." || base == "/" || base == "" {
		base = "file"
	}
	return uuid.NewString() + "_" + base
}
