package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/ctc/internal/types"
)

// globWildcardCharacters are the characters that mark an entry as a glob pattern
// rather than an explicit file path.
const globWildcardCharacters = "*?[]"

// errorPathOutsideRootFormat reports an absolute explicit path that cannot be
// expressed relative to the project root.
const errorPathOutsideRootFormat = "absolute path '%s' is outside the project root %s"

// ClassifyEntry determines whether a raw entry is a glob include pattern or an
// explicit file path. Entries containing any wildcard character are patterns;
// everything else names a single file verbatim.
func ClassifyEntry(entry string) types.EntryKind {
	if strings.ContainsAny(entry, globWildcardCharacters) {
		return types.EntryKindPattern
	}
	return types.EntryKindExplicitPath
}

// NormalizeEntry trims surrounding whitespace and converts path separators to
// forward slashes so that stored entries compare consistently across
// platforms. Explicit paths are additionally cleaned of redundant "./"
// segments, and absolute explicit paths are relativized against the project
// root; an absolute path outside the root is an error so that it is rejected
// at add time rather than stored as a permanently dead entry.
func NormalizeEntry(entry string, kind types.EntryKind, projectRoot string) (string, error) {
	normalized := strings.TrimSpace(entry)
	if kind != types.EntryKindExplicitPath || normalized == "" {
		return filepath.ToSlash(normalized), nil
	}
	normalized = filepath.Clean(normalized)
	if filepath.IsAbs(normalized) {
		relativePath, relativeError := filepath.Rel(projectRoot, normalized)
		if relativeError != nil || relativePath == ".." || strings.HasPrefix(relativePath, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf(errorPathOutsideRootFormat, normalized, projectRoot)
		}
		normalized = relativePath
	}
	return filepath.ToSlash(normalized), nil
}
