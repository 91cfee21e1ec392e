package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/conorfennell/cardtally/internal/domain"
)

// deckPattern is tried inside a directory given as an import path.
const deckPattern = "*.txt"

// resolveImportPath turns a user supplied name into a readable deck file.
// A relative name is looked up in baseDir first (when set) and then as
// given. A directory resolves to its first deck file in name order, and
// a name containing glob characters resolves to its first regular match.
func resolveImportPath(name, baseDir string) (string, error) {
	candidates := []string{name}
	if baseDir != "" && !filepath.IsAbs(name) {
		candidates = []string{filepath.Join(baseDir, name), name}
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		switch {
		case err == nil && info.Mode().IsRegular():
			return candidate, nil
		case err == nil && info.IsDir():
			if path, ok := firstMatch(filepath.Join(candidate, deckPattern)); ok {
				return path, nil
			}
		case strings.ContainsAny(candidate, "*?["):
			if path, ok := firstMatch(candidate); ok {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("%s: %w", name, domain.ErrFileNotFound)
}

func firstMatch(pattern string) (string, bool) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", false
	}
	sort.Strings(matches)
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			return m, true
		}
	}
	return "", false
}
