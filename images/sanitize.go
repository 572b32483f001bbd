package images

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	forbiddenChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// SafeName turns an arbitrary product title into a filesystem-safe path
// segment: forbidden characters become underscores, whitespace runs collapse
// to one space, and the result is trimmed and capped at 100 runes.
func SafeName(name string) string {
	name = forbiddenChars.ReplaceAllString(name, "_")
	name = whitespaceRuns.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	runes := []rune(name)
	if len(runes) > 100 {
		name = string(runes[:100])
	}
	return name
}

// UniqueFolder returns a folder name under parent that did not exist at call
// time, appending " (2)", " (3)", ... until free, and creates the directory.
// Check-then-create is not atomic; callers are sequential by design.
func UniqueFolder(parent, base string) (string, string, error) {
	name := base
	path := filepath.Join(parent, name)
	for counter := 2; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		name = fmt.Sprintf("%s (%d)", base, counter)
		path = filepath.Join(parent, name)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", "", fmt.Errorf("create folder %q: %w", path, err)
	}
	return path, name, nil
}
