package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// globPatterns converts the extension tokens into doublestar patterns,
// matched against the slash-form path relative to the scan root. The "any"
// sentinel matches every file regardless of extension.
func globPatterns(extensions []string) []string {
	for _, ext := range extensions {
		if ext == "any" {
			return []string{"**/*"}
		}
	}
	patterns := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		patterns = append(patterns, "**/*"+ext)
	}
	return patterns
}

func matchesAnyGlob(patterns []string, relPath string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// hasHiddenSegment reports whether any segment of the slash-form relative
// path starts with a dot. Files inside hidden directories count as hidden.
func hasHiddenSegment(relPath string) bool {
	for _, part := range strings.Split(relPath, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// selectFiles walks dir recursively and returns the regular files matching
// any of the extension patterns, sorted lexicographically by path string.
// Walk failures are not retried: the directories were validated before the
// pipeline ran, so a mid-scan failure is unexpected and fatal.
func selectFiles(dir string, extensions []string, includeHidden bool, excludes *ignore.GitIgnore) ([]string, error) {
	patterns := globPatterns(extensions)

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if !includeHidden && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if excludes != nil && excludes.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			// Follow symlinks: a link to a regular file still counts.
			info, statErr := os.Stat(path)
			if statErr != nil || !info.Mode().IsRegular() {
				return nil
			}
		}
		if !includeHidden && hasHiddenSegment(rel) {
			return nil
		}
		if excludes != nil && excludes.MatchesPath(rel) {
			return nil
		}
		if matchesAnyGlob(patterns, rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}
