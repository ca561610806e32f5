package main

import (
	"path/filepath"
)

// canonicalPath resolves a path to its absolute, symlink-resolved form,
// used only to test file identity. If resolution fails the absolute form is
// used as-is so a broken entry still dedupes against itself.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs
	}
	return resolved
}

// aggregateFiles merges per-directory scan results (already sorted, in
// directory order) with the explicitly listed files, keeping the first
// occurrence of each canonical path. The output preserves first-seen order;
// it is not re-sorted across the merged set.
func aggregateFiles(perDirectory [][]string, listed []string) []string {
	seen := make(map[string]bool)
	var unique []string

	add := func(path string) {
		resolved := canonicalPath(path)
		if seen[resolved] {
			return
		}
		seen[resolved] = true
		unique = append(unique, path)
	}

	for _, files := range perDirectory {
		for _, path := range files {
			add(path)
		}
	}
	for _, path := range listed {
		add(path)
	}

	return unique
}
