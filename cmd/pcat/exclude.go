package main

import (
	"fmt"
	"os"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// buildExcludeMatcher compiles the patterns of every --exclude-from file
// into a single matcher with full .gitignore semantics. Returns nil when no
// files were given.
func buildExcludeMatcher(paths []string) (*ignore.GitIgnore, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	var lines []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read exclude file %s: %w", path, err)
		}
		lines = append(lines, strings.Split(string(data), "\n")...)
	}

	return ignore.CompileIgnoreLines(lines...), nil
}
