package main

import (
	ignore "github.com/sabhiram/go-gitignore"
)

// Config holds everything one pcat invocation needs. It is built once by the
// CLI layer, after validation, and never mutated afterwards.
type Config struct {
	Directories     []string
	Extensions      []string
	ListedFiles     []string
	IncludeHidden   bool
	WithPaths       bool
	WithLineNumbers bool
	ListOnly        bool

	// Excludes is an optional matcher compiled from --exclude-from files.
	// A nil matcher excludes nothing.
	Excludes *ignore.GitIgnore
}
