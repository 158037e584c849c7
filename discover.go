package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// discoverDumps resolves configured journal dump patterns to concrete
// files, honoring exclusion patterns.
func discoverDumps(patterns, exclude []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if excluded(m, exclude) {
				continue
			}
			files = append(files, m)
		}
	}
	return files, nil
}

func excluded(path string, patterns []string) bool {
	for _, p := range patterns {
		ok, err := doublestar.Match(p, path)
		if err == nil && ok {
			return true
		}
	}
	return false
}
