package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters test files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test files by the base name of each path.
// Patterns with wildcards ("test_*exchange*.py") use glob matching,
// anything else is a plain substring match.
func (f *Filter) FilterByName(files []string, pattern string) []string {
	if pattern == "" {
		return files
	}

	glob := strings.ContainsAny(pattern, "*?[")
	var filtered []string
	for _, file := range files {
		name := filepath.Base(file)
		if glob {
			if matched, err := filepath.Match(pattern, name); err == nil && matched {
				filtered = append(filtered, file)
			}
			continue
		}
		if strings.Contains(name, pattern) {
			filtered = append(filtered, file)
		}
	}

	return filtered
}
