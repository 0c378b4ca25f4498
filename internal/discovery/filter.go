package discovery

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter filters test files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test files by a glob pattern.
// Patterns with a '/' match the slash separated path ("tests/**/Parser*.elm"),
// others match the file name ("*Spec.elm"). Patterns without glob
// meta characters are plain substring matches on the file name.
func (f *Filter) FilterByName(tests []string, pattern string) []string {
	if pattern == "" {
		return tests
	}

	hasMeta := strings.ContainsAny(pattern, "*?[{")
	var filtered []string

	for _, test := range tests {
		testName := filepath.Base(test)

		if !hasMeta {
			if strings.Contains(testName, pattern) {
				filtered = append(filtered, test)
			}
			continue
		}

		subject := testName
		if strings.Contains(pattern, "/") {
			subject = filepath.ToSlash(test)
		}
		if matched, err := doublestar.Match(pattern, subject); err == nil && matched {
			filtered = append(filtered, test)
			continue
		}

		// Leading "**/" also matches paths relative to any directory
		if strings.HasPrefix(pattern, "**/") {
			if matched, err := doublestar.Match(strings.TrimPrefix(pattern, "**/"), testName); err == nil && matched {
				filtered = append(filtered, test)
			}
		}
	}

	return filtered
}
