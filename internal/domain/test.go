package domain

import "elmtl/internal/label"

// TestCase represents a single test or describe block within a test file
type TestCase struct {
	Labels  []string   // Full label sequence, module name first
	Path    label.Path // Hierarchical path built from Labels
	Line    int        // 1-based line of the declaration
	IsSuite bool       // true for describe blocks
}

// Name returns the innermost label
func (tc TestCase) Name() string {
	if len(tc.Labels) == 0 {
		return ""
	}
	return tc.Labels[len(tc.Labels)-1]
}
