package domain

// TestFailure represents a failed or todo test case
type TestFailure struct {
	TestName    string   `json:"test_name"`
	Labels      []string `json:"labels"`
	Path        string   `json:"path"`         // Hierarchical path, see label.ToPath
	LocationURL string   `json:"location_url"` // elmTest:// location of the result
	ModuleFile  string   `json:"module_file"`
	FilePath    string   `json:"file_path"` // Test file that was executed
	Status      Status   `json:"status"`
	Message     string   `json:"message"`
	Given       string   `json:"given,omitempty"`
	Expected    string   `json:"expected,omitempty"`
	Actual      string   `json:"actual,omitempty"`
	Line        int      `json:"line,omitempty"`
	Resolved    bool     `json:"resolved,omitempty"` // Track if test case is marked as resolved
}
