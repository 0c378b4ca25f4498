package domain

import (
	"time"

	"elmtl/internal/label"
)

// Status is the outcome of a completed elm-test test
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusTodo Status = "todo"
)

// TestEvent is a single testCompleted event of an elm-test JSON report
type TestEvent struct {
	Status   Status
	Labels   []string
	Path     label.Path
	Failures []FailureReason
	Duration time.Duration
}

// FailureReason is one entry of a testCompleted event's failures list
type FailureReason struct {
	Given      string
	Message    string
	Comparison string
	Expected   string
	Actual     string
}

// RunSummary is the runComplete event of an elm-test JSON report
type RunSummary struct {
	Passed   int
	Failed   int
	Duration time.Duration
}

// TestResult represents the result of executing a test file
type TestResult struct {
	TestPath string        // Path to the test file that was executed
	Success  bool          // Whether all tests passed
	Output   string        // Raw JSON report from elm-test
	Error    error         // Error if execution failed
	Duration time.Duration // Time taken to execute
}

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	TotalTestFiles  int     `json:"total_test_files"`
	FailedTestFiles int     `json:"failed_test_files"`
	PassedTestFiles int     `json:"passed_test_files"`
	PassedTests     int     `json:"passed_tests"`
	FailedTestCases int     `json:"failed_test_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}
