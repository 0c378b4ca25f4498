package execution

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"elmtl/internal/config"
	"elmtl/internal/domain"
)

// TestRunner runs a single test file
type TestRunner interface {
	Run(ctx context.Context, testPath string, workerID int) domain.TestResult
}

// Runner executes elm-test for a single test module
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// Command returns the elm-test invocation for a test file
func (r *Runner) Command(testPath string) []string {
	args := strings.Fields(r.config.ElmTestCommand)
	if len(args) == 0 {
		args = []string{config.DefaultElmTestCommand}
	}
	if rel, err := filepath.Rel(r.config.ProjectPath, testPath); err == nil && !strings.HasPrefix(rel, "..") {
		testPath = rel
	}
	return append(args, "--report", "json", testPath)
}

// Run executes elm-test with the JSON reporter for a single test file
func (r *Runner) Run(ctx context.Context, testPath string, workerID int) domain.TestResult {
	args := r.Command(testPath)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	// Set environment variables
	cmd.Env = os.Environ() // Start with current environment
	cmd.Env = append(cmd.Env, fmt.Sprintf("ELMTL_WORKER=%d", workerID))

	// Set working directory
	cmd.Dir = r.config.ProjectPath

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	output, err := cmd.Output()
	if err != nil && stderr.Len() > 0 {
		err = fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return domain.TestResult{
		TestPath: testPath,
		Success:  err == nil,
		Output:   string(output),
		Error:    err,
		Duration: time.Since(start),
	}
}
