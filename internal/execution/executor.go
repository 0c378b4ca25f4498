package execution

import (
	"context"
	"time"

	"elmtl/internal/domain"
)

// Executor executes test files and returns results
type Executor interface {
	SetProgress(progress ProgressReporter)
	Execute(ctx context.Context, tests []string, failFast bool) ([]domain.TestResult, time.Duration, error)
}
