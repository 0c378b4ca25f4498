package execution

import (
	"context"
	"io"
	"sync"
	"time"

	"charm.land/log/v2"

	"elmtl/internal/config"
	"elmtl/internal/domain"
	"elmtl/internal/parser"
)

// ProgressReporter receives progress updates from the worker pool
type ProgressReporter interface {
	Update(completedFiles, passedTests, failedTests int)
	Finish()
}

// WorkerPool manages a pool of workers for parallel test execution
type WorkerPool struct {
	config    *config.Config
	runner    TestRunner
	scheduler Scheduler
	progress  ProgressReporter
	parser    parser.Parser
	logger    *log.Logger
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner TestRunner, scheduler Scheduler, p parser.Parser, logger *log.Logger) *WorkerPool {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
		parser:    p,
		logger:    logger,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress ProgressReporter) {
	wp.progress = progress
}

// Execute runs the test files in parallel. Each worker gets its share from
// the scheduler. With failFast, the remaining files are skipped after the
// first failing file and results arriving after it are dropped.
func (wp *WorkerPool) Execute(ctx context.Context, tests []string, failFast bool) ([]domain.TestResult, time.Duration, error) {
	if len(tests) == 0 {
		return nil, 0, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(tests) {
		workerCount = len(tests)
	}
	batches := wp.scheduler.Schedule(tests, workerCount)

	var mu sync.Mutex
	var allResults []domain.TestResult
	var completedFiles, passedTests, failedTests int
	var seenFailure bool
	startTime := time.Now()

	var wg sync.WaitGroup
	for i, batch := range batches {
		wg.Add(1)
		go func(workerID int, batch []string) {
			defer wg.Done()
			for _, testPath := range batch {
				if runCtx.Err() != nil {
					return
				}

				wp.logger.Debug("running test file", "worker", workerID, "file", testPath)
				result := wp.runner.Run(runCtx, testPath, workerID)
				passed, failed := wp.countTests(result)

				mu.Lock()
				if failFast && seenFailure {
					mu.Unlock()
					return
				}
				allResults = append(allResults, result)
				completedFiles++
				passedTests += passed
				failedTests += failed
				if wp.progress != nil {
					wp.progress.Update(completedFiles, passedTests, failedTests)
				}
				if !result.Success {
					wp.logger.Debug("test file failed", "worker", workerID, "file", testPath, "err", result.Error)
					if failFast {
						seenFailure = true
						cancel()
					}
				}
				mu.Unlock()
			}
		}(i+1, batch)
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}
	if err := ctx.Err(); err != nil {
		return allResults, time.Since(startTime), err
	}
	return allResults, time.Since(startTime), nil
}

func (wp *WorkerPool) countTests(result domain.TestResult) (passed, failed int) {
	if wp.parser != nil {
		return wp.parser.ParseTestCounts(result)
	}
	if result.Success {
		return 1, 0
	}
	return 0, 1
}
