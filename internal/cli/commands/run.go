package commands

import (
	"fmt"

	"charm.land/log/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"elmtl/internal/config"
	"elmtl/internal/discovery"
	"elmtl/internal/domain"
	"elmtl/internal/execution"
	"elmtl/internal/label"
	"elmtl/internal/parser"
	"elmtl/internal/storage"
	"elmtl/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	locator   *discovery.Parser
	executor  execution.Executor
	parser    parser.Parser
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
	logger    *log.Logger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	locator *discovery.Parser,
	executor execution.Executor,
	p parser.Parser,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
	logger *log.Logger,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		locator:   locator,
		executor:  executor,
		parser:    p,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
		logger:    logger,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	testPath := rc.config.GetTestPath()
	tests, err := rc.scanner.Scan(testPath)
	if err != nil {
		return err
	}
	rc.logger.Debug("discovered test files", "root", testPath, "count", len(tests))

	tests = rc.filter.FilterByName(tests, rc.config.Flags.NameFilter)

	if rc.config.Flags.OnlyFailed {
		failed, err := rc.storage.FailedFiles()
		if err != nil {
			return fmt.Errorf("failed to read last run: %w", err)
		}
		tests = onlyFailed(tests, failed)
		rc.logger.Debug("restricted to failed files", "count", len(tests))
	}

	if len(tests) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	progressBar := ui.NewProgressBar(len(tests))
	rc.executor.SetProgress(progressBar)

	results, duration, err := rc.executor.Execute(cmd.Context(), tests, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	var failures []domain.TestFailure
	passedTests := 0
	for _, result := range results {
		passed, _ := rc.parser.ParseTestCounts(result)
		passedTests += passed
		if !result.Success {
			failures = append(failures, rc.parser.ParseFailure(result)...)
		}
	}
	rc.locateFailures(failures)

	if err := rc.storage.Save(results, failures, passedTests, duration, rc.config.Processors); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	output, err := rc.storage.Load()
	if err != nil {
		return err
	}
	if err := rc.formatter.PrintMetaStats(output); err != nil {
		return err
	}

	if rc.config.Flags.OpenFailures && len(output.Details) > 0 {
		return rc.viewer.View(output)
	}
	return nil
}

// locateFailures fills in the source line of every failure whose module
// file exists. Lookup problems only cost the line number.
func (rc *RunCommand) locateFailures(failures []domain.TestFailure) {
	for i := range failures {
		f := &failures[i]
		path := label.ParsePath(f.Path)
		file := rc.config.ModuleFile(label.ModuleName(path))
		line, err := rc.locator.Locate(file, path, false)
		if err != nil {
			rc.logger.Debug("cannot locate failure", "path", f.Path, "file", file, "err", err)
			continue
		}
		f.Line = line
	}
}

func onlyFailed(tests []string, failed map[string]struct{}) []string {
	var out []string
	for _, t := range tests {
		if _, ok := failed[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
