package commands

import (
	"charm.land/log/v2"
	"github.com/spf13/cobra"

	"elmtl/internal/cli"
	"elmtl/internal/config"
	"elmtl/internal/discovery"
	"elmtl/internal/execution"
	"elmtl/internal/parser"
	"elmtl/internal/storage"
	"elmtl/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
	Report   *ReportCommand
	Label    *LabelCommand
	Locate   *LocateCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, logger *log.Logger) *Commands {
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	testCaseParser := discovery.NewParser()
	runner := execution.NewRunner(cfg)
	scheduler := execution.NewBalancedScheduler(execution.FileSize)
	reportParser := parser.NewElmTestParser()
	executor := execution.NewWorkerPool(cfg, runner, scheduler, reportParser, logger.WithPrefix("workers"))
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, testCaseParser)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, scanner, filter, testCaseParser, executor, reportParser, jsonStorage, formatter, errorViewer, logger),
		List:     NewListCommand(cfg, scanner, filter, formatter, jsonStorage),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer, formatter),
		Report:   NewReportCommand(reportParser, formatter),
		Label:    NewLabelCommand(),
		Locate:   NewLocateCommand(cfg, testCaseParser),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.ApplyFlags(flags.ToConfigFlags())
		return nil
	}

	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run elm-test modules in parallel",
		Long:    "Discover Elm test modules and execute them with elm-test using parallel workers",
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of parallel elm-test processes (default from config)")
	runCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by pattern (supports globs, e.g. '**/Api/*.elm' or '*Parser*')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on the first failing test file")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only test files that failed in the last run")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered tests",
		Long:    "Scan and list Elm test modules without executing them",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by pattern (supports globs, e.g. '**/Api/*.elm' or '*Parser*')")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List suites and tests of every file")
	rootCmd.AddCommand(listCmd)

	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View test failures interactively",
		Long:    "Display failures from the last test run in an interactive viewer",
		RunE:    c.Failures.Execute,
		PreRunE: applyFlags,
	}
	failuresCmd.Flags().BoolVarP(&flags.ListFailures, "list", "l", false, "Print failures as a plain list instead of opening the viewer")
	rootCmd.AddCommand(failuresCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "report [file]",
		Short: "Render an elm-test JSON report",
		Long:  "Render the output of 'elm-test --report json' as a suite tree, reading stdin when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Report.Execute,
	})

	c.Label.Register(rootCmd)
	c.Locate.Register(rootCmd)
}
