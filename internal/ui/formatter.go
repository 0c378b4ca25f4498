package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"elmtl/internal/config"
	"elmtl/internal/discovery"
	"elmtl/internal/domain"
	"elmtl/internal/label"
	"elmtl/internal/tree"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to color.Output
func NewFormatter(cfg *config.Config, parser *discovery.Parser) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
		out:    color.Output,
	}
}

// SetOutput redirects everything the formatter prints
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
	gray   = color.New(color.FgHiBlack)
)

// PrintMetaStats displays the statistics of a stored run followed by its
// failures grouped by suite.
func (f *Formatter) PrintMetaStats(output *domain.TestResultsOutput) error {
	// Clear terminal screen
	fmt.Fprint(f.out, "\033[2J\033[H")

	meta := output.Meta

	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                    Test Execution Statistics                  ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	const separator = "├─────────────────────────────────┼─────────────────────────────┤"
	rows := []struct {
		name  string
		value string
		c     *color.Color
	}{
		{"Total Test Files", fmt.Sprint(meta.TotalTestFiles), white},
		{"Passed Test Files", fmt.Sprint(meta.PassedTestFiles), green},
		{"Failed Test Files", fmt.Sprint(meta.FailedTestFiles), red},
		{"Passed Tests", fmt.Sprint(meta.PassedTests), green},
		{"Failed Tests", fmt.Sprint(meta.FailedTestCases), red},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Workers", fmt.Sprint(meta.Workers), white},
		{"Timestamp", meta.Timestamp, white},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		if i > 0 {
			fmt.Fprintln(f.out, separator)
		}
		fmt.Fprintf(f.out, "│ %-31s │ ", row.name)
		row.c.Fprintf(f.out, "%-27s", row.value)
		fmt.Fprintln(f.out, " │")
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedTestFiles == 0 && meta.FailedTestCases == 0 {
		green.Fprintln(f.out, "✓ All tests passed!")
		return nil
	}

	red.Fprintf(f.out, "✗ %d test file(s) failed with %d test failure(s)\n", meta.FailedTestFiles, meta.FailedTestCases)
	fmt.Fprintln(f.out)
	return f.PrintFailureTree(output.Details)
}

func failureEvents(failures []domain.TestFailure) []domain.TestEvent {
	events := make([]domain.TestEvent, 0, len(failures))
	for _, failure := range failures {
		events = append(events, domain.TestEvent{
			Status: failure.Status,
			Labels: failure.Labels,
			Path:   label.ParsePath(failure.Path),
		})
	}
	return events
}

// PrintFailureTree prints failures nested under the suites that contain
// them, each test followed by its location URL.
func (f *Formatter) PrintFailureTree(failures []domain.TestFailure) error {
	if len(failures) == 0 {
		return nil
	}

	t, err := tree.Build(failureEvents(failures))
	if err != nil {
		return fmt.Errorf("failed to build failure tree: %w", err)
	}

	byPath := make(map[string]domain.TestFailure, len(failures))
	for _, failure := range failures {
		if _, ok := byPath[failure.Path]; !ok {
			byPath[failure.Path] = failure
		}
	}

	t.Walk(func(n *tree.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		if n.IsSuite() {
			cyan.Fprintf(f.out, "%s%s", indent, n.Name)
			gray.Fprintf(f.out, " (%d)\n", n.Failed)
			return
		}

		failure := byPath[n.Path.String()]
		marker := "✗"
		c := red
		if failure.Status == domain.StatusTodo {
			marker = "○"
			c = yellow
		}
		if failure.Resolved {
			marker = "✓"
			c = gray
		}
		c.Fprintf(f.out, "%s%s %s\n", indent, marker, n.Name)
		gray.Fprintf(f.out, "%s  %s\n", indent, failure.LocationURL)
	})
	return nil
}

// PrintFailureList prints one failure per line. A failure that shares its
// suite with the previous one is shown by its own label only.
func (f *Formatter) PrintFailureList(failures []domain.TestFailure) error {
	t, err := tree.Build(failureEvents(failures))
	if err != nil {
		return fmt.Errorf("failed to build failure list: %w", err)
	}

	var prev *tree.Node
	var walkErr error
	t.Walk(func(n *tree.Node, depth int) {
		if n.IsSuite() || walkErr != nil {
			return
		}
		name, err := n.RelativeName(prev)
		if err != nil {
			walkErr = err
			return
		}
		if prev == nil || leavesSuite(prev, n) {
			full, err := n.RelativeName(nil)
			if err != nil {
				walkErr = err
				return
			}
			red.Fprintf(f.out, "✗ %s\n", full)
		} else {
			red.Fprintf(f.out, "  ↳ %s\n", name)
		}
		prev = n
	})
	return walkErr
}

// leavesSuite reports whether n lies outside the suite of prev
func leavesSuite(prev, n *tree.Node) bool {
	diff := label.DiffPaths(prev.Path, n.Path)
	return !diff.IsEmpty() && diff.Segment(0) == ".."
}

// PrintReport prints an elm-test report as an indented suite tree
func (f *Formatter) PrintReport(events []domain.TestEvent, summary *domain.RunSummary) error {
	b := tree.NewBuilder()
	depth := 0

	emit := func(evs []tree.Event) {
		for _, ev := range evs {
			switch ev.Kind {
			case tree.SuiteStarted:
				cyan.Fprintf(f.out, "%s%s\n", strings.Repeat("  ", depth), ev.Name)
				depth++
			case tree.SuiteFinished:
				depth--
			case tree.TestFinished:
				indent := strings.Repeat("  ", depth)
				switch ev.Test.Status {
				case domain.StatusPass:
					green.Fprintf(f.out, "%s✓ %s\n", indent, ev.Name)
				case domain.StatusTodo:
					yellow.Fprintf(f.out, "%s○ %s\n", indent, ev.Name)
				default:
					red.Fprintf(f.out, "%s✗ %s\n", indent, ev.Name)
					for _, reason := range ev.Test.Failures {
						if reason.Message != "" {
							gray.Fprintf(f.out, "%s    %s\n", indent, reason.Message)
						}
					}
				}
			}
		}
	}

	for _, e := range events {
		evs, err := b.Add(e)
		if err != nil {
			return err
		}
		emit(evs)
	}
	evs, err := b.Finish()
	if err != nil {
		return err
	}
	emit(evs)

	if summary != nil {
		fmt.Fprintln(f.out)
		green.Fprintf(f.out, "Passed: %d", summary.Passed)
		fmt.Fprint(f.out, "  ")
		red.Fprintf(f.out, "Failed: %d", summary.Failed)
		fmt.Fprintf(f.out, "  Duration: %s\n", summary.Duration)
	}
	return nil
}

// CountTestCases returns the number of tests (not suites) across the given files
func (f *Formatter) CountTestCases(tests []string) (int, error) {
	var total int
	for _, test := range tests {
		cases, err := f.parser.FindTests(test)
		if err != nil {
			return 0, err
		}
		for _, tc := range cases {
			if !tc.IsSuite {
				total++
			}
		}
	}
	return total, nil
}

// PrintTestList prints a list of test files, optionally with their suites and
// tests. Files in failedPaths are marked with [F] from the last run.
func (f *Formatter) PrintTestList(tests []string, showTestCases bool, failedPaths map[string]struct{}) error {
	if showTestCases {
		green.Fprintf(f.out, "Found %d test file(s) with test cases:\n\n", len(tests))
	} else {
		green.Fprintf(f.out, "Found %d test file(s):\n\n", len(tests))
	}

	for i, test := range tests {
		isLastFile := i == len(tests)-1

		failMarker := ""
		if _, ok := failedPaths[test]; ok {
			failMarker = " " + color.RedString("[F]")
		}

		branch, stem := "├── ", "│   "
		if isLastFile {
			branch, stem = "└── ", "    "
		}
		cyan.Fprintf(f.out, "%s%s", branch, f.config.RelPath(test))
		fmt.Fprintln(f.out, failMarker)

		if !showTestCases {
			continue
		}

		testCases, err := f.parser.FindTests(test)
		if err != nil {
			red.Fprintf(f.out, "%sError reading test file: %v\n", stem, err)
			continue
		}
		if len(testCases) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", stem, color.RedString("(no test cases found)"))
		}
		for _, tc := range testCases {
			indent := strings.Repeat("  ", len(tc.Labels)-2)
			c := yellow
			if tc.IsSuite {
				c = cyan
			}
			fmt.Fprintf(f.out, "%s%s", stem, indent)
			c.Fprint(f.out, tc.Labels[len(tc.Labels)-1])
			gray.Fprintf(f.out, " :%d\n", tc.Line)
		}

		if !isLastFile {
			fmt.Fprintln(f.out)
		}
	}

	return nil
}
