package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"elmtl/internal/config"
	"elmtl/internal/discovery"
	"elmtl/internal/domain"
	"elmtl/internal/label"
)

func newFormatter(t *testing.T) (*Formatter, *bytes.Buffer) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	f := NewFormatter(cfg, discovery.NewParser())
	var buf bytes.Buffer
	f.SetOutput(&buf)
	return f, &buf
}

func event(status domain.Status, labels ...string) domain.TestEvent {
	return domain.TestEvent{Status: status, Labels: labels, Path: label.ToPath(labels)}
}

func failure(labels ...string) domain.TestFailure {
	module := labels[0]
	name := labels[len(labels)-1]
	return domain.TestFailure{
		TestName:    name,
		Labels:      labels,
		Path:        label.ToPath(labels).String(),
		LocationURL: label.ToLocationURL(module, name),
		ModuleFile:  label.ModuleFilePath(module),
		Status:      domain.StatusFail,
	}
}

func TestFormatter_PrintReport(t *testing.T) {
	f, buf := newFormatter(t)

	events := []domain.TestEvent{
		event(domain.StatusPass, "Example", "addition", "adds numbers"),
		event(domain.StatusFail, "Example", "addition", "a/b 100%"),
		event(domain.StatusTodo, "Example", "later"),
		event(domain.StatusPass, "Other", "works"),
	}
	events[1].Failures = []domain.FailureReason{{Message: "Expect.equal"}}

	require.NoError(t, f.PrintReport(events, &domain.RunSummary{Passed: 2, Failed: 2}))

	expected := "Example\n" +
		"  addition\n" +
		"    ✓ adds numbers\n" +
		"    ✗ a/b 100%\n" +
		"        Expect.equal\n" +
		"  ○ later\n" +
		"Other\n" +
		"  ✓ works\n" +
		"\n" +
		"Passed: 2  Failed: 2  Duration: 0s\n"
	require.Equal(t, expected, buf.String())
}

func TestFormatter_PrintReport_BadSegment(t *testing.T) {
	f, _ := newFormatter(t)

	bad := domain.TestEvent{Status: domain.StatusPass, Path: label.NewPath("Example", "%zz", "x")}
	err := f.PrintReport([]domain.TestEvent{bad}, nil)
	require.ErrorIs(t, err, label.ErrCodec)
}

func TestFormatter_PrintFailureTree(t *testing.T) {
	f, buf := newFormatter(t)

	todo := failure("Example", "later")
	todo.Status = domain.StatusTodo
	failures := []domain.TestFailure{
		failure("Example", "addition", "a/b 100%"),
		todo,
	}

	require.NoError(t, f.PrintFailureTree(failures))

	expected := "Example (2)\n" +
		"  addition (1)\n" +
		"    ✗ a/b 100%\n" +
		"      elmTest://Example/a%2Fb+100%25\n" +
		"  ○ later\n" +
		"    elmTest://Example/later\n"
	require.Equal(t, expected, buf.String())
}

func TestFormatter_PrintFailureList(t *testing.T) {
	f, buf := newFormatter(t)

	failures := []domain.TestFailure{
		failure("Example", "addition", "a/b 100%"),
		failure("Example", "fuzzing", "reverses"),
		failure("Example", "fuzzing", "sorts"),
		failure("Example", "fuzzing", ".."),
	}

	require.NoError(t, f.PrintFailureList(failures))

	expected := "✗ Example › addition › a/b 100%\n" +
		"✗ Example › fuzzing › reverses\n" +
		"  ↳ sorts\n" +
		"  ↳ ..\n"
	require.Equal(t, expected, buf.String())
}

func TestFormatter_PrintMetaStats(t *testing.T) {
	f, buf := newFormatter(t)

	output := &domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{TotalTestFiles: 3, PassedTestFiles: 3, PassedTests: 12},
	}
	require.NoError(t, f.PrintMetaStats(output))
	require.Contains(t, buf.String(), "Passed Tests")
	require.Contains(t, buf.String(), "✓ All tests passed!")

	buf.Reset()
	output.Meta.FailedTestFiles = 1
	output.Meta.FailedTestCases = 1
	output.Details = []domain.TestFailure{failure("Example", "broken")}
	require.NoError(t, f.PrintMetaStats(output))
	require.Contains(t, buf.String(), "✗ 1 test file(s) failed with 1 test failure(s)")
	require.Contains(t, buf.String(), "elmTest://Example/broken")
}

func TestFormatter_PrintTestList(t *testing.T) {
	f, buf := newFormatter(t)

	dir := filepath.Join(f.config.ProjectPath, "tests")
	require.NoError(t, os.MkdirAll(dir, 0755))
	file := filepath.Join(dir, "Example.elm")
	content := "module Example exposing (..)\n\nsuite =\n    describe \"math\"\n        [ test \"adds\" <| \\_ -> Expect.pass\n        ]\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	require.NoError(t, f.PrintTestList([]string{file}, true, map[string]struct{}{file: {}}))

	expected := "Found 1 test file(s) with test cases:\n\n" +
		"└── tests/Example.elm [F]\n" +
		"    math :4\n" +
		"      adds :5\n"
	require.Equal(t, expected, buf.String())

	count, err := f.CountTestCases([]string{file})
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
