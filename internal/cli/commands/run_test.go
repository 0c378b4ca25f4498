package commands

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"charm.land/log/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"elmtl/internal/discovery"
	"elmtl/internal/domain"
	"elmtl/internal/execution"
	"elmtl/internal/parser"
	"elmtl/internal/storage"
	"elmtl/internal/ui"
)

type fakeExecutor struct {
	results map[string]domain.TestResult
	got     []string
}

func (f *fakeExecutor) SetProgress(execution.ProgressReporter) {}

func (f *fakeExecutor) Execute(ctx context.Context, tests []string, failFast bool) ([]domain.TestResult, time.Duration, error) {
	f.got = tests
	var out []domain.TestResult
	for _, test := range tests {
		r := f.results[test]
		r.TestPath = test
		out = append(out, r)
	}
	return out, time.Second, nil
}

const menuReport = `{"event":"testCompleted","status":"pass","labels":["Nav.Menu","menu","opens"],"failures":[],"duration":"1"}
{"event":"testCompleted","status":"fail","labels":["Nav.Menu","menu","keyboard","escape closes"],"failures":[{"given":null,"message":"boom","reason":{"type":"custom","data":"boom"}}],"duration":"2"}
{"event":"runComplete","passed":"1","failed":"1","duration":"5"}
`

func TestRunCommand_Execute(t *testing.T) {
	cfg := newProject(t)
	testsDir := filepath.Join(cfg.ProjectPath, "tests")
	require.NoError(t, os.MkdirAll(filepath.Join(testsDir, "Nav"), 0755))
	menu := filepath.Join(testsDir, "Nav", "Menu.elm")
	other := filepath.Join(testsDir, "Other.elm")
	require.NoError(t, os.WriteFile(menu, []byte(navigationModule), 0644))
	require.NoError(t, os.WriteFile(other, []byte("module Other exposing (..)\n\nimport Test\n"), 0644))

	exec := &fakeExecutor{results: map[string]domain.TestResult{
		menu:  {Success: false, Output: menuReport},
		other: {Success: true, Output: `{"event":"runComplete","passed":"3","failed":"0","duration":"1"}`},
	}}
	st := storage.NewJSONStorage(cfg)
	locator := discovery.NewParser()
	formatter := ui.NewFormatter(cfg, locator)
	formatter.SetOutput(io.Discard)

	rc := NewRunCommand(cfg, discovery.NewScanner(cfg.PathsToIgnore), discovery.NewFilter(), locator,
		exec, parser.NewElmTestParser(), st, formatter, ui.NewErrorViewer(cfg, st), log.New(io.Discard))

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	require.NoError(t, rc.Execute(cmd, nil))
	require.ElementsMatch(t, []string{menu, other}, exec.got)

	out, err := st.Load()
	require.NoError(t, err)
	require.Equal(t, 2, out.Meta.TotalTestFiles)
	require.Equal(t, 1, out.Meta.FailedTestFiles)
	require.Equal(t, 4, out.Meta.PassedTests)
	require.Len(t, out.Details, 1)

	failure := out.Details[0]
	require.Equal(t, "escape closes", failure.TestName)
	require.Equal(t, "Nav.Menu/menu/keyboard/escape+closes", failure.Path)
	require.Equal(t, "elmTest://Nav.Menu/escape+closes", failure.LocationURL)
	require.Equal(t, "tests/Nav/Menu.elm", failure.ModuleFile)
	require.Equal(t, menu, failure.FilePath)
	require.Equal(t, 13, failure.Line)

	t.Run("only failed files", func(t *testing.T) {
		cfg.Flags.OnlyFailed = true
		t.Cleanup(func() { cfg.Flags.OnlyFailed = false })

		require.NoError(t, rc.Execute(cmd, nil))
		require.Equal(t, []string{menu}, exec.got)
	})
}
