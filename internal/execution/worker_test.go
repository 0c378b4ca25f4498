package execution

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"elmtl/internal/config"
	"elmtl/internal/domain"
	"elmtl/internal/parser"
)

type fakeRunner struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *fakeRunner) Run(ctx context.Context, testPath string, workerID int) domain.TestResult {
	f.mu.Lock()
	f.calls = append(f.calls, testPath)
	f.mu.Unlock()

	status := "pass"
	if f.fail[testPath] {
		status = "fail"
	}
	output := `{"event":"testCompleted","status":"` + status + `","labels":["M","` + testPath + `"],"failures":[]}`
	return domain.TestResult{TestPath: testPath, Success: !f.fail[testPath], Output: output}
}

type fakeProgress struct {
	updates  int
	passed   int
	failed   int
	finished bool
}

func (p *fakeProgress) Update(completedFiles, passedTests, failedTests int) {
	p.updates = completedFiles
	p.passed = passedTests
	p.failed = failedTests
}

func (p *fakeProgress) Finish() { p.finished = true }

func unitWeight(string) int64 { return 1 }

func newPool(processors int, runner TestRunner) *WorkerPool {
	cfg := config.New()
	cfg.Processors = processors
	return NewWorkerPool(cfg, runner, NewBalancedScheduler(unitWeight), parser.NewElmTestParser(), nil)
}

func TestWorkerPool_Execute(t *testing.T) {
	runner := &fakeRunner{fail: map[string]bool{"b.elm": true}}
	pool := newPool(3, runner)
	progress := &fakeProgress{}
	pool.SetProgress(progress)

	tests := []string{"a.elm", "b.elm", "c.elm", "d.elm", "e.elm"}
	results, _, err := pool.Execute(context.Background(), tests, false)
	require.NoError(t, err)
	require.Len(t, results, 5)

	var paths []string
	for _, r := range results {
		paths = append(paths, r.TestPath)
	}
	sort.Strings(paths)
	require.Equal(t, tests, paths)

	require.Equal(t, 5, progress.updates)
	require.Equal(t, 4, progress.passed)
	require.Equal(t, 1, progress.failed)
	require.True(t, progress.finished)
}

func TestWorkerPool_ExecuteFailFast(t *testing.T) {
	runner := &fakeRunner{fail: map[string]bool{"a.elm": true}}
	pool := newPool(1, runner)

	results, _, err := pool.Execute(context.Background(), []string{"a.elm", "b.elm", "c.elm"}, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.False(t, results[0].Success)
	require.Equal(t, []string{"a.elm"}, runner.calls)
}

func TestWorkerPool_ExecuteEmpty(t *testing.T) {
	results, d, err := newPool(2, &fakeRunner{}).Execute(context.Background(), nil, false)
	require.NoError(t, err)
	require.Nil(t, results)
	require.Zero(t, d)
}

func TestWorkerPool_ExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{}
	_, _, err := newPool(2, runner).Execute(ctx, []string{"a.elm", "b.elm"}, false)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, runner.calls)
}

func TestBalancedScheduler_Schedule(t *testing.T) {
	weights := map[string]int64{"a": 5, "b": 3, "c": 3, "d": 1}
	s := NewBalancedScheduler(func(path string) int64 { return weights[path] })

	got := s.Schedule([]string{"d", "c", "b", "a"}, 2)
	require.Equal(t, [][]string{{"a", "d"}, {"c", "b"}}, got)

	got = s.Schedule([]string{"a"}, 0)
	require.Equal(t, [][]string{{"a"}}, got)

	even := NewBalancedScheduler(unitWeight).Schedule([]string{"a", "b", "c", "d", "e"}, 2)
	require.Equal(t, [][]string{{"a", "c", "e"}, {"b", "d"}}, even)
}

func TestFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Big.elm")
	require.NoError(t, os.WriteFile(path, make([]byte, 42), 0644))

	require.Equal(t, int64(42), FileSize(path))
	require.Equal(t, int64(1), FileSize(filepath.Join(t.TempDir(), "Missing.elm")))
}

func TestRunner_Command(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = "/project"
	cfg.ElmTestCommand = "npx elm-test"

	args := NewRunner(cfg).Command("/project/tests/Foo/BarTest.elm")
	require.Equal(t, "npx elm-test --report json tests/Foo/BarTest.elm", strings.Join(args, " "))

	cfg.ElmTestCommand = ""
	args = NewRunner(cfg).Command("/elsewhere/X.elm")
	require.Equal(t, []string{"elm-test", "--report", "json", "/elsewhere/X.elm"}, args)
}
