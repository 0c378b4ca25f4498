package parser

import (
	"bufio"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"elmtl/internal/domain"
	"elmtl/internal/label"
)

// Event names of the elm-test JSON reporter
const (
	EventRunStart      = "runStart"
	EventTestCompleted = "testCompleted"
	EventRunComplete   = "runComplete"
)

// ElmTestParser parses the output of `elm-test --report json`
type ElmTestParser struct{}

// NewElmTestParser creates a new ElmTestParser
func NewElmTestParser() *ElmTestParser {
	return &ElmTestParser{}
}

// ParseReport reads every testCompleted event in report order.
// Lines that are not JSON objects (compiler chatter, blank lines) are skipped.
// The summary is nil when the report has no runComplete event.
func (p *ElmTestParser) ParseReport(output string) ([]domain.TestEvent, *domain.RunSummary) {
	var events []domain.TestEvent
	var summary *domain.RunSummary

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "{") || !gjson.Valid(line) {
			continue
		}

		event := gjson.Parse(line)
		switch event.Get("event").String() {
		case EventTestCompleted:
			events = append(events, p.parseTestCompleted(event))
		case EventRunComplete:
			summary = &domain.RunSummary{
				Passed:   int(event.Get("passed").Int()),
				Failed:   int(event.Get("failed").Int()),
				Duration: millis(event.Get("duration")),
			}
		}
	}

	return events, summary
}

func (p *ElmTestParser) parseTestCompleted(event gjson.Result) domain.TestEvent {
	var labels []string
	for _, l := range event.Get("labels").Array() {
		labels = append(labels, l.String())
	}

	testEvent := domain.TestEvent{
		Status:   domain.Status(event.Get("status").String()),
		Labels:   labels,
		Path:     label.ToPath(labels),
		Duration: millis(event.Get("duration")),
	}

	event.Get("failures").ForEach(func(_, failure gjson.Result) bool {
		testEvent.Failures = append(testEvent.Failures, parseFailureReason(failure))
		return true
	})

	return testEvent
}

// parseFailureReason handles both failure shapes: todo tests report plain
// strings, failed tests report {given, message, reason: {type, data}}.
func parseFailureReason(failure gjson.Result) domain.FailureReason {
	if failure.Type == gjson.String {
		return domain.FailureReason{Message: failure.String()}
	}

	reason := domain.FailureReason{
		Message: failure.Get("message").String(),
	}
	if given := failure.Get("given"); given.Exists() && given.Type != gjson.Null {
		reason.Given = given.String()
	}

	data := failure.Get("reason.data")
	if data.IsObject() {
		reason.Comparison = data.Get("comparison").String()
		reason.Expected = data.Get("expected").String()
		reason.Actual = data.Get("actual").String()
	} else if data.Type == gjson.String && data.String() != reason.Message {
		if reason.Message == "" {
			reason.Message = data.String()
		} else {
			reason.Message += "\n" + data.String()
		}
	}

	return reason
}

// ParseTestCounts extracts passed and failed test counts from an elm-test report.
// Returns (passed, failed). Todo tests count as failed, like elm-test's exit code does.
// Without any events it falls back to (1,0) for success or (0,1) for failure.
func (p *ElmTestParser) ParseTestCounts(result domain.TestResult) (passed, failed int) {
	events, summary := p.ParseReport(result.Output)
	if summary != nil && summary.Passed+summary.Failed > 0 {
		return summary.Passed, summary.Failed
	}

	for _, e := range events {
		if e.Status == domain.StatusPass {
			passed++
		} else {
			failed++
		}
	}
	if passed > 0 || failed > 0 {
		return passed, failed
	}

	if result.Success {
		return 1, 0
	}
	return 0, 1
}

// ParseFailure extracts every failed or todo test of a report
func (p *ElmTestParser) ParseFailure(result domain.TestResult) []domain.TestFailure {
	events, _ := p.ParseReport(result.Output)

	var failures []domain.TestFailure
	for _, e := range events {
		if e.Status == domain.StatusPass {
			continue
		}
		failures = append(failures, newTestFailure(e, result.TestPath))
	}
	return failures
}

func newTestFailure(e domain.TestEvent, testPath string) domain.TestFailure {
	module := label.ModuleName(e.Path)
	name := ""
	if len(e.Labels) > 0 {
		name = e.Labels[len(e.Labels)-1]
	}

	failure := domain.TestFailure{
		TestName:    name,
		Labels:      e.Labels,
		Path:        e.Path.String(),
		LocationURL: label.ToLocationURL(module, name),
		ModuleFile:  label.ModuleFilePath(module),
		FilePath:    testPath,
		Status:      e.Status,
	}

	var messages []string
	for _, reason := range e.Failures {
		if reason.Message != "" {
			messages = append(messages, reason.Message)
		}
		if failure.Given == "" {
			failure.Given = reason.Given
		}
		if failure.Expected == "" && failure.Actual == "" {
			failure.Expected = reason.Expected
			failure.Actual = reason.Actual
		}
	}
	failure.Message = strings.Join(messages, "\n\n")

	return failure
}

func millis(r gjson.Result) time.Duration {
	return time.Duration(r.Float() * float64(time.Millisecond))
}
