// Package tree turns the flat, ordered stream of elm-test results into
// suite start/finish events and a tree of results keyed by label path.
package tree

import (
	"fmt"

	"elmtl/internal/domain"
	"elmtl/internal/label"
)

// EventKind distinguishes builder events
type EventKind int

const (
	SuiteStarted EventKind = iota
	TestFinished
	SuiteFinished
)

func (k EventKind) String() string {
	switch k {
	case SuiteStarted:
		return "suiteStarted"
	case TestFinished:
		return "testFinished"
	case SuiteFinished:
		return "suiteFinished"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is emitted by Builder in report order
type Event struct {
	Kind EventKind
	Path label.Path
	Name string            // decoded last label
	Test *domain.TestEvent // set for TestFinished only
}

// Builder tracks the currently open suite between consecutive results.
// It is not safe for concurrent use.
type Builder struct {
	suite label.Path
}

// NewBuilder creates a Builder with no open suite
func NewBuilder() *Builder {
	return &Builder{}
}

func suiteOf(p label.Path) label.Path {
	parent, ok := p.Parent()
	if !ok {
		return label.Path{}
	}
	return parent
}

// Add consumes the next completed test. Suites that do not contain the test
// are finished innermost first, then the missing suites down to the test
// are started outermost first.
func (b *Builder) Add(test domain.TestEvent) ([]Event, error) {
	target := suiteOf(test.Path)
	common := label.CommonParent(b.suite, target)

	events, err := b.closeTo(common)
	if err != nil {
		return nil, err
	}

	started := common
	for n := common.Len(); n < target.Len(); n++ {
		started = started.Append(target.Segment(n))
		ev, err := newEvent(SuiteStarted, started, nil)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	ev, err := newEvent(TestFinished, test.Path, &test)
	if err != nil {
		return nil, err
	}
	events = append(events, ev)

	b.suite = target
	return events, nil
}

// Finish closes every open suite
func (b *Builder) Finish() ([]Event, error) {
	return b.closeTo(label.Path{})
}

func (b *Builder) closeTo(ancestor label.Path) ([]Event, error) {
	var events []Event
	for b.suite.Len() > ancestor.Len() {
		ev, err := newEvent(SuiteFinished, b.suite, nil)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
		b.suite = suiteOf(b.suite)
	}
	return events, nil
}

func newEvent(kind EventKind, p label.Path, test *domain.TestEvent) (Event, error) {
	name, err := label.DecodeSegment(p.Last())
	if err != nil {
		return Event{}, fmt.Errorf("decode label of %s: %w", p, err)
	}
	return Event{Kind: kind, Path: p, Name: name, Test: test}, nil
}
