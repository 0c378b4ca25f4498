package discovery

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"elmtl/internal/domain"
	"elmtl/internal/label"
)

var (
	// module Foo.Bar exposing (..)
	modulePattern = regexp.MustCompile(`(?m)^(?:port\s+)?module\s+([A-Z][\w.]*)\s`)

	// describe "x", test "x", todo "x", fuzz int "x", fuzz2 a b "x", fuzzWith {..} a "x",
	// optionally qualified as in T.describe "x" or Test.test "x"
	declPattern = regexp.MustCompile(`(?:^|[\s(\[,|<])((?:[A-Z]\w*\.)*)(describe|test|todo|fuzz[0-9]?|fuzzWith)\s[^"\n]*?"((?:[^"\\\n]|\\.)*)"`)

	unicodeEscape = regexp.MustCompile(`\\u\{([0-9a-fA-F]+)\}`)
)

// Parser parses Elm test modules to extract their label tree
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

type openSuite struct {
	column int
	label  string
}

// FindTests finds all describe blocks and tests in an Elm test module.
// Nesting follows indentation, which holds for elm-format'ed sources.
// Labels start with the module name, like elm-test reports them.
func (p *Parser) FindTests(filePath string) ([]domain.TestCase, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	module := moduleName(string(content), filePath)
	var cases []domain.TestCase
	var stack []openSuite

	for i, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}

		for _, m := range declPattern.FindAllStringSubmatchIndex(line, -1) {
			// the qualifier, possibly empty, starts where the call does
			column := m[2]
			kind := line[m[4]:m[5]]
			text := unescapeElmString(line[m[6]:m[7]])

			for len(stack) > 0 && stack[len(stack)-1].column >= column {
				stack = stack[:len(stack)-1]
			}

			labels := make([]string, 0, len(stack)+2)
			labels = append(labels, module)
			for _, s := range stack {
				labels = append(labels, s.label)
			}
			labels = append(labels, text)

			isSuite := kind == "describe"
			cases = append(cases, domain.TestCase{
				Labels:  labels,
				Path:    label.ToPath(labels),
				Line:    i + 1,
				IsSuite: isSuite,
			})
			if isSuite {
				stack = append(stack, openSuite{column: column, label: text})
			}
		}
	}

	return cases, nil
}

// Locate finds the line of the declaration addressed by path, whose first
// segment is the module name. Suites that are missing fall back to their
// deepest existing ancestor suite; anything else that is missing resolves
// to line 0, the file itself.
func (p *Parser) Locate(filePath string, path label.Path, isSuite bool) (int, error) {
	wanted, err := label.Labels(path)
	if err != nil {
		return 0, err
	}
	if len(wanted) < 2 {
		return 0, nil
	}

	cases, err := p.FindTests(filePath)
	if err != nil {
		return 0, err
	}

	find := func(labels []string, suite bool) (int, bool) {
		for _, tc := range cases {
			if tc.IsSuite == suite && equalLabels(tc.Labels[1:], labels) {
				return tc.Line, true
			}
		}
		return 0, false
	}

	if line, ok := find(wanted[1:], isSuite); ok {
		return line, nil
	}
	if !isSuite {
		return 0, nil
	}
	for n := len(wanted) - 1; n >= 2; n-- {
		if line, ok := find(wanted[1:n], true); ok {
			return line, nil
		}
	}
	return 0, nil
}

// LocateLabel finds the first declaration whose own label is name, as
// addressed by a location URL. Tests win over suites with the same label.
// Line 0 means no declaration carries the label.
func (p *Parser) LocateLabel(filePath, name string) (int, error) {
	cases, err := p.FindTests(filePath)
	if err != nil {
		return 0, err
	}

	suiteLine := 0
	for _, tc := range cases {
		if tc.Labels[len(tc.Labels)-1] != name {
			continue
		}
		if !tc.IsSuite {
			return tc.Line, nil
		}
		if suiteLine == 0 {
			suiteLine = tc.Line
		}
	}
	return suiteLine, nil
}

func equalLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func moduleName(content, filePath string) string {
	if m := modulePattern.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	if name, ok := label.ModuleNameFromFile(filePath); ok {
		return name
	}
	return strings.TrimSuffix(filePath, label.ModuleExt)
}

func unescapeElmString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	s = unicodeEscape.ReplaceAllStringFunc(s, func(esc string) string {
		hex := unicodeEscape.FindStringSubmatch(esc)[1]
		r, err := strconv.ParseInt(hex, 16, 32)
		if err != nil {
			return esc
		}
		return string(rune(r))
	})
	return strings.NewReplacer(`\"`, `"`, `\\`, `\`, `\n`, "\n", `\t`, "\t", `\r`, "\r", `\'`, "'").Replace(s)
}
