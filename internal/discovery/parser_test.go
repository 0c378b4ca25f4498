package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"elmtl/internal/label"
)

const navigationModule = `module Navigation exposing (..)

import Expect
import Fuzz exposing (int)
import Test exposing (..)


suite1 : Test
suite1 =
    describe "suite1"
        [ test "test1" <|
            \_ -> Expect.pass
        ]


test1 : Test
test1 =
    test "test1" <|
        \_ -> Expect.pass


suite2 : Test
suite2 =
    describe "suite2"
        [ test "test1" <|
            \_ -> Expect.pass
        , describe "nested1"
            [ test "test1" <|
                \_ -> Expect.pass
            , fuzz int "fuzzes \"quoted\" \u{2713}" <|
                \_ -> Expect.pass
            ]
        -- test "commented out"
        , todo "later"
        ]
`

func writeNavigation(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Navigation.elm")
	if err := os.WriteFile(path, []byte(navigationModule), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestParser_FindTests(t *testing.T) {
	parser := NewParser()
	file := writeNavigation(t)

	cases, err := parser.FindTests(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []struct {
		path    []string
		line    int
		isSuite bool
	}{
		{[]string{"Navigation", "suite1"}, 10, true},
		{[]string{"Navigation", "suite1", "test1"}, 11, false},
		{[]string{"Navigation", "test1"}, 18, false},
		{[]string{"Navigation", "suite2"}, 24, true},
		{[]string{"Navigation", "suite2", "test1"}, 25, false},
		{[]string{"Navigation", "suite2", "nested1"}, 27, true},
		{[]string{"Navigation", "suite2", "nested1", "test1"}, 28, false},
		{[]string{"Navigation", "suite2", "nested1", "fuzzes \"quoted\" ✓"}, 30, false},
		{[]string{"Navigation", "suite2", "later"}, 34, false},
	}

	if len(cases) != len(expected) {
		t.Fatalf("expected %d cases, got %d: %+v", len(expected), len(cases), cases)
	}

	for i, want := range expected {
		got := cases[i]
		if !equalLabels(got.Labels, want.path) {
			t.Errorf("case %d: expected labels %q, got %q", i, want.path, got.Labels)
		}
		if got.Line != want.line {
			t.Errorf("case %d (%s): expected line %d, got %d", i, got.Name(), want.line, got.Line)
		}
		if got.IsSuite != want.isSuite {
			t.Errorf("case %d (%s): expected suite=%v", i, got.Name(), want.isSuite)
		}
		if !got.Path.Equal(label.ToPath(want.path)) {
			t.Errorf("case %d: path %s does not match labels", i, got.Path)
		}
	}

	t.Run("returns error for non-existent file", func(t *testing.T) {
		_, err := parser.FindTests("/non/existent/file.elm")
		if err == nil {
			t.Error("expected error for non-existent file")
		}
	})
}

func TestParser_Locate(t *testing.T) {
	parser := NewParser()
	file := writeNavigation(t)

	tests := []struct {
		name     string
		labels   []string
		isSuite  bool
		expected int
	}{
		{name: "top level suite", labels: []string{"Navigation", "suite1"}, isSuite: true, expected: 10},
		{name: "test in suite", labels: []string{"Navigation", "suite1", "test1"}, expected: 11},
		{name: "top level test", labels: []string{"Navigation", "test1"}, expected: 18},
		{name: "nested test", labels: []string{"Navigation", "suite2", "nested1", "test1"}, expected: 28},
		{name: "missing top level suite", labels: []string{"Navigation", "suiteMissing"}, isSuite: true, expected: 0},
		{name: "missing top level test", labels: []string{"Navigation", "testMissing"}, expected: 0},
		{name: "missing test in suite", labels: []string{"Navigation", "suite2", "testMissing"}, expected: 0},
		{name: "suite falls back to parent", labels: []string{"Navigation", "suite2", "nestedMissing"}, isSuite: true, expected: 24},
		{name: "suite falls back to nested parent", labels: []string{"Navigation", "suite2", "nested1", "testMissing"}, isSuite: true, expected: 27},
		{name: "module only", labels: []string{"Navigation"}, isSuite: true, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := parser.Locate(file, label.ToPath(tt.labels), tt.isSuite)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if line != tt.expected {
				t.Errorf("expected line %d, got %d", tt.expected, line)
			}
		})
	}

	t.Run("undecodable path", func(t *testing.T) {
		if _, err := parser.Locate(file, label.NewPath("Navigation", "%zz"), false); err == nil {
			t.Error("expected codec error")
		}
	})
}

const qualifiedModule = `module Qualified exposing (suite)

import Expect
import Test as T


suite : T.Test
suite =
    T.describe "suite"
        [ T.test "works" <|
            \_ -> Expect.pass
        , Test.describe "inner"
            [ T.fuzz Fuzz.int "fuzzed" <|
                \_ -> Expect.pass
            ]
        ]
`

func TestParser_QualifiedDeclarations(t *testing.T) {
	parser := NewParser()
	file := filepath.Join(t.TempDir(), "Qualified.elm")
	if err := os.WriteFile(file, []byte(qualifiedModule), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cases, err := parser.FindTests(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []struct {
		path    []string
		line    int
		isSuite bool
	}{
		{[]string{"Qualified", "suite"}, 9, true},
		{[]string{"Qualified", "suite", "works"}, 10, false},
		{[]string{"Qualified", "suite", "inner"}, 12, true},
		{[]string{"Qualified", "suite", "inner", "fuzzed"}, 13, false},
	}
	if len(cases) != len(expected) {
		t.Fatalf("expected %d cases, got %d: %+v", len(expected), len(cases), cases)
	}
	for i, want := range expected {
		got := cases[i]
		if !equalLabels(got.Labels, want.path) || got.Line != want.line || got.IsSuite != want.isSuite {
			t.Errorf("case %d: expected %q at line %d (suite=%v), got %q at line %d (suite=%v)",
				i, want.path, want.line, want.isSuite, got.Labels, got.Line, got.IsSuite)
		}
	}

	line, err := parser.Locate(file, label.ToPath([]string{"Qualified", "suite", "works"}), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != 10 {
		t.Errorf("expected line 10, got %d", line)
	}

	line, err = parser.LocateLabel(file, "fuzzed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != 13 {
		t.Errorf("expected line 13, got %d", line)
	}
}

func TestParser_LocateLabel(t *testing.T) {
	parser := NewParser()
	file := writeNavigation(t)

	tests := []struct {
		label    string
		expected int
	}{
		{"test1", 11},
		{"nested1", 27},
		{"fuzzes \"quoted\" ✓", 30},
		{"later", 34},
		{"missing", 0},
	}

	for _, tt := range tests {
		line, err := parser.LocateLabel(file, tt.label)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if line != tt.expected {
			t.Errorf("%s: expected line %d, got %d", tt.label, tt.expected, line)
		}
	}
}
