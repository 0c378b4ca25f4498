package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

const (
	testModule   = "module Example exposing (..)\n\nimport Expect\nimport Test exposing (..)\n"
	helperModule = "module Helpers exposing (..)\n\nimport Html\n"
)

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()

	files := map[string]string{
		"tests/Example.elm":                    testModule,
		"tests/Parser/ExpressionTest.elm":      "module Parser.ExpressionTest exposing (suite)\n\nimport Test as T\n",
		"tests/Parser/Helpers.elm":             helperModule,
		"tests/Parser/TestUtils.elm":           "module Parser.TestUtils exposing (..)\n\nimport Test.Runner\n",
		"tests/elm-stuff/generated/Runner.elm": testModule,
		"tests/.hidden/Secret.elm":             testModule,
		"tests/README.md":                      "import Test\n",
	}
	for file, content := range files {
		fullPath := filepath.Join(tmpDir, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}

	scanner := NewScanner([]string{"elm-stuff", "node_modules"})

	t.Run("finds test modules only", func(t *testing.T) {
		results, err := scanner.Scan(filepath.Join(tmpDir, "tests"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{
			filepath.Join(tmpDir, "tests", "Example.elm"),
			filepath.Join(tmpDir, "tests", "Parser", "ExpressionTest.elm"),
		}
		if len(results) != len(expected) {
			t.Fatalf("expected %d test files, got %d: %v", len(expected), len(results), results)
		}
		for i := range expected {
			if results[i] != expected[i] {
				t.Errorf("expected %s at %d, got %s", expected[i], i, results[i])
			}
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(tmpDir, "tests", "Example.elm"))
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}
