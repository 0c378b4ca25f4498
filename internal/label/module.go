package label

import (
	"path/filepath"
	"strings"
)

const (
	// TestsDir is the folder elm-test reads test modules from.
	TestsDir = "tests"
	// ModuleExt is the extension of an Elm module file.
	ModuleExt = ".elm"
)

// ModuleFilePath derives the conventional source file of a test module,
// e.g. "Foo.Bar" -> "tests/Foo/Bar.elm". The file is not checked for existence.
func ModuleFilePath(moduleName string) string {
	return TestsDir + "/" + strings.ReplaceAll(moduleName, ".", "/") + ModuleExt
}

// ModuleNameFromFile reverses ModuleFilePath. It accepts both slash and OS
// separated paths and reports false for files outside the tests folder.
func ModuleNameFromFile(file string) (string, bool) {
	rel := filepath.ToSlash(file)
	rel, ok := strings.CutPrefix(rel, TestsDir+"/")
	if !ok {
		return "", false
	}
	rel, ok = strings.CutSuffix(rel, ModuleExt)
	if !ok || rel == "" {
		return "", false
	}
	return strings.ReplaceAll(rel, "/", "."), true
}
