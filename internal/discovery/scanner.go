package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"elmtl/internal/label"
)

// import Test, import Test exposing (..), import Test as T
var testImportPattern = regexp.MustCompile(`(?m)^import\s+Test(?:\s|$)`)

// Scanner finds Elm test modules below a tests directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner that never descends into skipDirs
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool, len(skipDirs))
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan returns every .elm file under root that imports the Test module, in
// lexical order. Helper modules without tests are left out since elm-test
// would reject them as having nothing to run.
func (s *Scanner) Scan(root string) ([]string, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	var modules []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if name := d.Name(); strings.HasPrefix(name, ".") || s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), label.ModuleExt) {
			return nil
		}
		ok, err := isTestModule(path)
		if err != nil {
			return err
		}
		if ok {
			modules = append(modules, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return modules, nil
}

func isTestModule(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return testImportPattern.Match(content), nil
}
