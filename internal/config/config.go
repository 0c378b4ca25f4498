package config

import (
	"path/filepath"

	"elmtl/internal/label"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath    string `yaml:"project_path"`
	TestsDir       string `yaml:"tests_dir"`
	ElmTestCommand string `yaml:"elm_test"`

	// Output settings
	OutputJSONFile string `yaml:"output_file"`
	OutputJSONDir  string `yaml:"output_dir"`

	// Execution settings
	Processors int `yaml:"processors"`

	// Paths to ignore when scanning
	PathsToIgnore []string `yaml:"ignore"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Flags holds command-line flags
type Flags struct {
	Processors   int
	TestPath     string
	NameFilter   string
	TestCases    bool
	FailFast     bool
	OnlyFailed   bool
	OpenFailures bool
	ListFailures bool
	Verbose      bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		TestsDir:       DefaultTestsDir,
		ElmTestCommand: DefaultElmTestCommand,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Processors:     DefaultProcessors,
		Flags:          Flags{Processors: DefaultProcessors},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// ApplyFlags copies parsed flags into the config and applies overrides
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
}

// GetTestPath returns the test path, using flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		// If TestPath is provided, make it relative to ProjectPath if it's not absolute
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}

	return filepath.Join(c.ProjectPath, c.TestsDir)
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// ModuleFile returns the source file of a test module inside the project
func (c *Config) ModuleFile(moduleName string) string {
	return filepath.Join(c.ProjectPath, filepath.FromSlash(label.ModuleFilePath(moduleName)))
}

// RelPath returns path relative to the project, slash separated
func (c *Config) RelPath(path string) string {
	rel, err := filepath.Rel(c.ProjectPath, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
