package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file and default settings
const (
	EnvProcessors = "ELMTL_PROCESSORS"
	EnvElmTest    = "ELMTL_ELM_TEST"
	EnvTestsDir   = "ELMTL_TESTS_DIR"
)

// LoadFile merges a YAML config file into cfg. A missing file is not an error.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fileCfg.ProjectPath != "" {
		cfg.ProjectPath = fileCfg.ProjectPath
	}
	if fileCfg.TestsDir != "" {
		cfg.TestsDir = fileCfg.TestsDir
	}
	if fileCfg.ElmTestCommand != "" {
		cfg.ElmTestCommand = fileCfg.ElmTestCommand
	}
	if fileCfg.OutputJSONFile != "" {
		cfg.OutputJSONFile = fileCfg.OutputJSONFile
	}
	if fileCfg.OutputJSONDir != "" {
		cfg.OutputJSONDir = fileCfg.OutputJSONDir
	}
	if fileCfg.Processors > 0 {
		cfg.Processors = fileCfg.Processors
	}
	if len(fileCfg.PathsToIgnore) > 0 {
		cfg.PathsToIgnore = append(cfg.PathsToIgnore, fileCfg.PathsToIgnore...)
	}
	return nil
}

// LoadEnv loads an optional .env file and applies ELMTL_* overrides.
// Variables already set in the process environment win over the file.
func LoadEnv(cfg *Config, envPath string) error {
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env %s: %w", envPath, err)
	}

	if v := os.Getenv(EnvProcessors); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", EnvProcessors, v)
		}
		cfg.Processors = n
	}
	if v := os.Getenv(EnvElmTest); v != "" {
		cfg.ElmTestCommand = v
	}
	if v := os.Getenv(EnvTestsDir); v != "" {
		cfg.TestsDir = v
	}
	return nil
}

// Load builds the config for a project: defaults, then the YAML file, then the environment
func Load(projectPath string) (*Config, error) {
	cfg := New()
	if projectPath != "" {
		cfg.ProjectPath = projectPath
	}
	if err := LoadFile(cfg, filepath.Join(cfg.ProjectPath, DefaultConfigFile)); err != nil {
		return nil, err
	}
	if err := LoadEnv(cfg, filepath.Join(cfg.ProjectPath, DefaultEnvFile)); err != nil {
		return nil, err
	}
	return cfg, nil
}
