package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Scan settings
	RootDir       string   `yaml:"root_dir" validate:"required"`
	FilePrefix    string   `yaml:"file_prefix"`
	FileSuffix    string   `yaml:"file_suffix" validate:"required,startswith=."`
	PathsToIgnore []string `yaml:"paths_to_ignore"`

	// Output settings
	OutputPath string `yaml:"output_path" validate:"required"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Flags holds command-line flags
type Flags struct {
	RootDir     string
	OutputPath  string
	ConfigFile  string
	NameFilter  string
	TestCases   bool
	KeepGoing   bool
	NoProgress  bool
	SummaryOnly bool
	Verbose     bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		RootDir:    DefaultRootDir,
		OutputPath: DefaultOutputPath(),
		FilePrefix: DefaultFilePrefix,
		FileSuffix: DefaultFileSuffix,
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load builds a config from defaults, the YAML config file, the environment
// and finally the command-line flags, each layer overriding the previous one.
func Load(flags Flags) (*Config, error) {
	cfg := New()

	if err := cfg.loadFile(flags.ConfigFile); err != nil {
		return nil, err
	}
	if err := cfg.loadEnv(DefaultEnvFile); err != nil {
		return nil, err
	}
	cfg.applyFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile merges a YAML config file into cfg. An explicit path must exist;
// the default pta.yaml is optional.
func (c *Config) loadFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	// Unmarshal over the defaults so unset keys keep their values
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// loadEnv loads envFile when present and applies the PTA_* overrides
func (c *Config) loadEnv(envFile string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", envFile, err)
	}

	if v := os.Getenv(EnvRootDir); v != "" {
		c.RootDir = v
	}
	if v := os.Getenv(EnvOutputPath); v != "" {
		c.OutputPath = v
	}
	return nil
}

func (c *Config) applyFlags(flags Flags) {
	c.Flags = flags
	if flags.RootDir != "" {
		c.RootDir = flags.RootDir
	}
	if flags.OutputPath != "" {
		c.OutputPath = flags.OutputPath
	}
}

// Validate checks that the config can drive a scan
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// GetRootDir returns the cleaned root directory
func (c *Config) GetRootDir() string {
	return filepath.Clean(c.RootDir)
}

// GetOutputPath returns the absolute path to the output JSON file.
// Resolves to an absolute path so analyze and show always use the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	if abs, err := filepath.Abs(c.OutputPath); err == nil {
		return abs
	}
	return c.OutputPath
}
