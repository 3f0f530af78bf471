package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultRootDir is the directory scanned for test files
	DefaultRootDir = "tests"
	// DefaultOutputFile is the default output JSON file name
	DefaultOutputFile = "test_analysis.json"
	// DefaultFilePrefix is the prefix a test file name must start with
	DefaultFilePrefix = "test_"
	// DefaultFileSuffix is the suffix a test file name must end with
	DefaultFileSuffix = ".py"
	// DefaultConfigFile is looked up in the working directory when --config is not given
	DefaultConfigFile = "pta.yaml"
	// DefaultEnvFile is loaded from the working directory when present
	DefaultEnvFile = ".env"

	// EnvRootDir overrides the root directory
	EnvRootDir = "PTA_ROOT_DIR"
	// EnvOutputPath overrides the output path
	EnvOutputPath = "PTA_OUTPUT_PATH"
)

// DefaultPathsToIgnore are directory names pruned while scanning
var DefaultPathsToIgnore = []string{
	"__pycache__",
	".git",
	"node_modules",
}

// DefaultOutputPath returns the output path used when none is configured
func DefaultOutputPath() string {
	return filepath.Join(os.TempDir(), DefaultOutputFile)
}
