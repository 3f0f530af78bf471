package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultRootDir, cfg.RootDir)
	assert.Equal(t, DefaultFilePrefix, cfg.FilePrefix)
	assert.Equal(t, DefaultFileSuffix, cfg.FileSuffix)
	assert.Equal(t, DefaultOutputPath(), cfg.OutputPath)
	assert.Equal(t, DefaultPathsToIgnore, cfg.PathsToIgnore)

	// Defaults must not be shared with the config copy
	cfg.PathsToIgnore[0] = "changed"
	assert.NotEqual(t, "changed", DefaultPathsToIgnore[0])
}

func TestConfig_GetOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{name: "relative path", output: "out/results.json"},
		{name: "absolute path", output: "/tmp/results.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{OutputPath: tt.output}
			result := cfg.GetOutputPath()
			assert.True(t, filepath.IsAbs(result), "expected absolute path, got %s", result)
			assert.Equal(t, filepath.Base(tt.output), filepath.Base(result))
		})
	}
}

func TestConfig_GetRootDir(t *testing.T) {
	cfg := &Config{RootDir: "tests/../tests/"}
	assert.Equal(t, "tests", cfg.GetRootDir())
}

func TestLoad_ConfigFile(t *testing.T) {
	unsetEnv(t, EnvRootDir)
	unsetEnv(t, EnvOutputPath)

	path := filepath.Join(t.TempDir(), "pta.yaml")
	content := `root_dir: suite
output_path: /tmp/suite.json
paths_to_ignore:
  - build
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(Flags{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "suite", cfg.RootDir)
	assert.Equal(t, "/tmp/suite.json", cfg.OutputPath)
	assert.Equal(t, []string{"build"}, cfg.PathsToIgnore)
	// Keys absent from the file keep their defaults
	assert.Equal(t, DefaultFilePrefix, cfg.FilePrefix)
	assert.Equal(t, DefaultFileSuffix, cfg.FileSuffix)
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pta.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root_dir: from-file\noutput_path: file.json\n"), 0644))

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv(EnvRootDir, "from-env")
		unsetEnv(t, EnvOutputPath)

		cfg, err := Load(Flags{ConfigFile: path})
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.RootDir)
		assert.Equal(t, "file.json", cfg.OutputPath)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv(EnvRootDir, "from-env")
		t.Setenv(EnvOutputPath, "env.json")

		cfg, err := Load(Flags{ConfigFile: path, RootDir: "from-flag"})
		require.NoError(t, err)
		assert.Equal(t, "from-flag", cfg.RootDir)
		assert.Equal(t, "env.json", cfg.OutputPath)
		assert.Equal(t, "from-flag", cfg.Flags.RootDir)
	})
}

func TestLoad_Errors(t *testing.T) {
	unsetEnv(t, EnvRootDir)
	unsetEnv(t, EnvOutputPath)

	t.Run("missing explicit config file", func(t *testing.T) {
		_, err := Load(Flags{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
		assert.Error(t, err)
	})

	t.Run("malformed config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("root_dir: [unclosed"), 0644))
		_, err := Load(Flags{ConfigFile: path})
		assert.Error(t, err)
	})

	t.Run("suffix without dot fails validation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pta.yaml")
		require.NoError(t, os.WriteFile(path, []byte("file_suffix: py\n"), 0644))
		_, err := Load(Flags{ConfigFile: path})
		assert.ErrorContains(t, err, "invalid config")
	})
}

func TestConfig_LoadEnvFile(t *testing.T) {
	unsetEnv(t, EnvRootDir)
	unsetEnv(t, EnvOutputPath)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PTA_ROOT_DIR=dotenv-root\n"), 0644))

	cfg := New()
	require.NoError(t, cfg.loadEnv(envFile))
	assert.Equal(t, "dotenv-root", cfg.RootDir)
	assert.Equal(t, DefaultOutputPath(), cfg.OutputPath)

	t.Run("missing env file is ignored", func(t *testing.T) {
		cfg := New()
		assert.NoError(t, cfg.loadEnv(filepath.Join(t.TempDir(), ".env")))
	})
}

// unsetEnv removes key for the duration of the test and restores it afterwards
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}
