package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pta/internal/cli"
	"pta/internal/config"
	"pta/internal/domain"
	"pta/internal/storage"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd := &cobra.Command{Use: "pta", SilenceErrors: true, SilenceUsage: true}
	var flags cli.Flags
	NewCommands(config.New(), &out).Register(rootCmd, &flags)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSuite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"test_persistence.py": "import pytest\n\n\n\n\n\n\n\n\ndef test_trade_save():\n    pass\n",
		"exchange/test_binance.py": "@pytest.mark.skip\n" +
			"def test_fetch_ticker():\n" +
			"    pass\n" +
			"\n" +
			"@pytest.mark.parametrize('side', ['buy', 'sell'])\n" +
			"def test_create_order(side):\n" +
			"    pass\n",
		"test_conftest_helpers.py":      "def helper():\n    pass\n",
		"__pycache__/test_stale.py":     "def test_stale():\n",
		"exchange/conftest.py":          "def test_not_collected():\n",
		"rpc/test_rpc_telegram.py":      "class TestTelegram(object):\n    def test_status(self):\n        pass\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestAnalyzeCommand(t *testing.T) {
	root := writeSuite(t)
	outPath := filepath.Join(t.TempDir(), "analysis.json")

	out, err := run(t, "analyze", "--root", root, "--output", outPath, "--no-progress")
	require.NoError(t, err)

	assert.Contains(t, out, "Found 4 test file(s)")
	assert.Contains(t, out, "File: test_persistence.py")
	assert.Contains(t, out, "    Line   10 | [P0] | test_trade_save")
	assert.Contains(t, out, "    Line    2 | [P1] | test_fetch_ticker [SKIP]")
	assert.Contains(t, out, "    Line    6 | [P1] | test_create_order [PARAM]")
	assert.Contains(t, out, "  Classes: TestTelegram")
	assert.NotContains(t, out, "test_stale")
	assert.NotContains(t, out, "test_not_collected")
	assert.Contains(t, out, "Results saved to "+outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var output domain.AnalysisOutput
	require.NoError(t, json.Unmarshal(data, &output))

	assert.Equal(t, 4, output.Summary.TotalFiles)
	assert.Len(t, output.Files, 4)

	sum := 0
	for _, f := range output.Files {
		sum += f.TestCount
	}
	assert.Equal(t, 4, output.Summary.TotalTests)
	assert.Equal(t, sum, output.Summary.TotalTests)

	// The helper-only file counts as a file but not toward any module
	assert.Equal(t, map[domain.Module]domain.ModuleStats{
		domain.ModulePersistence: {Files: 1, Tests: 1, TotalLines: 12},
		domain.ModuleExchange:    {Files: 1, Tests: 2, TotalLines: 8},
		domain.ModuleRPC:         {Files: 1, Tests: 1, TotalLines: 4},
	}, output.Summary.ModuleSummary)

	// Files are stored in discovery order
	assert.Equal(t, "exchange/test_binance.py", output.Files[0].File)
}

func TestAnalyzeCommand_Filter(t *testing.T) {
	root := writeSuite(t)
	outPath := filepath.Join(t.TempDir(), "analysis.json")

	out, err := run(t, "analyze", "-r", root, "-o", outPath, "--no-progress", "-f", "*rpc*", "-s")
	require.NoError(t, err)

	assert.Contains(t, out, "Found 1 test file(s)")
	assert.NotContains(t, out, "Detailed Test Listing")
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		outPath := filepath.Join(t.TempDir(), "analysis.json")
		_, err := run(t, "analyze", "--root", filepath.Join(t.TempDir(), "missing"), "--output", outPath, "--no-progress")
		assert.Error(t, err)
		assert.NoFileExists(t, outPath)
	})

	t.Run("undecodable file aborts without writing", func(t *testing.T) {
		root := writeSuite(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, "test_binary.py"), []byte("\xff\xfe\x00"), 0644))
		outPath := filepath.Join(t.TempDir(), "analysis.json")

		_, err := run(t, "analyze", "--root", root, "--output", outPath, "--no-progress")
		assert.Error(t, err)
		assert.NoFileExists(t, outPath)
	})

	t.Run("keep going skips the bad file", func(t *testing.T) {
		root := writeSuite(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, "test_binary.py"), []byte("\xff\xfe\x00"), 0644))
		outPath := filepath.Join(t.TempDir(), "analysis.json")

		out, err := run(t, "analyze", "--root", root, "--output", outPath, "--no-progress", "--keep-going")
		require.NoError(t, err)
		assert.Contains(t, out, "Found 4 test file(s)")
		assert.FileExists(t, outPath)
	})
}

func TestShowCommand(t *testing.T) {
	root := writeSuite(t)
	outPath := filepath.Join(t.TempDir(), "analysis.json")

	_, err := run(t, "analyze", "--root", root, "--output", outPath, "--no-progress")
	require.NoError(t, err)

	out, err := run(t, "show", "--output", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Module Summary")
	assert.Contains(t, out, "test_trade_save")

	t.Run("no saved results", func(t *testing.T) {
		_, err := run(t, "show", "--output", filepath.Join(t.TempDir(), "none.json"))
		assert.ErrorIs(t, err, storage.ErrNoResults)
	})
}

func TestListCommand(t *testing.T) {
	root := writeSuite(t)

	t.Run("files", func(t *testing.T) {
		out, err := run(t, "list", "--root", root)
		require.NoError(t, err)
		assert.Contains(t, out, "Found 4 test file(s):")
		assert.Contains(t, out, "├── exchange/test_binance.py")
		assert.Contains(t, out, "└── test_persistence.py")
	})

	t.Run("test cases", func(t *testing.T) {
		out, err := run(t, "list", "--root", root, "-c", "-f", "test_binance.py")
		require.NoError(t, err)
		assert.Contains(t, out, "└── exchange/test_binance.py")
		assert.Contains(t, out, "    ├── [P1] test_fetch_ticker [SKIP]")
		assert.Contains(t, out, "    └── [P1] test_create_order [PARAM]")
	})

	t.Run("no matches", func(t *testing.T) {
		out, err := run(t, "list", "--root", root, "-f", "*nothing*")
		require.NoError(t, err)
		assert.Contains(t, out, "No test files found")
	})
}
