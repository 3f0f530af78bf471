package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pta/internal/config"
	"pta/internal/domain"
)

func sampleOutput() domain.AnalysisOutput {
	return domain.AnalysisOutput{
		Summary: domain.Summary{
			TotalFiles: 2,
			TotalTests: 1,
			TotalLines: 14,
			ModuleSummary: map[domain.Module]domain.ModuleStats{
				domain.ModulePersistence: {Files: 1, Tests: 1, TotalLines: 12},
			},
		},
		Files: []domain.FileReport{
			{
				File:       "test_persistence.py",
				TotalLines: 12,
				TestCount:  1,
				Tests: []domain.TestRecord{{
					Name:     "test_trade_save",
					Line:     10,
					File:     "test_persistence.py",
					Priority: domain.PriorityP0,
					Module:   domain.ModulePersistence,
				}},
				Classes: []domain.ClassInfo{},
			},
			{File: "test_empty.py", TotalLines: 2, Tests: []domain.TestRecord{}, Classes: []domain.ClassInfo{}},
		},
	}
}

func newStorage(t *testing.T, path string) *JSONStorage {
	t.Helper()
	cfg := config.New()
	cfg.OutputPath = path
	return NewJSONStorage(cfg)
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test_analysis.json")
	st := newStorage(t, path)

	require.NoError(t, st.Save(sampleOutput()))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleOutput(), *loaded)
}

func TestJSONStorage_Layout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_analysis.json")
	st := newStorage(t, path)
	require.NoError(t, st.Save(sampleOutput()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "summary")
	assert.Contains(t, raw, "files")

	var summary map[string]any
	require.NoError(t, json.Unmarshal(raw["summary"], &summary))
	for _, key := range []string{"total_files", "total_tests", "total_lines", "module_summary"} {
		assert.Contains(t, summary, key)
	}
	assert.True(t, strings.Contains(string(data), `"total_lines": 12`))
}

func TestJSONStorage_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_analysis.json")
	st := newStorage(t, path)

	require.NoError(t, st.Save(sampleOutput()))
	require.NoError(t, st.Save(domain.AnalysisOutput{Files: []domain.FileReport{}}))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Summary.TotalFiles)
	assert.Empty(t, loaded.Files)
}

func TestJSONStorage_LoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		st := newStorage(t, filepath.Join(t.TempDir(), "missing.json"))
		_, err := st.Load()
		assert.ErrorIs(t, err, ErrNoResults)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corrupt.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
		_, err := newStorage(t, path).Load()
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoResults)
	})
}

func TestJSONStorage_SaveError(t *testing.T) {
	// Parent path is a regular file, so the output dir cannot be created
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	st := newStorage(t, filepath.Join(blocker, "out.json"))
	assert.Error(t, st.Save(sampleOutput()))
}
