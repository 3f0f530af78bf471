package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pta/internal/domain"
)

// ErrNoResults is returned by Load when no analysis has been saved yet
var ErrNoResults = errors.New("no saved analysis results")

// Save writes the analysis output to the configured JSON file, replacing any previous run.
func (s *JSONStorage) Save(output domain.AnalysisOutput) (err error) {
	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close results file: %w", cerr))
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Load reads the last analysis results from the configured JSON file.
func (s *JSONStorage) Load() (*domain.AnalysisOutput, error) {
	path := s.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s, run analyze first", ErrNoResults, path)
		}
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.AnalysisOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}
