package storage

import (
	"pta/internal/config"
	"pta/internal/domain"
)

// Storage persists and loads analysis results (e.g. for the show and browse commands).
type Storage interface {
	Save(output domain.AnalysisOutput) error
	Load() (*domain.AnalysisOutput, error)
}

// JSONStorage stores results in a JSON file at the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// Path returns the file the storage reads and writes
func (s *JSONStorage) Path() string {
	return s.cfg.GetOutputPath()
}
