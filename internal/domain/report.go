package domain

// FileReport holds everything extracted from a single test file
type FileReport struct {
	File              string       `json:"file"`
	TotalLines        int          `json:"total_lines"`
	TestCount         int          `json:"test_count"`
	Tests             []TestRecord `json:"tests"`
	ParametrizedCount int          `json:"parametrized_count"`
	SkippedCount      int          `json:"skipped_count"`
	Classes           []ClassInfo  `json:"classes"`
}

// HasTests reports whether the file contains at least one test function
func (r FileReport) HasTests() bool {
	return len(r.Tests) > 0
}

// ModuleStats aggregates the files attributed to one module
type ModuleStats struct {
	Files      int `json:"files"`
	Tests      int `json:"tests"`
	TotalLines int `json:"total_lines"`
}

// Summary contains the run-wide counters
type Summary struct {
	TotalFiles    int                    `json:"total_files"`
	TotalTests    int                    `json:"total_tests"`
	TotalLines    int                    `json:"total_lines"`
	ModuleSummary map[Module]ModuleStats `json:"module_summary"`
}

// AnalysisOutput is the complete document written to the output file
type AnalysisOutput struct {
	Summary Summary      `json:"summary"`
	Files   []FileReport `json:"files"`
}
