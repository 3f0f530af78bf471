package ui

import "pta/internal/domain"

// Viewer displays analysis results in an interactive TUI
type Viewer interface {
	View(output *domain.AnalysisOutput) error
}
