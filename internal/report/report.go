// Package report aggregates extracted file reports into the analysis output.
package report

import (
	"sort"

	"pta/internal/classify"
	"pta/internal/domain"
)

// Build aggregates file reports into the output document.
// Every file counts toward TotalFiles and TotalLines; only files with at
// least one test are attributed to a module, using their first test's module.
func Build(files []domain.FileReport) domain.AnalysisOutput {
	summary := domain.Summary{
		TotalFiles:    len(files),
		ModuleSummary: make(map[domain.Module]domain.ModuleStats),
	}

	for _, file := range files {
		summary.TotalTests += file.TestCount
		summary.TotalLines += file.TotalLines

		if !file.HasTests() {
			continue
		}
		module := file.Tests[0].Module
		stats := summary.ModuleSummary[module]
		stats.Files++
		stats.Tests += file.TestCount
		stats.TotalLines += file.TotalLines
		summary.ModuleSummary[module] = stats
	}

	if files == nil {
		files = []domain.FileReport{}
	}
	return domain.AnalysisOutput{Summary: summary, Files: files}
}

// SortForListing returns the files that contain tests ordered by module and
// then by the priority of their first test. Files keep their discovery order
// within a group. The input slice is not modified.
func SortForListing(files []domain.FileReport) []domain.FileReport {
	listed := make([]domain.FileReport, 0, len(files))
	for _, file := range files {
		if file.HasTests() {
			listed = append(listed, file)
		}
	}

	sort.SliceStable(listed, func(i, j int) bool {
		mi, pi := listingRank(listed[i])
		mj, pj := listingRank(listed[j])
		if mi != mj {
			return mi < mj
		}
		return pi < pj
	})
	return listed
}

func listingRank(file domain.FileReport) (module, priority int) {
	if !file.HasTests() {
		return classify.Unranked, classify.Unranked
	}
	first := file.Tests[0]
	return classify.ModuleRank(first.Module), classify.PriorityRank(first.Priority)
}

// ModuleRow is one line of the module summary table
type ModuleRow struct {
	Module domain.Module
	domain.ModuleStats
}

// ModuleRows returns the module summary ordered by test count, largest first.
// Ties are broken by module listing order.
func ModuleRows(summary domain.Summary) []ModuleRow {
	rows := make([]ModuleRow, 0, len(summary.ModuleSummary))
	for module, stats := range summary.ModuleSummary {
		rows = append(rows, ModuleRow{Module: module, ModuleStats: stats})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Tests != rows[j].Tests {
			return rows[i].Tests > rows[j].Tests
		}
		ri, rj := classify.ModuleRank(rows[i].Module), classify.ModuleRank(rows[j].Module)
		if ri != rj {
			return ri < rj
		}
		return rows[i].Module < rows[j].Module
	})
	return rows
}
