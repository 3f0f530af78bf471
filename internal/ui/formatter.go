package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"pta/internal/config"
	"pta/internal/discovery"
	"pta/internal/domain"
	"pta/internal/report"
)

const ruleWidth = 80

// Formatter formats and displays output
type Formatter struct {
	config    *config.Config
	extractor *discovery.Extractor
	out       io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(cfg *config.Config, extractor *discovery.Extractor, out io.Writer) *Formatter {
	return &Formatter{
		config:    cfg,
		extractor: extractor,
		out:       out,
	}
}

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	fileColor   = color.New(color.FgYellow)
	labelColor  = color.New(color.FgCyan)
	skipColor   = color.New(color.FgMagenta)
	paramColor  = color.New(color.FgBlue)
	okColor     = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed)
)

var priorityColors = map[domain.Priority]*color.Color{
	domain.PriorityP0: color.New(color.FgRed, color.Bold),
	domain.PriorityP1: color.New(color.FgYellow),
	domain.PriorityP2: color.New(color.FgWhite),
}

// PrintReport prints the module summary table followed, unless summaryOnly
// is set, by the per-file test listing
func (f *Formatter) PrintReport(output domain.AnalysisOutput, summaryOnly bool) {
	okColor.Fprintf(f.out, "Found %d test file(s)\n\n", output.Summary.TotalFiles)

	f.PrintSummary(output.Summary)
	if summaryOnly {
		return
	}

	fmt.Fprintln(f.out)
	f.printHeader("Detailed Test Listing (by module and priority)")
	for _, file := range report.SortForListing(output.Files) {
		f.printFile(file)
	}
}

// PrintSummary prints the per-module table and run totals
func (f *Formatter) PrintSummary(summary domain.Summary) {
	f.printHeader("Module Summary")
	for _, row := range report.ModuleRows(summary) {
		fmt.Fprintf(f.out, "%-20s | files: %3d | tests: %4d | lines: %6d\n",
			row.Module, row.Files, row.Tests, row.TotalLines)
	}
	fmt.Fprintln(f.out, strings.Repeat("-", ruleWidth))
	fmt.Fprintf(f.out, "%-20s | files: %3d | tests: %4d | lines: %6d\n",
		"total", summary.TotalFiles, summary.TotalTests, summary.TotalLines)
}

func (f *Formatter) printHeader(title string) {
	rule := strings.Repeat("=", ruleWidth)
	headerColor.Fprintln(f.out, rule)
	headerColor.Fprintln(f.out, title)
	headerColor.Fprintln(f.out, rule)
}

func (f *Formatter) printFile(file domain.FileReport) {
	fmt.Fprintln(f.out)
	fileColor.Fprintf(f.out, "File: %s\n", file.File)
	fmt.Fprintf(f.out, "  Lines: %d | Tests: %d | Parametrized: %d | Skipped: %d\n",
		file.TotalLines, file.TestCount, file.ParametrizedCount, file.SkippedCount)

	if len(file.Classes) > 0 {
		names := make([]string, len(file.Classes))
		for i, c := range file.Classes {
			names[i] = c.Name
		}
		labelColor.Fprintf(f.out, "  Classes: ")
		fmt.Fprintln(f.out, strings.Join(names, ", "))
	}

	labelColor.Fprintln(f.out, "  Tests:")
	for _, test := range file.Tests {
		fmt.Fprintf(f.out, "    Line %4d | %s | %s%s\n",
			test.Line, priorityTag(test.Priority), test.Name, testMarkers(test))
	}
}

func priorityTag(p domain.Priority) string {
	tag := "[" + string(p) + "]"
	if c, ok := priorityColors[p]; ok {
		return c.Sprint(tag)
	}
	return tag
}

func testMarkers(test domain.TestRecord) string {
	var markers string
	if test.Skipped {
		markers += " " + skipColor.Sprint("[SKIP]")
	}
	if test.Parametrized {
		markers += " " + paramColor.Sprint("[PARAM]")
	}
	return markers
}

// PrintTestList prints a list of test files, optionally with their test functions
func (f *Formatter) PrintTestList(files []string, showTestCases bool) {
	root := f.config.GetRootDir()
	okColor.Fprintf(f.out, "Found %d test file(s):\n\n", len(files))

	for i, path := range files {
		isLastFile := i == len(files)-1
		branch, indent := "├── ", "│   "
		if isLastFile {
			branch, indent = "└── ", "    "
		}
		labelColor.Fprintf(f.out, "%s%s\n", branch, discovery.RelativePath(root, path))

		if !showTestCases {
			continue
		}

		file, err := f.extractor.Extract(root, path)
		if err != nil {
			fmt.Fprintf(f.out, "%s└── %s\n", indent, errorColor.Sprintf("error reading test file: %v", err))
			continue
		}
		if !file.HasTests() {
			fmt.Fprintf(f.out, "%s└── %s\n", indent, errorColor.Sprint("(no test cases found)"))
			continue
		}
		for j, test := range file.Tests {
			leaf := "├── "
			if j == len(file.Tests)-1 {
				leaf = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s %s%s\n", indent, leaf,
				priorityTag(test.Priority), fileColor.Sprint(test.Name), testMarkers(test))
		}
	}
}
