package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"pta/internal/classify"
	"pta/internal/domain"
	"pta/internal/report"
)

// ReportViewer browses analysis results file by file in an interactive TUI
type ReportViewer struct {
	out io.Writer
}

// NewReportViewer creates a new ReportViewer. Notices outside the TUI go to out.
func NewReportViewer(out io.Writer) *ReportViewer {
	return &ReportViewer{out: out}
}

// priorityFilters is the cycle used by the F key; "" shows every test
var priorityFilters = append([]domain.Priority{""}, classify.PriorityOrder...)

// View displays the listed test files and their tests
func (rv *ReportViewer) View(output *domain.AnalysisOutput) error {
	files := report.SortForListing(output.Files)
	if len(files) == 0 {
		okColor.Fprintln(rv.out, "No test functions found in the last analysis")
		return nil
	}

	filterIdx := 0
	app := tview.NewApplication()

	// File list (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, file := range files {
		list.AddItem(fileListItemText(i, file), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// List on the left (1/3), details on the right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(browserHeaderText(output.Summary, priorityFilters[filterIdx]))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(files) {
			return
		}
		statsView.SetText(fileStatsText(files[index]))
		detailsView.SetText(fileDetailsText(files[index], priorityFilters[filterIdx]))
		detailsView.ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'f', 'F':
				filterIdx = (filterIdx + 1) % len(priorityFilters)
				updateHeader()
				updateDetails()
				return nil
			case 'q':
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// tview color tags per priority
var priorityTags = map[domain.Priority]string{
	domain.PriorityP0: "[red]",
	domain.PriorityP1: "[yellow]",
	domain.PriorityP2: "[white]",
}

func tviewPriority(p domain.Priority) string {
	tag, ok := priorityTags[p]
	if !ok {
		tag = "[white]"
	}
	return tag + tview.Escape("["+string(p)+"]") + "[white]"
}

func fileListItemText(index int, file domain.FileReport) string {
	first := file.Tests[0]
	return fmt.Sprintf("[yellow]%d.[white] %s %s [gray](%d)[white]",
		index+1, tviewPriority(first.Priority), tview.Escape(file.File), file.TestCount)
}

func browserHeaderText(summary domain.Summary, filter domain.Priority) string {
	shown := "all"
	if filter != "" {
		shown = string(filter)
	}
	return fmt.Sprintf(" %d files, %d tests, %d lines | priority: [yellow]%s[white] | ↑↓ navigate, → details, ← back, [yellow]F[white] filter, q quit ",
		summary.TotalFiles, summary.TotalTests, summary.TotalLines, shown)
}

func fileStatsText(file domain.FileReport) string {
	module := classify.FallbackModule
	if file.HasTests() {
		module = file.Tests[0].Module
	}
	return fmt.Sprintf("[cyan]file:[white] [yellow]%s[white]  [cyan]module:[white] %s\n[cyan]lines:[white] %d  [cyan]tests:[white] %d  [cyan]parametrized:[white] %d  [cyan]skipped:[white] %d\n",
		tview.Escape(file.File), module, file.TotalLines, file.TestCount, file.ParametrizedCount, file.SkippedCount)
}

// fileDetailsText lists the file's classes and tests, keeping only tests of
// the given priority unless filter is empty
func fileDetailsText(file domain.FileReport, filter domain.Priority) string {
	var b strings.Builder

	if len(file.Classes) > 0 {
		b.WriteString("[cyan]Classes:[white]\n")
		for _, c := range file.Classes {
			fmt.Fprintf(&b, "  %-40s line %d\n", c.Name, c.Line)
		}
		b.WriteString("\n")
	}

	b.WriteString("[cyan]Tests:[white]\n")
	shown := 0
	for _, test := range file.Tests {
		if filter != "" && test.Priority != filter {
			continue
		}
		shown++
		fmt.Fprintf(&b, "  line %4d  %s  %s", test.Line, tviewPriority(test.Priority), test.Name)
		if test.Skipped {
			b.WriteString(" [fuchsia]skip[white]")
		}
		if test.Parametrized {
			b.WriteString(" [blue]param[white]")
		}
		if len(test.Marks) > 0 {
			fmt.Fprintf(&b, " [gray]@%s[white]", strings.Join(test.Marks, " @"))
		}
		b.WriteString("\n")
	}
	if shown == 0 {
		fmt.Fprintf(&b, "  [gray]no %s tests in this file[white]\n", filter)
	}

	return b.String()
}
