package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar reports extraction progress
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	total int
}

// NewProgressBar creates a new progress bar over count files written to w
func NewProgressBar(count int, w io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(0, count)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar, total: count}
}

// Update sets the number of files analyzed so far
func (p *ProgressBar) Update(done int) {
	_ = p.bar.Set(done)
	p.bar.Describe(describe(done, p.total))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}

func describe(done, total int) string {
	return color.CyanString("Analyzing tests: ") + color.GreenString("[%d/%d files]", done, total)
}
