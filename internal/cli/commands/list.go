package commands

import (
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pta/internal/config"
	"pta/internal/discovery"
	"pta/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	out       io.Writer
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	out io.Writer,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		out:       out,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	files, err := lc.scanner.Scan(lc.config.GetRootDir())
	if err != nil {
		return err
	}

	// Filter tests
	files = lc.filter.FilterByName(files, lc.config.Flags.NameFilter)

	if len(files) == 0 {
		color.New(color.FgYellow).Fprintln(lc.out, "No test files found")
		return nil
	}

	lc.formatter.PrintTestList(files, lc.config.Flags.TestCases)
	return nil
}
