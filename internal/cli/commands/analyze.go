package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pta/internal/config"
	"pta/internal/discovery"
	"pta/internal/report"
	"pta/internal/storage"
	"pta/internal/ui"
)

// AnalyzeCommand handles the analyze command
type AnalyzeCommand struct {
	config    *config.Config
	logger    *zap.Logger
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	extractor *discovery.Extractor
	storage   *storage.JSONStorage
	formatter *ui.Formatter
	out       io.Writer
}

// NewAnalyzeCommand creates a new AnalyzeCommand
func NewAnalyzeCommand(
	cfg *config.Config,
	logger *zap.Logger,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	extractor *discovery.Extractor,
	st *storage.JSONStorage,
	formatter *ui.Formatter,
	out io.Writer,
) *AnalyzeCommand {
	return &AnalyzeCommand{
		config:    cfg,
		logger:    logger,
		scanner:   scanner,
		filter:    filter,
		extractor: extractor,
		storage:   st,
		formatter: formatter,
		out:       out,
	}
}

// Execute runs the command
func (ac *AnalyzeCommand) Execute(cmd *cobra.Command, args []string) error {
	root := ac.config.GetRootDir()
	files, err := ac.scanner.Scan(root)
	if err != nil {
		return err
	}
	files = ac.filter.FilterByName(files, ac.config.Flags.NameFilter)
	ac.logger.Debug("Discovered test files", zap.String("root", root), zap.Int("count", len(files)))

	if len(files) == 0 {
		color.New(color.FgYellow).Fprintf(ac.out, "No test files found under %s\n", root)
	}

	opts := discovery.ExtractOptions{KeepGoing: ac.config.Flags.KeepGoing}
	var progress *ui.ProgressBar
	if ac.showProgress(len(files)) {
		progress = ui.NewProgressBar(len(files), os.Stderr)
		opts.OnFile = progress.Update
	}

	reports, err := ac.extractor.ExtractAll(root, files, opts)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return err
	}

	output := report.Build(reports)
	ac.formatter.PrintReport(output, ac.config.Flags.SummaryOnly)

	if err := ac.storage.Save(output); err != nil {
		return fmt.Errorf("failed to save analysis results: %w", err)
	}
	ac.logger.Info("Analysis saved",
		zap.String("path", ac.storage.Path()),
		zap.Int("files", output.Summary.TotalFiles),
		zap.Int("tests", output.Summary.TotalTests))

	color.New(color.FgGreen).Fprintf(ac.out, "\nResults saved to %s\n", ac.storage.Path())
	return nil
}

func (ac *AnalyzeCommand) showProgress(count int) bool {
	if ac.config.Flags.NoProgress || count == 0 {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
