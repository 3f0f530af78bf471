package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pta/internal/cli"
	"pta/internal/config"
	"pta/internal/discovery"
	"pta/internal/storage"
	"pta/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	config *config.Config
	out    io.Writer
	logger *zap.Logger

	Analyze *AnalyzeCommand
	List    *ListCommand
	Show    *ShowCommand
	Browse  *BrowseCommand
}

// NewCommands creates the command set. Dependencies are wired once flags
// have been parsed and the configuration is loaded.
func NewCommands(cfg *config.Config, out io.Writer) *Commands {
	return &Commands{config: cfg, out: out, logger: zap.NewNop()}
}

// setup initializes the logger, loads configuration and wires dependencies
func (c *Commands) setup(flags *cli.Flags) error {
	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if flags.Verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := logCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger = logger

	loaded, err := config.Load(flags.ToConfigFlags())
	if err != nil {
		return err
	}
	// Update in place so everything holding the pointer sees the loaded values
	*c.config = *loaded

	c.logger.Debug("Configuration loaded",
		zap.String("root_dir", c.config.RootDir),
		zap.String("output_path", c.config.GetOutputPath()),
		zap.Strings("paths_to_ignore", c.config.PathsToIgnore))

	c.wire()
	return nil
}

func (c *Commands) wire() {
	cfg := c.config
	scanner := discovery.NewScanner(cfg.FilePrefix, cfg.FileSuffix, cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	extractor := discovery.NewExtractor(c.logger)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, extractor, c.out)
	viewer := ui.NewReportViewer(c.out)

	c.Analyze = NewAnalyzeCommand(cfg, c.logger, scanner, filter, extractor, jsonStorage, formatter, c.out)
	c.List = NewListCommand(cfg, scanner, filter, formatter, c.out)
	c.Show = NewShowCommand(cfg, jsonStorage, formatter)
	c.Browse = NewBrowseCommand(jsonStorage, viewer)
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return c.setup(flags)
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = c.logger.Sync()
	}
	rootCmd.PersistentFlags().StringVarP(&flags.RootDir, "root", "r", "", "Directory to scan for test files (default \""+config.DefaultRootDir+"\")")
	rootCmd.PersistentFlags().StringVarP(&flags.OutputPath, "output", "o", "", "Path of the JSON results file (default $TMPDIR/"+config.DefaultOutputFile+")")
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "YAML config file (default ./"+config.DefaultConfigFile+" when present)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging on stderr")

	// Analyze command
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze test files and write a report",
		Long:  "Discover test files, extract test functions with their decorators, classify them by module and priority, print a report and save it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Analyze.Execute(cmd, args)
		},
	}
	analyzeCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by name pattern (supports wildcards, e.g. 'test_*exchange*.py')")
	analyzeCmd.Flags().BoolVar(&flags.KeepGoing, "keep-going", false, "Skip unreadable test files instead of aborting")
	analyzeCmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "Disable the progress bar")
	analyzeCmd.Flags().BoolVarP(&flags.SummaryOnly, "summary-only", "s", false, "Print only the module summary")
	rootCmd.AddCommand(analyzeCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered test files",
		Long:  "Scan and list test files without writing a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.List.Execute(cmd, args)
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by name pattern (supports wildcards, e.g. 'test_*exchange*.py')")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "Show test functions under each file")
	rootCmd.AddCommand(listCmd)

	// Show command
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the report from the last analysis",
		Long:  "Load the saved JSON results and print the report again without rescanning",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Show.Execute(cmd, args)
		},
	}
	showCmd.Flags().BoolVarP(&flags.SummaryOnly, "summary-only", "s", false, "Print only the module summary")
	rootCmd.AddCommand(showCmd)

	// Browse command
	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the last analysis interactively",
		Long:  "Display the saved analysis results in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Browse.Execute(cmd, args)
		},
	}
	rootCmd.AddCommand(browseCmd)
}
