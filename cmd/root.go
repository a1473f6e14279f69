package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/dsreport-cli/internal/config"
	"github.com/KaramelBytes/dsreport-cli/internal/logger"
)

var (
	cfgFile string
	debug   bool
	noColor bool

	// Loaded configuration
	cfg *cfgpkg.Global
	// Application logger, built after config load
	appLog = logger.Nop()

	nowFunc = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "dsreport",
	Short: "dsreport: profile CSV/XLSX datasets and write ML-readiness reports",
	Long: `dsreport parses tabular datasets, infers column types, computes descriptive
statistics, assesses data quality (missing values, ML suitability, class balance)
and renders the results as a terminal view or a Markdown/HTML/JSON report.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called by main.main()
func Execute() {
	defer func() { _ = appLog.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.Red.Sprint("✗ Error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.dsreport/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// setup loads configuration and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	if noColor {
		color.Disable()
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so read-only commands still work
		warnf(cmd.ErrOrStderr(), "failed to load config: %v", err)
		c = &cfgpkg.Global{
			DefaultFormat: "md",
			Delimiter:     ",",
			PreviewRows:   5,
			BatchJobs:     4,
			LogLevel:      "info",
			LogFormat:     "text",
			LogOutput:     "stderr",
		}
	}
	cfg = c

	lc := cfg.Logging()
	if debug {
		lc.Level = "debug"
	}
	l, err := logger.New(lc)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	appLog = l
	appLog.Debugw("config loaded", "projects_dir", cfg.ProjectsDir, "format", cfg.DefaultFormat)
	return nil
}

func successf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, color.Green.Sprint("✓ ")+fmt.Sprintf(format, args...))
}

func warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, color.Yellow.Sprint("⚠ ")+fmt.Sprintf(format, args...))
}
