package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/insightloom-cli/internal/config"
	"github.com/KaramelBytes/insightloom-cli/internal/logging"
)

var (
	cfgFile  string
	debug    bool
	logLevel string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "insightloom",
	Short: "InsightLoom CLI: turn tabular business data into an analytics report",
	Long: `InsightLoom reads a CSV, TSV or XLSX file, infers its schema and produces a report with
descriptive statistics, trends, correlations, anomalies, department-specific insights,
recommendations, simple predictions, chart-ready series and an executive summary.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.insightloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

func loadConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to read .env: %v\n", err)
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = nil
	}
	cfg = c

	level := slog.LevelInfo
	format := "text"
	if cfg != nil {
		format = cfg.LogFormat
		if l, err := logging.ParseLevel(cfg.LogLevel); err == nil {
			level = l
		}
	}
	if logLevel != "" {
		l, err := logging.ParseLevel(logLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
		} else {
			level = l
		}
	}
	if debug {
		level = slog.LevelDebug
	}
	logging.Init(level, format)
}

// currentConfig returns the loaded configuration, loading it on demand.
func currentConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}
