package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/insightloom-cli/internal/analysis"
	"github.com/KaramelBytes/insightloom-cli/internal/export"
	"github.com/KaramelBytes/insightloom-cli/internal/utils"
)

var (
	anaFlags      analyzeFlags
	anaOutputPath string
	anaName       string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|->",
	Short: "Analyze a CSV/TSV/XLSX file and produce a report",
	Long: `Analyze reads one tabular file (or stdin when the argument is "-") and writes a report.
Without --output the report is printed to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ac, format, timeout, err := anaFlags.build(cmd)
		if err != nil {
			return err
		}
		if anaName != "" {
			ac.FileName = anaName
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		var rep *analysis.Report
		if path == "-" {
			rep, err = analyzeStdin(ctx, cmd.InOrStdin(), ac)
		} else {
			rep, err = analysis.AnalyzeFile(ctx, path, ac)
		}
		if err != nil {
			return describeError(path, err)
		}

		out, err := export.Render(rep, format)
		if err != nil {
			return err
		}
		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s report to %s\n", format, anaOutputPath)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func analyzeStdin(ctx context.Context, r io.Reader, ac analysis.Config) (*analysis.Report, error) {
	if ac.FileName == "" {
		ac.FileName = "stdin"
	}
	if lim := ac.Ingest.MaxBytes; lim > 0 {
		// one extra byte lets the parser report the overflow
		r = io.LimitReader(r, lim+1)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return analysis.Analyze(ctx, raw, ac)
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaFlags.register(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().StringVar(&anaName, "name", "", "file name recorded in the report (defaults to the input base name)")
}
