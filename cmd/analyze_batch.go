package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/insightloom-cli/internal/analysis"
	"github.com/KaramelBytes/insightloom-cli/internal/export"
	"github.com/KaramelBytes/insightloom-cli/internal/format"
	"github.com/KaramelBytes/insightloom-cli/internal/logging"
	"github.com/KaramelBytes/insightloom-cli/internal/utils"
)

var (
	abFlags     analyzeFlags
	abOutputDir string
	abJobs      int
	abKeepGoing bool
	abQuiet     bool
)

type batchResult struct {
	path    string
	report  *analysis.Report
	body    []byte
	written string
	elapsed time.Duration
	err     error
}

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple CSV/TSV/XLSX files with progress and a summary table",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		ac, outFmt, timeout, err := abFlags.build(cmd)
		if err != nil {
			return err
		}
		outDir := abOutputDir
		if !cmd.Flags().Changed("output-dir") && cfg != nil {
			outDir = cfg.OutputDir
		}
		if outDir != "" {
			if err := utils.EnsureDir(outDir); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}

		dests := make([]string, len(files))
		if outDir != "" {
			dests = reportPaths(outDir, files, outFmt.Ext())
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		log := logging.New("batch")
		stdout := cmd.OutOrStdout()
		// Reports go to stdout when there is no output dir; keep it clean.
		progress := stdout
		if outDir == "" {
			progress = cmd.ErrOrStderr()
		}
		total := len(files)
		results := make([]batchResult, total)

		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(max(abJobs, 1))
		for i, path := range files {
			g.Go(func() error {
				if !abQuiet {
					mu.Lock()
					fmt.Fprintf(progress, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
					mu.Unlock()
				}
				res := runOne(gctx, path, ac, outFmt, dests[i], timeout)
				results[i] = res
				if res.err != nil {
					log.Warn("analysis failed", "file", path, "error", res.err)
					if !abKeepGoing {
						return res.err
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		failed := 0
		t := format.NewTable(format.ASCII)
		t.Header("File", "Rows", "Insights", "Recommendations", "Elapsed", "OK")
		t.Columns(
			format.ColumnConfig{Number: 2, Align: format.AlignRight},
			format.ColumnConfig{Number: 3, Align: format.AlignRight},
			format.ColumnConfig{Number: 4, Align: format.AlignRight},
		)
		for _, r := range results {
			if r.err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", r.path, r.err)
				t.Row(filepath.Base(r.path), "-", "-", "-", format.Duration(r.elapsed), format.Mark(false))
				continue
			}
			switch {
			case r.written != "":
				if !abQuiet {
					fmt.Fprintf(stdout, "✓ Wrote %s\n", r.written)
				}
			default:
				if _, err := stdout.Write(r.body); err != nil {
					return err
				}
			}
			md := r.report.Metadata
			t.Row(filepath.Base(r.path), md.TotalRows, len(r.report.Insights), len(r.report.Recommendations),
				format.Duration(r.elapsed), format.Mark(true))
		}
		if !abQuiet {
			fmt.Fprintln(progress, t.String())
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, total)
		}
		return nil
	},
}

// expandInputs resolves globs, keeps literal paths that exist, dedupes and sorts.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

// runOne analyzes path and, when dst is set, writes the rendered report there.
func runOne(ctx context.Context, path string, ac analysis.Config, outFmt export.Format, dst string, timeout time.Duration) batchResult {
	started := time.Now()
	res := batchResult{path: path}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	rep, err := analysis.AnalyzeFile(ctx, path, ac)
	if err != nil {
		res.err = describeError(path, err)
		res.elapsed = time.Since(started)
		return res
	}
	body, err := export.Render(rep, outFmt)
	if err != nil {
		res.err = err
		res.elapsed = time.Since(started)
		return res
	}
	res.report, res.body = rep, body
	if dst != "" {
		if err := utils.SafeWriteFile(dst, body); err != nil {
			res.err = fmt.Errorf("write report: %w", err)
		} else {
			res.written = dst
		}
	}
	res.elapsed = time.Since(started)
	return res
}

// reportPaths assigns each input a report file, adding a __N suffix when the
// name is already taken in this batch or on disk.
func reportPaths(outDir string, files []string, ext string) []string {
	out := make([]string, len(files))
	taken := map[string]bool{}
	for i, f := range files {
		dst := utils.ReportPath(outDir, f, ext)
		base := strings.TrimSuffix(dst, ".report."+ext)
		for n := 2; taken[dst] || fileExists(dst); n++ {
			dst = fmt.Sprintf("%s__%d.report.%s", base, n, ext)
		}
		taken[dst] = true
		out[i] = dst
	}
	return out
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	abFlags.register(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVarP(&abOutputDir, "output-dir", "O", "", "directory for <name>.report.<ext> files (stdout if empty)")
	analyzeBatchCmd.Flags().IntVarP(&abJobs, "jobs", "j", 2, "files analyzed concurrently")
	analyzeBatchCmd.Flags().BoolVar(&abKeepGoing, "keep-going", false, "continue with remaining files after a failure")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
}
