package analysis

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/insightloom-cli/internal/dataset"
	"github.com/KaramelBytes/insightloom-cli/internal/logging"
)

var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/KaramelBytes/insightloom-cli"))

// AnalysisID derives a stable identifier from the input bytes and the
// settings that influence the result.
func AnalysisID(raw []byte, cfg Config) string {
	in := cfg.Ingest
	var key strings.Builder
	fmt.Fprintf(&key, "%q|%s|%s|%d|", cfg.FileName, cfg.Department, cfg.Focus, cfg.trendMinValues())
	fmt.Fprintf(&key, "%t|%q|%q|%q|%q|%q|%d|", in.HasHeaders, in.Delimiter, in.DecimalSeparator,
		in.ThousandsSeparator, in.Format, in.SheetName, in.SheetIndex)
	for _, name := range slices.Sorted(maps.Keys(in.KindOverrides)) {
		fmt.Fprintf(&key, "%q=%q,", name, in.KindOverrides[name])
	}
	key.WriteByte('|')
	return uuid.NewSHA1(idNamespace, append([]byte(key.String()), raw...)).String()
}

// Analyze parses raw and runs the full pipeline. Any error, including
// context cancellation, returns a nil report.
func Analyze(ctx context.Context, raw []byte, cfg Config) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ds, err := dataset.ParseNamed(raw, cfg.FileName, cfg.Ingest)
	if err != nil {
		return nil, err
	}
	return Run(ctx, ds, AnalysisID(raw, cfg), cfg)
}

// AnalyzeFile checks the size limit before reading path, then calls Analyze.
func AnalyzeFile(ctx context.Context, path string, cfg Config) (*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if lim := cfg.Ingest.MaxBytes; lim > 0 && info.Size() > lim {
		return nil, &dataset.PayloadTooLargeError{Unit: "bytes", Limit: lim, Actual: info.Size()}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if cfg.FileName == "" {
		cfg.FileName = filepath.Base(path)
	}
	return Analyze(ctx, raw, cfg)
}

// Run executes every stage over an already parsed dataset.
func Run(ctx context.Context, ds *dataset.Dataset, id string, cfg Config) (*Report, error) {
	log := logging.New("analysis")
	started := time.Now()
	w := cfg.workers()

	stats, err := ComputeStatistics(ctx, ds, w)
	if err != nil {
		return nil, err
	}
	log.Debug("statistics computed", "columns", len(stats), "elapsed", time.Since(started))

	patterns, err := DetectPatterns(ctx, ds, w, cfg.trendMinValues())
	if err != nil {
		return nil, err
	}
	log.Debug("patterns detected", "trends", len(patterns.Trends), "correlations", len(patterns.Correlations))

	insights := SynthesizeInsights(InsightInput{
		Statistics: stats,
		Patterns:   patterns,
		Department: cfg.Department,
		Rows:       ds.RowCount(),
		Columns:    ds.ColumnCount(),
	})
	recs := Recommend(insights, patterns.Correlations, cfg.Department)

	viz, err := PrepareVisualizations(ctx, ds, w)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep := Assemble(Parts{
		ID:                 id,
		Dataset:            ds,
		Config:             cfg,
		Timestamp:          cfg.now().UTC(),
		Statistics:         stats,
		Patterns:           patterns,
		Insights:           insights,
		Recommendations:    recs,
		Anomalies:          DetectAnomalies(stats),
		DataQuality:        AssessDataQuality(ds),
		PredictiveInsights: Project(patterns.Trends, stats),
		Visualizations:     viz,
	})
	log.Info("analysis complete",
		"file", rep.Metadata.FileName,
		"rows", rep.Metadata.TotalRows,
		"insights", len(rep.Insights),
		"elapsed", time.Since(started))
	return rep, nil
}
