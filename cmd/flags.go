package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/insightloom-cli/internal/analysis"
	"github.com/KaramelBytes/insightloom-cli/internal/dataset"
	"github.com/KaramelBytes/insightloom-cli/internal/export"
)

// analyzeFlags are shared by analyze and analyze-batch. A flag only
// overrides the config file when it was set on the command line.
type analyzeFlags struct {
	department     string
	focus          string
	format         string
	inputFormat    string
	delimiter      string
	decimal        string
	thousands      string
	sheetName      string
	sheetIndex     int
	noHeaders      bool
	maxBytes       int64
	maxRows        int
	maxColumns     int
	workers        int
	timeoutSec     int
	trendMinValues int
	columnKinds    []string
}

func (f *analyzeFlags) register(c *cobra.Command) {
	fl := c.Flags()
	fl.StringVarP(&f.department, "department", "D", "", "department rule set: finance|hr|sales|operations|compliance|general")
	fl.StringVar(&f.focus, "focus", "", "analysis focus: sales|financial|hr|operational|customer|general")
	fl.StringVarP(&f.format, "format", "f", "", "report format: json|yaml|markdown|html|text")
	fl.StringVar(&f.inputFormat, "input-format", "", "force input reader: csv|tsv|xlsx (detected if omitted)")
	fl.StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab' (sniffed if omitted)")
	fl.StringVar(&f.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma'")
	fl.StringVar(&f.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space'")
	fl.StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	fl.IntVar(&f.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	fl.BoolVar(&f.noHeaders, "no-headers", false, "treat the first row as data and name columns column_1..N")
	fl.Int64Var(&f.maxBytes, "max-bytes", 0, "reject inputs larger than this many bytes (0 = unlimited)")
	fl.IntVar(&f.maxRows, "max-rows", 0, "reject inputs with more data rows (0 = unlimited)")
	fl.IntVar(&f.maxColumns, "max-columns", 0, "reject inputs with more columns (0 = unlimited)")
	fl.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for per-column stages")
	fl.IntVar(&f.timeoutSec, "timeout", 0, "abort an analysis after this many seconds (0 = no limit)")
	fl.IntVar(&f.trendMinValues, "trend-min-values", 0, "a column needs more than this many values for trend detection")
	fl.StringSliceVar(&f.columnKinds, "column-kind", nil, "force a column type as name=numeric|categorical (repeatable)")
}

// build merges config and changed flags into an analysis config, the
// report format and the per-file timeout.
func (f *analyzeFlags) build(c *cobra.Command) (analysis.Config, export.Format, time.Duration, error) {
	ac := analysis.DefaultConfig()
	g, err := currentConfig()
	if err != nil {
		return ac, "", 0, err
	}
	changed := c.Flags().Changed

	dept, focus, outFmt := g.Department, g.AnalysisFocus, g.OutputFormat
	delim, dec, thou := g.Delimiter, g.DecimalSeparator, g.ThousandsSeparator
	ac.Ingest.HasHeaders = g.HasHeaders
	ac.Ingest.MaxBytes = g.MaxBytes
	ac.Ingest.MaxRows = g.MaxRows
	ac.Ingest.MaxColumns = g.MaxColumns
	ac.Workers = g.Workers
	ac.TrendMinValues = g.TrendMinValues
	timeout := g.TimeoutSec

	if changed("department") {
		dept = f.department
	}
	if changed("focus") {
		focus = f.focus
	}
	if changed("format") {
		outFmt = f.format
	}
	if changed("delimiter") {
		delim = f.delimiter
	}
	if changed("decimal") {
		dec = f.decimal
	}
	if changed("thousands") {
		thou = f.thousands
	}
	if changed("no-headers") {
		ac.Ingest.HasHeaders = !f.noHeaders
	}
	if changed("max-bytes") {
		ac.Ingest.MaxBytes = f.maxBytes
	}
	if changed("max-rows") {
		ac.Ingest.MaxRows = f.maxRows
	}
	if changed("max-columns") {
		ac.Ingest.MaxColumns = f.maxColumns
	}
	if changed("workers") {
		ac.Workers = f.workers
	}
	if changed("timeout") {
		timeout = f.timeoutSec
	}
	if changed("trend-min-values") {
		ac.TrendMinValues = f.trendMinValues
	}

	if ac.Department, err = analysis.ParseDepartment(dept); err != nil {
		return ac, "", 0, err
	}
	if ac.Focus, err = analysis.ParseFocus(focus); err != nil {
		return ac, "", 0, err
	}
	format, err := export.ParseFormat(outFmt)
	if err != nil {
		return ac, "", 0, err
	}
	if ac.Ingest.Delimiter, err = parseDelimiter(delim); err != nil {
		return ac, "", 0, err
	}
	if ac.Ingest.DecimalSeparator, err = parseDecimal(dec); err != nil {
		return ac, "", 0, err
	}
	if ac.Ingest.ThousandsSeparator, err = parseThousands(thou); err != nil {
		return ac, "", 0, err
	}
	ac.Ingest.Format = strings.ToLower(strings.TrimSpace(f.inputFormat))
	ac.Ingest.SheetName = f.sheetName
	ac.Ingest.SheetIndex = f.sheetIndex
	if ac.Ingest.KindOverrides, err = parseColumnKinds(f.columnKinds); err != nil {
		return ac, "", 0, err
	}
	if ac.Workers < 1 {
		return ac, "", 0, fmt.Errorf("workers must be at least 1, got %d", ac.Workers)
	}
	return ac, format, time.Duration(max(timeout, 0)) * time.Second, nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	}
	return 0, fmt.Errorf("unsupported --delimiter: %s", s)
}

func parseDecimal(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ",", "comma":
		return ',', nil
	case ".", "dot":
		return '.', nil
	case "":
		return 0, nil
	}
	return 0, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", s)
}

func parseThousands(s string) (rune, error) {
	switch strings.ToLower(s) {
	case ",":
		return ',', nil
	case ".":
		return '.', nil
	case "space", " ":
		return ' ', nil
	case "":
		return 0, nil
	}
	return 0, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", s)
}

func parseColumnKinds(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, kind, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --column-kind %q (use name=numeric|categorical)", p)
		}
		out[strings.TrimSpace(name)] = strings.ToLower(strings.TrimSpace(kind))
	}
	return out, nil
}

// describeError adds a hint to ingestion failures a user can act on.
func describeError(path string, err error) error {
	var (
		pe *dataset.PayloadTooLargeError
		me *dataset.MalformedInputError
		ue *dataset.UnsupportedFormatError
	)
	switch {
	case errors.As(err, &pe):
		return fmt.Errorf("%s: %w (raise --max-%s)", path, err, pe.Unit)
	case errors.As(err, &me):
		return fmt.Errorf("%s: %w (check quoting or pass --delimiter)", path, err)
	case errors.As(err, &ue):
		return fmt.Errorf("%s: %w (supported: %s)", path, err, strings.Join(dataset.Formats(), ", "))
	}
	return fmt.Errorf("%s: %w", path, err)
}
