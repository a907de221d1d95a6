package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ColumnKind is the inferred type of a column.
type ColumnKind string

const (
	Numeric     ColumnKind = "numeric"
	Categorical ColumnKind = "categorical"
)

// Options controls ingestion.
type Options struct {
	// HasHeaders treats the first non-empty row as column names.
	HasHeaders bool
	// MaxBytes rejects larger inputs; 0 means unlimited.
	MaxBytes int64
	// MaxRows and MaxColumns cap the parsed shape; 0 means unlimited.
	MaxRows    int
	MaxColumns int
	// Delimiter for delimited text. If 0, sniffed from the first line.
	Delimiter rune
	// Numeric parsing locale. When both are 0 a field must parse as a plain
	// Go float literal to count as a number.
	DecimalSeparator   rune
	ThousandsSeparator rune
	// Format forces a reader ("csv", "tsv", "xlsx"). Empty selects by file
	// name, then by content.
	Format string
	// XLSX sheet selection; SheetIndex is 1-based and used when SheetName is empty.
	SheetName  string
	SheetIndex int
	// KindOverrides forces a column to "numeric" or "categorical" by name.
	KindOverrides map[string]string
}

// DefaultOptions returns the ingestion defaults: headers on and a 10 MiB cap.
func DefaultOptions() Options {
	return Options{
		HasHeaders: true,
		MaxBytes:   10 << 20,
		SheetIndex: 1,
	}
}

// Column describes one column of a Dataset.
type Column struct {
	Name         string     `json:"name" yaml:"name"`
	Index        int        `json:"index" yaml:"index"`
	Kind         ColumnKind `json:"kind" yaml:"kind"`
	MissingCount int        `json:"missingCount" yaml:"missingCount"`
}

// Source records where a Dataset came from.
type Source struct {
	Name   string
	Size   int64
	Format string
}

// Dataset is an immutable, fixed-schema table.
type Dataset struct {
	Columns []Column
	Records []Record
	Source  Source
}

func (d *Dataset) RowCount() int    { return len(d.Records) }
func (d *Dataset) ColumnCount() int { return len(d.Columns) }

// NumericColumns returns numeric columns in schema order.
func (d *Dataset) NumericColumns() []Column {
	var out []Column
	for _, c := range d.Columns {
		if c.Kind == Numeric {
			out = append(out, c)
		}
	}
	return out
}

// CategoricalCount returns the number of categorical columns.
func (d *Dataset) CategoricalCount() int {
	return len(d.Columns) - len(d.NumericColumns())
}

// NumericValues returns the finite numbers of column idx in row order.
func (d *Dataset) NumericValues(idx int) []float64 {
	out := make([]float64, 0, len(d.Records))
	for _, r := range d.Records {
		if v := r[idx]; v.IsNumber() {
			out = append(out, v.Num)
		}
	}
	return out
}

// Lookup finds a column by exact name.
func (d *Dataset) Lookup(name string) (Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Parse decodes raw tabular bytes into a Dataset. opt.Format, or the content
// itself, decides which reader runs; delimited text is the fallback.
func Parse(raw []byte, opt Options) (*Dataset, error) {
	return ParseNamed(raw, "", opt)
}

// ParseFile reads and parses path, selecting the reader by extension.
func ParseFile(path string, opt Options) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if opt.MaxBytes > 0 && info.Size() > opt.MaxBytes {
		return nil, &PayloadTooLargeError{Unit: "bytes", Limit: opt.MaxBytes, Actual: info.Size()}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return ParseNamed(raw, filepath.Base(path), opt)
}

// ParseNamed is Parse with a file name used for reader selection and error
// messages.
func ParseNamed(raw []byte, name string, opt Options) (*Dataset, error) {
	if opt.MaxBytes > 0 && int64(len(raw)) > opt.MaxBytes {
		return nil, &PayloadTooLargeError{Unit: "bytes", Limit: opt.MaxBytes, Actual: int64(len(raw))}
	}
	r, err := selectReader(opt.Format, name, raw)
	if err != nil {
		return nil, err
	}
	rows, err := r.Rows(raw, name, opt)
	if err != nil {
		return nil, err
	}
	ds, err := build(rows, opt)
	if err != nil {
		var empty *EmptyDatasetError
		if errors.As(err, &empty) {
			empty.Source = name
		}
		return nil, err
	}
	ds.Source = Source{Name: name, Size: int64(len(raw)), Format: r.Name()}
	return ds, nil
}

// rawRow is one decoded row before typing. Line is 1-based in the source.
type rawRow struct {
	Line   int
	Fields []string
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func build(rows []rawRow, opt Options) (*Dataset, error) {
	var kept []rawRow
	for _, r := range rows {
		if !blank(r.Fields) {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return nil, &EmptyDatasetError{}
	}

	var names []string
	data := kept
	if opt.HasHeaders {
		names = make([]string, len(kept[0].Fields))
		for i, h := range kept[0].Fields {
			names[i] = strings.TrimSpace(h)
		}
		data = kept[1:]
	} else {
		names = make([]string, len(kept[0].Fields))
	}
	names = uniqueNames(names)
	ncol := len(names)
	if opt.MaxColumns > 0 && ncol > opt.MaxColumns {
		return nil, &PayloadTooLargeError{Unit: "columns", Limit: int64(opt.MaxColumns), Actual: int64(ncol)}
	}
	if opt.MaxRows > 0 && len(data) > opt.MaxRows {
		return nil, &PayloadTooLargeError{Unit: "rows", Limit: int64(opt.MaxRows), Actual: int64(len(data))}
	}

	overrides := map[int]ColumnKind{}
	for name, kind := range opt.KindOverrides {
		idx := -1
		for i, n := range names {
			if strings.EqualFold(n, name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("kind override: column %q not found", name)
		}
		switch ColumnKind(strings.ToLower(strings.TrimSpace(kind))) {
		case Numeric:
			overrides[idx] = Numeric
		case Categorical:
			overrides[idx] = Categorical
		default:
			return nil, &UnsupportedColumnTypeError{Column: name, Type: kind}
		}
	}

	ds := &Dataset{Columns: make([]Column, ncol)}
	for i, n := range names {
		ds.Columns[i] = Column{Name: n, Index: i}
	}

	var (
		firstBad int
		reason   string
		rejected int
	)
	ds.Records = make([]Record, 0, len(data))
	for _, r := range data {
		fields := trimTrailingEmpty(r.Fields, ncol)
		if len(fields) > ncol {
			if rejected == 0 {
				firstBad = r.Line
				reason = fmt.Sprintf("expected %d fields, found %d", ncol, len(fields))
			}
			rejected++
			continue
		}
		rec := make(Record, ncol)
		for j := 0; j < ncol; j++ {
			if j >= len(fields) {
				continue
			}
			rec[j] = convert(fields[j], overrides[j], opt)
		}
		ds.Records = append(ds.Records, rec)
	}
	if rejected > 0 {
		return nil, &MalformedInputError{Line: firstBad, Reason: reason, ParsedRows: len(ds.Records), RejectedRows: rejected}
	}
	if len(ds.Records) == 0 {
		return nil, &EmptyDatasetError{}
	}

	for j := range ds.Columns {
		kind := Categorical
		for _, rec := range ds.Records {
			switch {
			case rec[j].IsAbsent():
				ds.Columns[j].MissingCount++
			case rec[j].IsNumber():
				kind = Numeric
			}
		}
		ds.Columns[j].Kind = kind
	}
	return ds, nil
}

func convert(field string, force ColumnKind, opt Options) Value {
	s := strings.TrimSpace(field)
	if s == "" {
		return AbsentValue()
	}
	if force == Categorical {
		return TextValue(s)
	}
	if f, ok := parseNumber(s, opt); ok {
		return NumberValue(f, s)
	}
	if force == Numeric {
		return AbsentValue()
	}
	return TextValue(s)
}

// trimTrailingEmpty drops empty cells past the schema width so that trailing
// delimiters do not count as extra fields.
func trimTrailingEmpty(fields []string, ncol int) []string {
	for len(fields) > ncol && strings.TrimSpace(fields[len(fields)-1]) == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

func uniqueNames(names []string) []string {
	out := make([]string, len(names))
	seen := map[string]int{}
	for i, n := range names {
		if n == "" {
			n = fmt.Sprintf("column_%d", i+1)
		}
		base := n
		if c := seen[base]; c > 0 {
			n = fmt.Sprintf("%s_%d", base, c+1)
		}
		seen[base]++
		out[i] = n
	}
	return out
}
