package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseInfersKindsAndValues(t *testing.T) {
	raw := []byte("month,region,revenue,units\n" +
		"2024-01,north,100.5,3\n" +
		"2024-02,south,,4\n" +
		"\n" +
		"2024-03,north,120,n/a\n")
	ds, err := Parse(raw, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, ds.Columns, 4)
	assert.Equal(t, 3, ds.RowCount())
	assert.Equal(t, Categorical, ds.Columns[0].Kind)
	assert.Equal(t, Categorical, ds.Columns[1].Kind)
	assert.Equal(t, Numeric, ds.Columns[2].Kind)
	assert.Equal(t, Numeric, ds.Columns[3].Kind)
	assert.Equal(t, 1, ds.Columns[2].MissingCount)

	assert.Equal(t, []float64{100.5, 120}, ds.NumericValues(2))
	assert.Equal(t, []float64{3, 4}, ds.NumericValues(3))
	assert.Equal(t, Text, ds.Records[2][3].Kind)
	assert.True(t, ds.Records[1][2].IsAbsent())
	assert.Equal(t, "csv", ds.Source.Format)
}

func TestParseWholeFieldMustBeNumeric(t *testing.T) {
	ds, err := Parse([]byte("a,b\n12%,1e3\n1 000,NaN\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, Categorical, ds.Columns[0].Kind)
	assert.Equal(t, []float64{1000}, ds.NumericValues(1))
	assert.Equal(t, Text, ds.Records[1][1].Kind, "NaN is not a finite number")
}

func TestParseHeaderless(t *testing.T) {
	opt := DefaultOptions()
	opt.HasHeaders = false
	ds, err := Parse([]byte("1,2\n3,4\n"), opt)
	require.NoError(t, err)
	assert.Equal(t, "column_1", ds.Columns[0].Name)
	assert.Equal(t, "column_2", ds.Columns[1].Name)
	assert.Equal(t, 2, ds.RowCount())
}

func TestParseDuplicateAndBlankHeaders(t *testing.T) {
	ds, err := Parse([]byte("x,x,\n1,2,3\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "x", ds.Columns[0].Name)
	assert.Equal(t, "x_2", ds.Columns[1].Name)
	assert.Equal(t, "column_3", ds.Columns[2].Name)
}

func TestParseShortRowsArePadded(t *testing.T) {
	ds, err := Parse([]byte("a,b,c\n1\n2,3,4\n"), DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 2, ds.RowCount())
	assert.True(t, ds.Records[0][1].IsAbsent())
	assert.True(t, ds.Records[0][2].IsAbsent())
	assert.Equal(t, 1, ds.Columns[2].MissingCount)
}

func TestParseTrailingDelimiterIsTolerated(t *testing.T) {
	ds, err := Parse([]byte("a,b\n1,2,\n3,4,,\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, ds.RowCount())
}

func TestParseLongRowsAreMalformed(t *testing.T) {
	_, err := Parse([]byte("a,b\n1,2\n3,4,5\n6,7\n8,9,10\n"), DefaultOptions())
	var me *MalformedInputError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 3, me.Line)
	assert.Equal(t, 2, me.ParsedRows)
	assert.Equal(t, 2, me.RejectedRows)
}

func TestParseBareQuoteIsMalformed(t *testing.T) {
	_, err := Parse([]byte("a,b\n1,\"x\"y\n"), DefaultOptions())
	var me *MalformedInputError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 2, me.Line)
}

func TestParseEmpty(t *testing.T) {
	for name, raw := range map[string]string{
		"zero bytes":  "",
		"blank lines": "\n\n ,\n",
		"header only": "a,b,c\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw), DefaultOptions())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrEmptyDataset))
			var ee *EmptyDatasetError
			assert.ErrorAs(t, err, &ee)
		})
	}
}

func TestParseLimits(t *testing.T) {
	raw := []byte("a,b,c\n1,2,3\n4,5,6\n")

	opt := DefaultOptions()
	opt.MaxBytes = 5
	_, err := Parse(raw, opt)
	var pe *PayloadTooLargeError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "bytes", pe.Unit)

	opt = DefaultOptions()
	opt.MaxRows = 1
	_, err = Parse(raw, opt)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "rows", pe.Unit)
	assert.EqualValues(t, 2, pe.Actual)

	opt = DefaultOptions()
	opt.MaxColumns = 2
	_, err = Parse(raw, opt)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "columns", pe.Unit)
}

func TestParseSniffsDelimiter(t *testing.T) {
	ds, err := Parse([]byte("\xEF\xBB\xBFname;score;\"a,b\"\nx;1;2\n"), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, ds.Columns, 3)
	assert.Equal(t, "name", ds.Columns[0].Name)
	assert.Equal(t, "a,b", ds.Columns[2].Name)
}

func TestParseLocaleSeparators(t *testing.T) {
	opt := DefaultOptions()
	opt.Delimiter = ';'
	opt.DecimalSeparator = ','
	opt.ThousandsSeparator = '.'
	ds, err := Parse([]byte("amount;note\n1.234,5;a\n0,25;b\n"), opt)
	require.NoError(t, err)
	assert.Equal(t, []float64{1234.5, 0.25}, ds.NumericValues(0))
}

func TestParseKindOverrides(t *testing.T) {
	opt := DefaultOptions()
	opt.KindOverrides = map[string]string{"zip": "categorical", "score": "numeric"}
	ds, err := Parse([]byte("zip,score\n10115,7\n80331,high\n"), opt)
	require.NoError(t, err)
	assert.Equal(t, Categorical, ds.Columns[0].Kind)
	assert.Equal(t, "10115", ds.Records[0][0].String())
	assert.Equal(t, Numeric, ds.Columns[1].Kind)
	assert.True(t, ds.Records[1][1].IsAbsent())

	opt.KindOverrides = map[string]string{"zip": "datetime"}
	_, err = Parse([]byte("zip,score\n10115,7\n"), opt)
	var ue *UnsupportedColumnTypeError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "datetime", ue.Type)
}

func TestParseUnknownFormat(t *testing.T) {
	opt := DefaultOptions()
	opt.Format = "parquet"
	_, err := Parse([]byte("a\n1\n"), opt)
	var fe *UnsupportedFormatError
	require.ErrorAs(t, err, &fe)
}

func TestParseFileTSV(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "metrics.tsv")
	require.NoError(t, os.WriteFile(p, []byte("a\tb\n1\t2\n"), 0o644))
	ds, err := ParseFile(p, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "tsv", ds.Source.Format)
	assert.Equal(t, "metrics.tsv", ds.Source.Name)
	assert.Equal(t, []float64{2}, ds.NumericValues(1))
}

func writeWorkbook(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"ignored"}))
	_, err := f.NewSheet("Sales")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Sales", "A1", &[]any{"month", "amount"}))
	require.NoError(t, f.SetSheetRow("Sales", "A2", &[]any{"Jan", 1200}))
	require.NoError(t, f.SetSheetRow("Sales", "A3", &[]any{"Feb", 1350.5}))
	require.NoError(t, f.SaveAs(path))
}

func TestParseFileXLSX(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "book.xlsx")
	writeWorkbook(t, p)

	opt := DefaultOptions()
	opt.SheetName = "sales"
	ds, err := ParseFile(p, opt)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", ds.Source.Format)
	assert.Equal(t, []float64{1200, 1350.5}, ds.NumericValues(1))

	opt = DefaultOptions()
	opt.SheetIndex = 2
	ds, err = ParseFile(p, opt)
	require.NoError(t, err)
	assert.Equal(t, "month", ds.Columns[0].Name)

	opt.SheetName = "missing"
	_, err = ParseFile(p, opt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available sheets: Sheet1, Sales")
}

func TestParseDetectsWorkbookByContent(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "book.xlsx")
	writeWorkbook(t, p)
	raw, err := os.ReadFile(p)
	require.NoError(t, err)

	opt := DefaultOptions()
	opt.SheetIndex = 2
	ds, err := Parse(raw, opt)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", ds.Source.Format)
	assert.Equal(t, 2, ds.RowCount())
}

func TestSniffDelimiter(t *testing.T) {
	cases := map[string]rune{
		"a,b,c\n":     ',',
		"a;b;c\n":     ';',
		"a\tb\tc\n":   '\t',
		"a|b|c\n":     '|',
		"\n\nsingle\n": ',',
		"\"x;y\",z\n": ',',
	}
	for in, want := range cases {
		assert.Equal(t, want, sniffDelimiter([]byte(in)), "input %q", in)
	}
}
