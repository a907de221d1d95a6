package dataset

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxReader struct{}

func (xlsxReader) Name() string { return "xlsx" }

func (xlsxReader) CanRead(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".xlsx")
}

// Rows reads the selected sheet. SheetName wins over SheetIndex; index 0 or
// below means the first sheet.
func (xlsxReader) Rows(raw []byte, filename string, opt Options) ([]rawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &MalformedInputError{Line: 0, Reason: "not a valid xlsx workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &EmptyDatasetError{Source: filename}
	}
	sheet := ""
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				opt.SheetName, filename, strings.Join(sheets, ", "))
		}
	} else {
		idx := opt.SheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(sheets) {
			return nil, fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(sheets))
		}
		sheet = sheets[idx-1]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	out := make([]rawRow, len(rows))
	for i, r := range rows {
		out[i] = rawRow{Line: i + 1, Fields: r}
	}
	return out, nil
}
