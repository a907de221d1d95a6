package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type csvReader struct{}

func (csvReader) Name() string { return "csv" }

func (csvReader) CanRead(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".csv" || ext == ".txt"
}

func (csvReader) Rows(raw []byte, _ string, opt Options) ([]rawRow, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(raw)
	}
	return readDelimited(raw, delim)
}

type tsvReader struct{}

func (tsvReader) Name() string { return "tsv" }

func (tsvReader) CanRead(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".tsv")
}

func (tsvReader) Rows(raw []byte, _ string, opt Options) ([]rawRow, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = '\t'
	}
	return readDelimited(raw, delim)
}

func readDelimited(raw []byte, delim rune) ([]rawRow, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	var rows []rawRow
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &MalformedInputError{Line: pe.Line, Reason: pe.Err.Error(), ParsedRows: len(rows), Err: err}
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		line, _ := r.FieldPos(0)
		rows = append(rows, rawRow{Line: line, Fields: rec})
	}
	return rows, nil
}

// sniffDelimiter picks the candidate that occurs most often, outside quotes,
// on the first non-empty line. Comma wins ties and the no-candidate case.
func sniffDelimiter(raw []byte) rune {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	var first string
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) != "" {
			first = line
			break
		}
	}
	counts := map[rune]int{}
	inQuote := false
	for _, c := range first {
		if c == '"' {
			inQuote = !inQuote
			continue
		}
		if inQuote {
			continue
		}
		switch c {
		case ',', ';', '\t', '|':
			counts[c]++
		}
	}
	best, n := ',', counts[',']
	for _, c := range []rune{';', '\t', '|'} {
		if counts[c] > n {
			best, n = c, counts[c]
		}
	}
	return best
}
