package dataset

import (
	"bytes"
	"strings"
)

// Reader decodes one input format into untyped rows.
type Reader interface {
	Name() string
	CanRead(filename string) bool
	Rows(raw []byte, filename string, opt Options) ([]rawRow, error)
}

var registry []Reader

// Register adds a reader to the registry. Later registrations do not
// shadow earlier ones for the same extension.
func Register(r Reader) {
	registry = append(registry, r)
}

// Formats lists the registered reader names in registration order.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for _, r := range registry {
		out = append(out, r.Name())
	}
	return out
}

var zipMagic = []byte("PK\x03\x04")

func selectReader(format, filename string, raw []byte) (Reader, error) {
	if format != "" {
		for _, r := range registry {
			if strings.EqualFold(r.Name(), format) {
				return r, nil
			}
		}
		return nil, &UnsupportedFormatError{Format: format}
	}
	if filename != "" {
		for _, r := range registry {
			if r.CanRead(filename) {
				return r, nil
			}
		}
	}
	if bytes.HasPrefix(raw, zipMagic) {
		return xlsxReader{}, nil
	}
	return csvReader{}, nil
}

func init() {
	Register(csvReader{})
	Register(tsvReader{})
	Register(xlsxReader{})
}
