package dataset

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset matches any *EmptyDatasetError via errors.Is.
var ErrEmptyDataset = errors.New("dataset has no usable rows")

// EmptyDatasetError indicates that parsing produced zero data records.
type EmptyDatasetError struct {
	Source string
}

func (e *EmptyDatasetError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: %s", e.Source, ErrEmptyDataset.Error())
	}
	return ErrEmptyDataset.Error()
}

func (e *EmptyDatasetError) Is(target error) bool { return target == ErrEmptyDataset }

// MalformedInputError reports inconsistent lexical structure. ParsedRows and
// RejectedRows describe how far parsing got before the input was refused.
type MalformedInputError struct {
	Line         int
	Reason       string
	ParsedRows   int
	RejectedRows int
	Err          error
}

func (e *MalformedInputError) Error() string {
	msg := fmt.Sprintf("malformed input at line %d: %s", e.Line, e.Reason)
	if e.RejectedRows > 0 {
		msg += fmt.Sprintf(" (%d rows parsed, %d rejected)", e.ParsedRows, e.RejectedRows)
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// PayloadTooLargeError indicates the input exceeds a configured limit. Unit is
// "bytes", "rows" or "columns".
type PayloadTooLargeError struct {
	Unit   string
	Limit  int64
	Actual int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload too large: %d %s exceeds limit of %d", e.Actual, e.Unit, e.Limit)
}

// UnsupportedColumnTypeError is returned when a column is forced to a kind
// the engine does not know.
type UnsupportedColumnTypeError struct {
	Column string
	Type   string
}

func (e *UnsupportedColumnTypeError) Error() string {
	return fmt.Sprintf("column %q: unsupported column type %q (use numeric or categorical)", e.Column, e.Type)
}

// UnsupportedFormatError indicates no registered reader accepts the input.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported input format: %s", e.Format)
}
