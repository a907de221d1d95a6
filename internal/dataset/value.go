package dataset

import (
	"math"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	Absent Kind = iota
	Number
	Text
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Text:
		return "text"
	default:
		return "absent"
	}
}

// Value is a single cell. Num is meaningful only for Number; Raw keeps the
// trimmed source text for Number and Text cells.
type Value struct {
	Kind Kind
	Num  float64
	Raw  string
}

func NumberValue(f float64, raw string) Value { return Value{Kind: Number, Num: f, Raw: raw} }
func TextValue(s string) Value              { return Value{Kind: Text, Raw: s} }
func AbsentValue() Value                    { return Value{} }

// IsNumber reports whether v holds a finite number.
func (v Value) IsNumber() bool {
	return v.Kind == Number && !math.IsNaN(v.Num) && !math.IsInf(v.Num, 0)
}

func (v Value) IsAbsent() bool { return v.Kind == Absent }

// String renders the cell as it appeared in the input.
func (v Value) String() string {
	switch v.Kind {
	case Number:
		if v.Raw != "" {
			return v.Raw
		}
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case Text:
		return v.Raw
	default:
		return ""
	}
}

// Record is one row aligned with Dataset.Columns.
type Record []Value
