package format_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KaramelBytes/insightloom-cli/internal/format"
)

func TestASCIITable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Column", "Mean")
	tb.Row("revenue", "230")
	tb.Row("expenses", "170")
	out := tb.String()

	assert.Contains(t, out, "revenue")
	assert.Contains(t, out, "───", "light style draws box characters")
	assert.Equal(t, 2, tb.Len())
}

func TestMarkdownTable(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Column", "Missing")
	tb.Row("score", 1)
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	out := tb.String()

	assert.True(t, strings.HasPrefix(out, "| Column"), out)
	assert.Contains(t, out, "---")
	assert.Contains(t, out, "| score")
}

func TestNum(t *testing.T) {
	assert.Equal(t, "230", format.Num(230))
	assert.Equal(t, "1.12", format.Num(1.118034))
	assert.Equal(t, "-0.50", format.Num(-0.5))
	assert.Equal(t, "n/a", format.Num(math.NaN()))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "26.1%", format.Percent(26.087))
	assert.Equal(t, "250ms", format.Duration(250*time.Millisecond))
	assert.Equal(t, "2m 5s", format.Duration(125*time.Second))
	assert.Equal(t, "abcd...", format.Truncate("abcdefghij", 7))
	assert.Equal(t, "abc", format.Truncate("abc", 7))
	assert.Equal(t, "✓", format.Mark(true))
}

