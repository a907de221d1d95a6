package format

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Num renders a statistic with two decimals, dropping them for whole values.
func Num(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "n/a"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// Percent renders p as "12.5%".
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// Duration formats d as "Xm Ys", "Ys" or "Nms" for sub-second runs.
func Duration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	s := int(d.Seconds())
	if s >= 60 {
		return fmt.Sprintf("%dm %ds", s/60, s%60)
	}
	return fmt.Sprintf("%ds", s)
}

// Truncate shortens s to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// Mark returns "✓" for true and "✗" for false.
func Mark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}
