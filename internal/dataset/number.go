package dataset

import (
	"math"
	"strconv"
	"strings"
)

// parseNumber converts a trimmed field to a finite float. Without configured
// separators only plain float literals qualify, so "12%" or "1,000" stay text.
func parseNumber(s string, opt Options) (float64, bool) {
	if opt.DecimalSeparator == 0 && opt.ThousandsSeparator == 0 {
		return finite(strconv.ParseFloat(s, 64))
	}
	return parseLocale(s, opt.DecimalSeparator, opt.ThousandsSeparator)
}

// parseLocale strips the thousands separator and rewrites the decimal
// separator to '.', e.g. "1.234,5" with dec=',' thou='.' is 1234.5.
func parseLocale(s string, dec, thou rune) (float64, bool) {
	raw := strings.ReplaceAll(s, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if dec == 0 {
		dec = '.'
	}
	if thou != 0 && thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		if strings.Contains(raw, ".") {
			return 0, false
		}
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	return finite(strconv.ParseFloat(raw, 64))
}

func finite(f float64, err error) (float64, bool) {
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
