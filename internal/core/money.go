// Package core provides the donation row model plus amount and date
// parsing/formatting shared by the aggregation pipeline.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount normalizes a raw amount cell into rupiah. It tolerates
// currency prefixes, thousands separators in both styles ("1.500.000",
// "1,500,000") and decimal amounts. Empty or unparseable input yields 0;
// it never returns an error. Callers treat values <= 0 as "not a donation".
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	// Keep digits, separators and a leading sign; drop "Rp", spaces, etc.
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" {
		return 0
	}

	cleaned = normalizeSeparators(cleaned)

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// normalizeSeparators resolves ',' and '.' into a plain decimal form.
// When both appear, the rightmost one is the decimal separator. A lone
// separator followed by exactly three digits is treated as grouping, which
// matches how amounts are written in the source sheet ("1.500" is 1500).
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastDot > lastComma {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastComma >= 0:
		s = resolveSingleSeparator(s, ',')
	case lastDot >= 0:
		s = resolveSingleSeparator(s, '.')
	}
	return s
}

func resolveSingleSeparator(s string, sep byte) string {
	sepStr := string(sep)
	if strings.Count(s, sepStr) > 1 {
		// Repeated separator can only be grouping.
		return strings.ReplaceAll(s, sepStr, "")
	}
	idx := strings.IndexByte(s, sep)
	if len(s)-idx-1 == 3 {
		// "1.500" / "1,500" style grouping.
		return strings.ReplaceAll(s, sepStr, "")
	}
	return strings.Replace(s, sepStr, ".", 1)
}

// FormatCurrency renders an amount as Indonesian rupiah, e.g. "Rp 24.300.000".
// Fractions are rounded away; the dashboard deals in whole rupiah.
func FormatCurrency(amount float64) string {
	return "Rp " + FormatNumber(amount)
}

// FormatNumber renders a number with dot thousands grouping, e.g. "24.300.000".
func FormatNumber(amount float64) string {
	n := int64(math.Round(amount))
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}
