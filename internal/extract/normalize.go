// Package extract turns a rendered listing page into one structured
// record using prioritized selector cascades and text-pattern rules.
package extract

import (
	_ "embed"
	"regexp"
	"strconv"
	"strings"
)

// NormalizeScript is the JavaScript twin of the normalizers below. It is
// injected into every page session so in-page code applies the exact same
// parsing rules; parity between the two copies is enforced by tests.
//
//go:embed normalize.js
var NormalizeScript string

var nonDigit = regexp.MustCompile(`\D`)

// ParseCurrency parses a human currency string ("$1,500", "$2.5M", "15k")
// into a plain number. The "m"/"mil" suffix is checked before "k" so no
// input can match both. Returns false when nothing numeric parses.
func ParseCurrency(text string) (float64, bool) {
	cleaned := strings.ToLower(text)
	for _, r := range []string{"$", ",", " ", "\t", "\n"} {
		cleaned = strings.ReplaceAll(cleaned, r, "")
	}
	if cleaned == "" {
		return 0, false
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(cleaned, "mil"):
		multiplier = 1_000_000
		cleaned = strings.TrimSuffix(cleaned, "mil")
	case strings.HasSuffix(cleaned, "m"):
		multiplier = 1_000_000
		cleaned = strings.TrimSuffix(cleaned, "m")
	case strings.HasSuffix(cleaned, "k"):
		multiplier = 1_000
		cleaned = strings.TrimSuffix(cleaned, "k")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value * multiplier, true
}

// ParseInteger strips every non-digit character and parses what remains,
// so "1,234 sq ft" yields 1234. Returns false on empty or digit-free input.
func ParseInteger(text string) (int, bool) {
	digits := nonDigit.ReplaceAllString(text, "")
	if digits == "" {
		return 0, false
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return value, true
}

// CleanText trims and collapses internal whitespace runs to single spaces.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
