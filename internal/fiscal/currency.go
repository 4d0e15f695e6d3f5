package fiscal

import (
	"fmt"
	"strconv"
)

// Locale selects the currency display convention.
type Locale string

const (
	LocaleItalian Locale = "it"
	LocaleEnglish Locale = "en"
)

// FormatCurrency renders an amount in cents as a EUR display string with
// exactly two decimal places and locale-appropriate separators:
// it → "1.234,56 €", en → "€1,234.56". Unknown locales render as Italian.
func FormatCurrency(cents int64, locale Locale) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	euros := cents / 100
	rem := cents % 100

	var whole, out string
	switch locale {
	case LocaleEnglish:
		whole = groupDigits(euros, ",")
		out = fmt.Sprintf("%s€%s.%02d", sign, whole, rem)
	default:
		whole = groupDigits(euros, ".")
		out = fmt.Sprintf("%s%s,%02d €", sign, whole, rem)
	}
	return out
}

// groupDigits inserts sep between thousands groups of a non-negative value.
func groupDigits(v int64, sep string) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	first := len(s) % 3
	if first == 0 {
		first = 3
	}
	out := s[:first]
	for i := first; i < len(s); i += 3 {
		out += sep + s[i:i+3]
	}
	return out
}
