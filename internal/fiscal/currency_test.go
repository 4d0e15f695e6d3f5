package fiscal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fatturo/internal/fiscal"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		cents  int64
		locale fiscal.Locale
		want   string
	}{
		{"italian", 123456, fiscal.LocaleItalian, "1.234,56 €"},
		{"english", 123456, fiscal.LocaleEnglish, "€1,234.56"},
		{"zero_it", 0, fiscal.LocaleItalian, "0,00 €"},
		{"zero_en", 0, fiscal.LocaleEnglish, "€0.00"},
		{"single_cent", 1, fiscal.LocaleItalian, "0,01 €"},
		{"no_grouping", 99999, fiscal.LocaleEnglish, "€999.99"},
		{"millions_it", 123456789, fiscal.LocaleItalian, "1.234.567,89 €"},
		{"millions_en", 123456789, fiscal.LocaleEnglish, "€1,234,567.89"},
		{"negative_it", -123456, fiscal.LocaleItalian, "-1.234,56 €"},
		{"negative_en", -123456, fiscal.LocaleEnglish, "-€1,234.56"},
		{"unknown_locale_falls_back_to_it", 200, fiscal.Locale("de"), "2,00 €"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fiscal.FormatCurrency(tt.cents, tt.locale))
		})
	}
}
