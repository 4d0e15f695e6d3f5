package fiscal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fatturo/internal/fiscal"
)

func TestValidateVATNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid_checksum", "12345678903", true},
		{"invalid_checksum", "12345678901", false},
		{"all_zeros", "00000000000", true},
		{"too_short", "1234567890", false},
		{"too_long", "123456789012", false},
		{"empty", "", false},
		{"letters", "1234567890a", false},
		{"non_ascii_digits", "１２３４５６７８９０３", false},
		{"spaces", "12345 78903", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fiscal.ValidateVATNumber(tt.input))
		})
	}
}

func TestValidateTaxCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid_personal", "RSSMRA85M01H501Z", true},
		{"valid_personal_lowercase", "rssmra85m01h501z", true},
		{"valid_personal_mixed_case", "RssMra85M01h501Z", true},
		{"company_code_valid", "00000000000", true},
		{"company_code_bad_checksum", "12345678901", false},
		{"fourteen_chars", "RSSMRA85M01H50", false},
		{"fifteen_chars", "RSSMRA85M01H501", false},
		{"seventeen_chars", "RSSMRA85M01H501ZZ", false},
		{"invalid_month_code", "RSSMRA85Z01H501Z", false},
		{"digits_in_name", "R55MRA85M01H501Z", false},
		{"letters_in_year", "RSSMRAXX85M01H50", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fiscal.ValidateTaxCode(tt.input))
		})
	}
}

func TestValidateTaxCode_AllMonthCodes(t *testing.T) {
	for _, month := range []byte("ABCDEHLMPRST") {
		code := "RSSMRA85" + string(month) + "01H501Z"
		assert.True(t, fiscal.ValidateTaxCode(code), "month code %c should be accepted", month)
	}
	for _, month := range []byte("FGIJKNOQUVWXYZ") {
		code := "RSSMRA85" + string(month) + "01H501Z"
		assert.False(t, fiscal.ValidateTaxCode(code), "month code %c should be rejected", month)
	}
}
