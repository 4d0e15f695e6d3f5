package fiscal

import (
	"regexp"
	"strings"
)

var (
	elevenDigits = regexp.MustCompile(`^\d{11}$`)
	// Personal codice fiscale: surname (3) + name (3) letters, year (2),
	// month code, day (2), birthplace letter + 3 digits, check letter.
	personalTaxCode = regexp.MustCompile(`^[A-Z]{6}\d{2}[ABCDEHLMPRST]\d{2}[A-Z]\d{3}[A-Z]$`)
)

// ValidateVATNumber reports whether s is a valid Italian partita IVA:
// exactly 11 digits with a valid Luhn-style checksum. The all-zero string
// passes (checksum sum is 0).
func ValidateVATNumber(s string) bool {
	if !elevenDigits.MatchString(s) {
		return false
	}
	sum := 0
	for i := 0; i < 11; i++ {
		digit := int(s[i] - '0')
		if i%2 == 0 {
			sum += digit
		} else {
			doubled := digit * 2
			if doubled > 9 {
				doubled -= 9
			}
			sum += doubled
		}
	}
	return sum%10 == 0
}

// ValidateTaxCode reports whether s is a valid Italian codice fiscale.
// Company tax codes are 11-digit VAT numbers and reuse the VAT checksum.
// Personal tax codes are validated by format only (16 characters,
// case-insensitive); the control-character checksum is not verified.
func ValidateTaxCode(s string) bool {
	if elevenDigits.MatchString(s) {
		return ValidateVATNumber(s)
	}
	return personalTaxCode.MatchString(strings.ToUpper(s))
}
