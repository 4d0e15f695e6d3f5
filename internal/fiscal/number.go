package fiscal

import "fmt"

// DefaultNumberPrefix is the invoice number prefix used when the owner has
// not configured one.
const DefaultNumberPrefix = "FT"

// FormatInvoiceNumber renders the progressive invoice number for a year,
// e.g. FormatInvoiceNumber(3, 2026) == "FT-3/2026".
func FormatInvoiceNumber(sequenceNumber, year int) string {
	return FormatInvoiceNumberWithPrefix(DefaultNumberPrefix, sequenceNumber, year)
}

// FormatInvoiceNumberWithPrefix renders the invoice number with a custom
// prefix. An empty prefix falls back to DefaultNumberPrefix.
func FormatInvoiceNumberWithPrefix(prefix string, sequenceNumber, year int) string {
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	return fmt.Sprintf("%s-%d/%d", prefix, sequenceNumber, year)
}
