package fiscal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fatturo/internal/fiscal"
)

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "FT-1/2026", fiscal.FormatInvoiceNumber(1, 2026))
	assert.Equal(t, "FT-42/2025", fiscal.FormatInvoiceNumber(42, 2025))
}

func TestFormatInvoiceNumberWithPrefix(t *testing.T) {
	assert.Equal(t, "INV-3/2026", fiscal.FormatInvoiceNumberWithPrefix("INV", 3, 2026))
	assert.Equal(t, "FT-3/2026", fiscal.FormatInvoiceNumberWithPrefix("", 3, 2026))
}
