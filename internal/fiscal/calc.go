// Package fiscal implements Italian invoice tax arithmetic and fiscal
// identifier validation. All monetary values are int64 amounts in euro cents;
// no floating point ever leaves this package.
package fiscal

import "math"

// BolloCents is the flat bollo virtuale stamp duty (EUR 2.00).
const BolloCents int64 = 200

// LineItem is a single invoice line: quantity (possibly fractional, e.g.
// 1.5 hours) at a unit price in cents.
type LineItem struct {
	Quantity       float64
	UnitPriceCents int64
}

// TaxOptions is the snapshot of fiscal choices frozen onto an invoice at
// creation time. Rates are percentages (22 means 22%).
type TaxOptions struct {
	IvaRate       float64
	ApplyRitenuta bool
	RitenutaRate  float64
	ApplyCassa    bool
	CassaRate     float64
	ApplyBollo    bool
}

// Calculation holds every derived monetary field of an invoice, all in cents.
type Calculation struct {
	Subtotal       int64
	CassaAmount    int64
	TaxableBase    int64
	IvaAmount      int64
	BolloAmount    int64
	GrossTotal     int64
	RitenutaAmount int64
	NetPayable     int64
}

// roundCents rounds to the nearest cent, ties away from zero.
func roundCents(v float64) int64 {
	return int64(math.Round(v))
}

// Calculate computes all invoice totals from line items and tax options.
// Each derived field is rounded exactly once from its algebraic formula;
// rounded sub-amounts are never re-rounded. Callers are expected to have
// validated inputs as non-negative. An empty item list yields the zero value.
func Calculate(items []LineItem, opts TaxOptions) Calculation {
	var subtotal int64
	for _, item := range items {
		subtotal += roundCents(item.Quantity * float64(item.UnitPriceCents))
	}

	var cassaAmount int64
	if opts.ApplyCassa {
		cassaAmount = roundCents(float64(subtotal) * opts.CassaRate / 100)
	}

	taxableBase := subtotal + cassaAmount

	ivaAmount := roundCents(float64(taxableBase) * opts.IvaRate / 100)

	var bolloAmount int64
	if opts.ApplyBollo {
		bolloAmount = BolloCents
	}

	grossTotal := taxableBase + ivaAmount + bolloAmount

	// Ritenuta is withheld on the taxable base (subtotal + cassa), not on
	// the gross total: the withholding base excludes IVA.
	var ritenutaAmount int64
	if opts.ApplyRitenuta {
		ritenutaAmount = roundCents(float64(taxableBase) * opts.RitenutaRate / 100)
	}

	return Calculation{
		Subtotal:       subtotal,
		CassaAmount:    cassaAmount,
		TaxableBase:    taxableBase,
		IvaAmount:      ivaAmount,
		BolloAmount:    bolloAmount,
		GrossTotal:     grossTotal,
		RitenutaAmount: ritenutaAmount,
		NetPayable:     grossTotal - ritenutaAmount,
	}
}

// ItemAmount returns the stored amount for a single line item.
func ItemAmount(item LineItem) int64 {
	return roundCents(item.Quantity * float64(item.UnitPriceCents))
}
