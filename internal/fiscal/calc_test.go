package fiscal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fatturo/internal/fiscal"
)

func baseOptions() fiscal.TaxOptions {
	return fiscal.TaxOptions{
		IvaRate:      22,
		RitenutaRate: 20,
		CassaRate:    4,
	}
}

func TestCalculate_EmptyItems(t *testing.T) {
	calc := fiscal.Calculate(nil, baseOptions())
	assert.Equal(t, fiscal.Calculation{}, calc)

	calc = fiscal.Calculate([]fiscal.LineItem{}, fiscal.TaxOptions{IvaRate: 22, ApplyBollo: false})
	assert.Equal(t, fiscal.Calculation{}, calc)
}

func TestCalculate_BaseCase(t *testing.T) {
	items := []fiscal.LineItem{{Quantity: 1, UnitPriceCents: 10000}}
	calc := fiscal.Calculate(items, baseOptions())

	assert.Equal(t, int64(10000), calc.Subtotal)
	assert.Equal(t, int64(0), calc.CassaAmount)
	assert.Equal(t, int64(10000), calc.TaxableBase)
	assert.Equal(t, int64(2200), calc.IvaAmount)
	assert.Equal(t, int64(0), calc.BolloAmount)
	assert.Equal(t, int64(12200), calc.GrossTotal)
	assert.Equal(t, int64(0), calc.RitenutaAmount)
	assert.Equal(t, int64(12200), calc.NetPayable)
}

func TestCalculate_WithCassa(t *testing.T) {
	items := []fiscal.LineItem{{Quantity: 1, UnitPriceCents: 10000}}
	opts := baseOptions()
	opts.ApplyCassa = true

	calc := fiscal.Calculate(items, opts)

	assert.Equal(t, int64(400), calc.CassaAmount)
	assert.Equal(t, int64(10400), calc.TaxableBase)
	assert.Equal(t, int64(2288), calc.IvaAmount)
	assert.Equal(t, int64(12688), calc.GrossTotal)
}

func TestCalculate_WithRitenuta(t *testing.T) {
	items := []fiscal.LineItem{{Quantity: 1, UnitPriceCents: 10000}}
	opts := baseOptions()
	opts.ApplyRitenuta = true

	calc := fiscal.Calculate(items, opts)

	assert.Equal(t, int64(2000), calc.RitenutaAmount)
	assert.Equal(t, int64(10200), calc.NetPayable)
}

func TestCalculate_RitenutaOnTaxableBaseNotGross(t *testing.T) {
	// With cassa enabled, the withholding base is subtotal + cassa, and
	// never includes IVA.
	items := []fiscal.LineItem{{Quantity: 1, UnitPriceCents: 10000}}
	opts := baseOptions()
	opts.ApplyCassa = true
	opts.ApplyRitenuta = true

	calc := fiscal.Calculate(items, opts)

	assert.Equal(t, int64(2080), calc.RitenutaAmount) // 20% of 10400
	assert.Equal(t, calc.GrossTotal-2080, calc.NetPayable)
}

func TestCalculate_Bollo(t *testing.T) {
	items := []fiscal.LineItem{{Quantity: 1, UnitPriceCents: 10000}}
	opts := fiscal.TaxOptions{IvaRate: 0, ApplyBollo: true}

	calc := fiscal.Calculate(items, opts)

	assert.Equal(t, int64(200), calc.BolloAmount)
	assert.Equal(t, int64(0), calc.IvaAmount)
	assert.Equal(t, int64(10200), calc.GrossTotal)
}

func TestCalculate_FractionalQuantity(t *testing.T) {
	// 1.5 hours at EUR 100.00/h
	items := []fiscal.LineItem{{Quantity: 1.5, UnitPriceCents: 10000}}
	calc := fiscal.Calculate(items, fiscal.TaxOptions{IvaRate: 22})

	assert.Equal(t, int64(15000), calc.Subtotal)
	assert.Equal(t, int64(3300), calc.IvaAmount)
}

func TestCalculate_ZeroQuantityItem(t *testing.T) {
	items := []fiscal.LineItem{
		{Quantity: 0, UnitPriceCents: 10000},
		{Quantity: 2, UnitPriceCents: 5000},
	}
	calc := fiscal.Calculate(items, fiscal.TaxOptions{IvaRate: 22})

	assert.Equal(t, int64(10000), calc.Subtotal)
}

func TestCalculate_PerItemRounding(t *testing.T) {
	// Each line rounds once before summing: 3 * round(33.3) = 99,
	// not round(99.9) = 100.
	items := []fiscal.LineItem{
		{Quantity: 0.333, UnitPriceCents: 100},
		{Quantity: 0.333, UnitPriceCents: 100},
		{Quantity: 0.333, UnitPriceCents: 100},
	}
	calc := fiscal.Calculate(items, fiscal.TaxOptions{})

	assert.Equal(t, int64(99), calc.Subtotal)
}

func TestCalculate_RoundsHalfAwayFromZero(t *testing.T) {
	// 50% of 125 cents = 62.5 -> 63
	items := []fiscal.LineItem{{Quantity: 1, UnitPriceCents: 125}}
	opts := fiscal.TaxOptions{ApplyRitenuta: true, RitenutaRate: 50}

	calc := fiscal.Calculate(items, opts)

	assert.Equal(t, int64(63), calc.RitenutaAmount)
}

func TestCalculate_Invariants(t *testing.T) {
	itemSets := [][]fiscal.LineItem{
		{},
		{{Quantity: 1, UnitPriceCents: 1}},
		{{Quantity: 0.5, UnitPriceCents: 333}},
		{{Quantity: 3, UnitPriceCents: 12345}, {Quantity: 1.25, UnitPriceCents: 9999}},
		{{Quantity: 40, UnitPriceCents: 7500}, {Quantity: 0.1, UnitPriceCents: 55}},
	}
	optSets := []fiscal.TaxOptions{
		{},
		{IvaRate: 22},
		{IvaRate: 22, ApplyCassa: true, CassaRate: 4},
		{IvaRate: 22, ApplyRitenuta: true, RitenutaRate: 20},
		{IvaRate: 10, ApplyCassa: true, CassaRate: 5, ApplyRitenuta: true, RitenutaRate: 23, ApplyBollo: true},
		{IvaRate: 0, ApplyBollo: true},
	}

	for _, items := range itemSets {
		for _, opts := range optSets {
			calc := fiscal.Calculate(items, opts)

			assert.Equal(t, calc.Subtotal+calc.CassaAmount, calc.TaxableBase)
			assert.Equal(t, calc.TaxableBase+calc.IvaAmount+calc.BolloAmount, calc.GrossTotal)
			assert.Equal(t, calc.GrossTotal-calc.RitenutaAmount, calc.NetPayable)
			assert.GreaterOrEqual(t, calc.Subtotal, int64(0))
			assert.GreaterOrEqual(t, calc.NetPayable, int64(0))
		}
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	items := []fiscal.LineItem{{Quantity: 2.7, UnitPriceCents: 31337}}
	opts := fiscal.TaxOptions{IvaRate: 22, ApplyCassa: true, CassaRate: 4, ApplyRitenuta: true, RitenutaRate: 20}

	first := fiscal.Calculate(items, opts)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, fiscal.Calculate(items, opts))
	}
}

func TestItemAmount(t *testing.T) {
	assert.Equal(t, int64(15000), fiscal.ItemAmount(fiscal.LineItem{Quantity: 1.5, UnitPriceCents: 10000}))
	assert.Equal(t, int64(0), fiscal.ItemAmount(fiscal.LineItem{Quantity: 0, UnitPriceCents: 10000}))
	assert.Equal(t, int64(33), fiscal.ItemAmount(fiscal.LineItem{Quantity: 0.333, UnitPriceCents: 100}))
}
