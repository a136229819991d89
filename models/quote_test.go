package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteItemMath(t *testing.T) {
	item := QuoteItem{
		Cantidad:      2,
		CostoUnitario: 100,
		Utilidad:      20,
		IVA:           19,
	}

	assert.InDelta(t, 120.0, item.UnitSalePrice(), 0.001)
	assert.InDelta(t, 240.0, item.Subtotal(), 0.001)
	assert.InDelta(t, 45.6, item.Tax(), 0.001)
	assert.InDelta(t, 285.6, item.Total(), 0.001)
}

func TestComputeTotals(t *testing.T) {
	quote := Quote{
		Items: []QuoteItem{
			{Cantidad: 2, CostoUnitario: 100, Utilidad: 20, IVA: 19},
			{Cantidad: 1, CostoUnitario: 50, Utilidad: 10, IVA: 19},
		},
	}
	quote.ComputeTotals()

	// First line: 240 + 45.60, second line: 55 + 10.45
	assert.InDelta(t, 295.0, quote.Subtotal, 0.001)
	assert.InDelta(t, 56.05, quote.IVA, 0.001)
	assert.InDelta(t, 351.05, quote.Total, 0.001)
}

func TestComputeTotals_HeterogeneousRates(t *testing.T) {
	quote := Quote{
		Items: []QuoteItem{
			{Cantidad: 1, CostoUnitario: 100, Utilidad: 0, IVA: 19},
			{Cantidad: 1, CostoUnitario: 100, Utilidad: 0, IVA: 0},
		},
	}
	quote.ComputeTotals()

	assert.InDelta(t, 200.0, quote.Subtotal, 0.001)
	assert.InDelta(t, 19.0, quote.IVA, 0.001)
	assert.InDelta(t, 219.0, quote.Total, 0.001)
}

func TestComputeTotals_Empty(t *testing.T) {
	quote := Quote{}
	quote.ComputeTotals()

	assert.Zero(t, quote.Subtotal)
	assert.Zero(t, quote.IVA)
	assert.Zero(t, quote.Total)
}

func TestComputeTotals_OverwritesClientValues(t *testing.T) {
	quote := Quote{
		Subtotal: 9999,
		IVA:      9999,
		Total:    9999,
		Items: []QuoteItem{
			{Cantidad: 1, CostoUnitario: 10, Utilidad: 0, IVA: 0},
		},
	}
	quote.ComputeTotals()

	assert.InDelta(t, 10.0, quote.Subtotal, 0.001)
	assert.InDelta(t, 0.0, quote.IVA, 0.001)
	assert.InDelta(t, 10.0, quote.Total, 0.001)
}
