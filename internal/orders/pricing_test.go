package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func catalogP1() []Product {
	return []Product{{
		ID:             "P1",
		Name:           "Café molido",
		BasePrice:      dec("10.00"),
		TaxRatePercent: dec("7"),
		Stock:          5,
	}}
}

func TestPriceCart_SpecFigures(t *testing.T) {
	lines, totals, err := PriceCart(catalogP1(), []CartLine{{ProductID: "P1", Quantity: 2}})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, "20.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "1.40", totals.TaxTotal.StringFixed(2))
	assert.Equal(t, "21.40", totals.Total.StringFixed(2))

	ln := lines[0]
	assert.Equal(t, "P1", ln.ProductID)
	assert.Equal(t, "Café molido", ln.ProductName)
	assert.Equal(t, 2, ln.Quantity)
	assert.Equal(t, "10.00", ln.BasePrice.StringFixed(2))
	assert.Equal(t, "0.70", ln.TaxAmount.StringFixed(2))
	assert.Equal(t, "10.70", ln.FinalPrice.StringFixed(2))
	assert.Equal(t, "20.00", ln.LineSubtotal.StringFixed(2))
}

func TestPriceCart_IgnoresClientPrices(t *testing.T) {
	cart := []CartLine{{
		ProductID: "P1",
		Quantity:  2,
		// a hostile client claims everything is free
		BasePrice:  decimal.Zero,
		TaxAmount:  decimal.Zero,
		FinalPrice: decimal.Zero,
	}}
	_, totals, err := PriceCart(catalogP1(), cart)
	require.NoError(t, err)
	assert.Equal(t, "21.40", totals.Total.StringFixed(2))
}

func TestPriceCart_Idempotent(t *testing.T) {
	cart := []CartLine{{ProductID: "P1", Quantity: 3}}
	_, a, err := PriceCart(catalogP1(), cart)
	require.NoError(t, err)
	_, b, err := PriceCart(catalogP1(), cart)
	require.NoError(t, err)
	assert.True(t, a.Subtotal.Equal(b.Subtotal))
	assert.True(t, a.TaxTotal.Equal(b.TaxTotal))
	assert.True(t, a.Total.Equal(b.Total))
}

func TestPriceCart_NoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style amounts stay exact in decimal
	snapshot := []Product{{ID: "P9", Name: "Chicle", BasePrice: dec("0.10"), TaxRatePercent: dec("7"), Stock: 1000}}
	_, totals, err := PriceCart(snapshot, []CartLine{{ProductID: "P9", Quantity: 3}})
	require.NoError(t, err)
	assert.Equal(t, "0.30", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "0.021", totals.TaxTotal.String())
}

func TestPriceCart_UnknownProduct(t *testing.T) {
	_, _, err := PriceCart(catalogP1(), []CartLine{{ProductID: "NOPE", Quantity: 1}})
	assert.Error(t, err)
}

func TestProductDerivedPrices(t *testing.T) {
	p := Product{BasePrice: dec("10.00"), TaxRatePercent: dec("7")}
	assert.Equal(t, "0.70", p.TaxAmount().StringFixed(2))
	assert.Equal(t, "10.70", p.FinalPrice().StringFixed(2))
}
