package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotals(t *testing.T) {
	a := LineTotal(decimal.RequireFromString("19.99"), 3)
	b := LineTotal(decimal.RequireFromString("5.50"), 2)

	assert.True(t, a.Equal(decimal.RequireFromString("59.97")))
	assert.True(t, b.Equal(decimal.RequireFromString("11")))

	subtotal := Subtotal([]decimal.Decimal{a, b})
	assert.True(t, subtotal.Equal(decimal.RequireFromString("70.97")))

	total := CalculateGrandTotal(subtotal, decimal.RequireFromString("4.999"))
	assert.Equal(t, "75.97", total.StringFixed(2))
}

func TestSubtotalEmpty(t *testing.T) {
	assert.True(t, Subtotal(nil).IsZero())
}
