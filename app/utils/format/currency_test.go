package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrencyFormat(t *testing.T) {
	inr := NewCurrency("INR", "₹")

	assert.Equal(t, "₹1,234.50", inr.Format(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "₹0.00", inr.Format(decimal.Zero))
	assert.Equal(t, 2, inr.Precision)
}
