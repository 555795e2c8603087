package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// Currency formats amounts in the store currency.
type Currency struct {
	Code      string
	Symbol    string
	Precision int
	ac        accounting.Accounting
}

func NewCurrency(code, symbol string) *Currency {
	c := &Currency{Code: code, Symbol: symbol, Precision: 2}
	c.ac = accounting.Accounting{
		Symbol:    symbol,
		Precision: c.Precision,
		Thousand:  ",",
		Decimal:   ".",
	}
	return c
}

func (c *Currency) Format(amount decimal.Decimal) string {
	return c.ac.FormatMoneyDecimal(amount)
}
