package calc

import "github.com/shopspring/decimal"

func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

func Subtotal(lineTotals []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range lineTotals {
		sum = sum.Add(t)
	}
	return sum
}

func CalculateGrandTotal(subtotal, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shipping).Round(2)
}
