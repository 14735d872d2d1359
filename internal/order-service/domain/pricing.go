package domain

import "github.com/shopspring/decimal"

// LineTotal is unitPrice*quantity - discount.
func LineTotal(unitPrice decimal.Decimal, quantity int, discount decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Sub(discount)
}

// Total sums the line totals of items. The currency is supplied by the
// caller because items do not carry one.
func Total(items []OrderItem, currency string) Money {
	amount := decimal.Zero
	for _, it := range items {
		amount = amount.Add(it.LineTotal)
	}
	return Money{Amount: amount, Currency: currency}
}
