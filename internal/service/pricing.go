package service

import "github.com/shopspring/decimal"

// Ethiopian VAT.
const defaultTaxRate = 0.15

// OrderTotal represents the pricing breakdown for an order.
type OrderTotal struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CalculateTax computes tax on a subtotal, rounded to cents.
func CalculateTax(subtotal, taxRate float64) float64 {
	return decimal.NewFromFloat(subtotal).
		Mul(decimal.NewFromFloat(taxRate)).
		Round(2).
		InexactFloat64()
}

// CalculateOrderTotal computes the full order breakdown.
func CalculateOrderTotal(subtotal, taxRate float64) OrderTotal {
	tax := CalculateTax(subtotal, taxRate)
	total := decimal.NewFromFloat(subtotal).
		Add(decimal.NewFromFloat(tax)).
		Round(2).
		InexactFloat64()
	return OrderTotal{Subtotal: subtotal, Tax: tax, Total: total}
}
