package models

// Money is an amount with its currency. Amounts are plain floats at the
// API surface; payment-wire formatting goes through shopspring/decimal
// at the gateway boundary.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// NewMoney creates a Money value.
func NewMoney(amount float64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// ToFloat returns the raw amount.
func (m Money) ToFloat() float64 {
	return m.Amount
}
