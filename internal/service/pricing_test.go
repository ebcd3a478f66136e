package service

import "testing"

func TestCalculateTax(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		taxRate  float64
		want     float64
	}{
		{"standard VAT", 100.00, 0.15, 15.00},
		{"rounds to cents", 99.99, 0.15, 15.00},
		{"rounds down", 10.01, 0.15, 1.50},
		{"zero subtotal", 0, 0.15, 0},
		{"zero rate", 100.00, 0, 0},
		{"float-unfriendly operands", 21.15, 0.15, 3.17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateTax(tt.subtotal, tt.taxRate); got != tt.want {
				t.Errorf("CalculateTax(%v, %v) = %v, want %v", tt.subtotal, tt.taxRate, got, tt.want)
			}
		})
	}
}

func TestCalculateOrderTotal(t *testing.T) {
	got := CalculateOrderTotal(200.00, defaultTaxRate)

	if got.Subtotal != 200.00 {
		t.Errorf("Expected subtotal 200.00, got %v", got.Subtotal)
	}
	if got.Tax != 30.00 {
		t.Errorf("Expected tax 30.00, got %v", got.Tax)
	}
	if got.Total != 230.00 {
		t.Errorf("Expected total 230.00, got %v", got.Total)
	}
}

func TestCalculateOrderTotal_NoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style drift must not leak into order totals.
	got := CalculateOrderTotal(0.30, defaultTaxRate)

	if got.Tax != 0.05 {
		t.Errorf("Expected tax 0.05, got %v", got.Tax)
	}
	if got.Total != 0.35 {
		t.Errorf("Expected total 0.35, got %v", got.Total)
	}
}
