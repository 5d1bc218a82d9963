package handlers

import "testing"

func TestDiscountedUnitPriceAppliesPercentage(t *testing.T) {
	if got := discountedUnitPrice(100, 25); got != 75 {
		t.Fatalf("expected 75, got %v", got)
	}
	if got := discountedUnitPrice(10, 0); got != 10 {
		t.Fatalf("expected full price 10 when no discount, got %v", got)
	}
}

func TestDiscountedUnitPriceIgnoresOutOfRangeDiscounts(t *testing.T) {
	tests := []float64{-5, 101, 250}
	for _, discount := range tests {
		if got := discountedUnitPrice(100, discount); got != 100 {
			t.Fatalf("expected full price for discount=%v, got %v", discount, got)
		}
	}
}
