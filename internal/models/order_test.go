package models

import "testing"

func TestValidOrderStatus(t *testing.T) {
	valid := []string{"pending", "approved", "shipped", "delivered", "cancelled"}
	for _, s := range valid {
		if !ValidOrderStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}

	invalid := []string{"", "Pending", "APPROVED", "refunded", "done"}
	for _, s := range invalid {
		if ValidOrderStatus(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}
