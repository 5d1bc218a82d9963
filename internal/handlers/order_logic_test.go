package handlers

import (
	"errors"
	"strings"
	"testing"

	"storefront/internal/models"
)

func TestDecrementStockAppliesQuantity(t *testing.T) {
	product := testProduct(5)

	remaining, err := decrementStock(product, 2)
	if err != nil {
		t.Fatalf("expected decrement to succeed, got %v", err)
	}
	if remaining != 3 {
		t.Fatalf("expected remaining stock 3, got %d", remaining)
	}
}

func TestDecrementStockAllowsExactDrain(t *testing.T) {
	product := testProduct(2)

	remaining, err := decrementStock(product, 2)
	if err != nil {
		t.Fatalf("expected exact drain to succeed, got %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected remaining stock 0, got %d", remaining)
	}
}

func TestDecrementStockRejectsOverdraw(t *testing.T) {
	product := testProduct(1)

	_, err := decrementStock(product, 2)
	if err == nil {
		t.Fatal("expected error when requested exceeds stock")
	}

	var stockErr insufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected insufficientStockError, got %T", err)
	}
	if stockErr.Available != 1 || stockErr.Requested != 2 {
		t.Fatalf("unexpected error detail: %+v", stockErr)
	}
	if !strings.Contains(err.Error(), product.Name) {
		t.Fatalf("expected error to name the product, got %q", err.Error())
	}
}

func TestApprovalGuardBlocksRepeatApproval(t *testing.T) {
	order := models.Order{Status: models.OrderStatusApproved}

	if err := approvalGuard(order); !errors.Is(err, errAlreadyApproved) {
		t.Fatalf("expected errAlreadyApproved, got %v", err)
	}
}

func TestApprovalGuardAdmitsOtherStatuses(t *testing.T) {
	for _, status := range []string{
		models.OrderStatusPending,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	} {
		if err := approvalGuard(models.Order{Status: status}); err != nil {
			t.Fatalf("expected %q order to be approvable, got %v", status, err)
		}
	}
}
