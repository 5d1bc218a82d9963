package handlers

import (
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

func testProduct(stock int) models.Product {
	return models.Product{
		ID:        primitive.NewObjectID(),
		Name:      "Leather Jacket",
		Price:     100,
		Discount:  20,
		MainImage: "uploads/jacket.jpg",
		Stock:     stock,
	}
}

func TestNewCartItemSnapshotsDiscountedPrice(t *testing.T) {
	product := testProduct(5)

	item := newCartItem(product, 2, "black", "M")

	if item.Price != 80 {
		t.Fatalf("expected discounted price 80, got %v", item.Price)
	}
	if item.OriginalPrice != 100 {
		t.Fatalf("expected originalPrice 100, got %v", item.OriginalPrice)
	}
	if item.Quantity != 2 || item.Color != "black" || item.Size != "M" {
		t.Fatalf("unexpected item fields: %+v", item)
	}
}

func TestNewCartItemWithoutDiscountOmitsOriginalPrice(t *testing.T) {
	product := testProduct(5)
	product.Discount = 0

	item := newCartItem(product, 1, "", "")

	if item.Price != 100 {
		t.Fatalf("expected price 100, got %v", item.Price)
	}
	if item.OriginalPrice != 0 {
		t.Fatalf("expected originalPrice unset, got %v", item.OriginalPrice)
	}
}

func TestCheckCartQuantityRejectsOverStock(t *testing.T) {
	product := testProduct(3)

	if err := checkCartQuantity(product, 3); err != nil {
		t.Fatalf("expected quantity at stock limit to pass, got %v", err)
	}

	err := checkCartQuantity(product, 4)
	if err == nil {
		t.Fatal("expected error for quantity above stock")
	}

	var stockErr insufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected insufficientStockError, got %T", err)
	}
	if stockErr.Available != 3 || stockErr.Requested != 4 {
		t.Fatalf("unexpected error detail: %+v", stockErr)
	}
	if !strings.Contains(err.Error(), product.Name) {
		t.Fatalf("expected error to name the product, got %q", err.Error())
	}
}

func TestCartLineFilterRequiresItemPresence(t *testing.T) {
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	filter := cartLineFilter(userID, productID)

	if filter["_id"] != userID {
		t.Fatalf("expected filter keyed on user, got %v", filter["_id"])
	}
	if filter["cart.productId"] != productID {
		t.Fatalf("expected filter to require the cart line, got %v", filter["cart.productId"])
	}
	if len(filter) != 2 {
		t.Fatalf("unexpected extra filter terms: %v", filter)
	}
}

func TestFindCartItemMatchesByProductID(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	cart := []models.CartItem{
		{ProductID: first, Quantity: 1},
		{ProductID: second, Quantity: 2},
	}

	if idx := findCartItem(cart, second); idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if idx := findCartItem(cart, primitive.NewObjectID()); idx != -1 {
		t.Fatalf("expected -1 for missing product, got %d", idx)
	}
}

func TestCartTotals(t *testing.T) {
	cart := []models.CartItem{
		{ProductID: primitive.NewObjectID(), Price: 10, Quantity: 2},
		{ProductID: primitive.NewObjectID(), Price: 5.5, Quantity: 1},
	}

	total, count := cartTotals(cart)
	if total != 25.5 {
		t.Fatalf("expected total 25.5, got %v", total)
	}
	if count != 3 {
		t.Fatalf("expected 3 items, got %d", count)
	}
}

func TestCartTotalsEmptyCart(t *testing.T) {
	total, count := cartTotals(nil)
	if total != 0 || count != 0 {
		t.Fatalf("expected zero totals for empty cart, got total=%v count=%d", total, count)
	}
}
