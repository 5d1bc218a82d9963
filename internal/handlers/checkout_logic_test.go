package handlers

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

func validCheckoutRequest() checkoutRequest {
	return checkoutRequest{
		FullName:      "Jane Doe",
		Address:       "12 Main St",
		PhoneNumber1:  "555-0100",
		PaymentMethod: "cash",
	}
}

func TestValidateCheckoutRejectsMissingFields(t *testing.T) {
	cart := []models.CartItem{{ProductID: primitive.NewObjectID(), Price: 10, Quantity: 1}}

	tests := []func(*checkoutRequest){
		func(r *checkoutRequest) { r.FullName = "   " },
		func(r *checkoutRequest) { r.Address = "" },
		func(r *checkoutRequest) { r.PhoneNumber1 = "" },
		func(r *checkoutRequest) { r.PaymentMethod = " " },
	}

	for i, mutate := range tests {
		req := validCheckoutRequest()
		mutate(&req)
		if err := validateCheckout(req, cart); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestValidateCheckoutRejectsEmptyCart(t *testing.T) {
	if err := validateCheckout(validCheckoutRequest(), nil); err != errEmptyCart {
		t.Fatalf("expected errEmptyCart, got %v", err)
	}
}

func TestValidateCheckoutAccepts(t *testing.T) {
	cart := []models.CartItem{{ProductID: primitive.NewObjectID(), Price: 10, Quantity: 1}}
	if err := validateCheckout(validCheckoutRequest(), cart); err != nil {
		t.Fatalf("expected valid checkout, got %v", err)
	}
}

func TestCheckoutFailureStatusMapping(t *testing.T) {
	status, message := checkoutFailureStatus(mongo.ErrNoDocuments)
	if status != 404 || message != "user not found" {
		t.Fatalf("expected 404 user not found, got %d %q", status, message)
	}

	status, message = checkoutFailureStatus(errEmptyCart)
	if status != 400 || message != errEmptyCart.Error() {
		t.Fatalf("expected 400 %q, got %d %q", errEmptyCart.Error(), status, message)
	}

	status, _ = checkoutFailureStatus(errMissingField)
	if status != 400 {
		t.Fatalf("expected 400 for missing field, got %d", status)
	}

	status, message = checkoutFailureStatus(errors.New("write conflict"))
	if status != 500 || message != "db error" {
		t.Fatalf("expected 500 db error, got %d %q", status, message)
	}
}

func TestBuildOrderSnapshotsCartAndTotal(t *testing.T) {
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()
	cart := []models.CartItem{
		{ProductID: productID, Name: "Sneakers", Price: 10.00, Quantity: 2},
	}

	order := buildOrder(7, userID, validCheckoutRequest(), cart)

	if order.OrderID != 7 {
		t.Fatalf("expected orderId 7, got %d", order.OrderID)
	}
	if order.UserID != userID {
		t.Fatalf("expected userId %s, got %s", userID.Hex(), order.UserID.Hex())
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("expected pending status, got %q", order.Status)
	}
	if order.TotalPrice != 20.00 {
		t.Fatalf("expected totalPrice 20.00, got %v", order.TotalPrice)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.ProductID != productID || item.Name != "Sneakers" || item.Price != 10.00 || item.Quantity != 2 {
		t.Fatalf("item does not match cart snapshot: %+v", item)
	}
}

func TestBuildOrderItemsAreDecoupledFromCart(t *testing.T) {
	cart := []models.CartItem{
		{ProductID: primitive.NewObjectID(), Name: "Sneakers", Price: 10, Quantity: 2},
	}

	order := buildOrder(1, primitive.NewObjectID(), validCheckoutRequest(), cart)

	cart[0].Quantity = 99
	cart[0].Price = 1

	if order.Items[0].Quantity != 2 || order.Items[0].Price != 10 {
		t.Fatalf("order items must be a snapshot, got %+v", order.Items[0])
	}
}

func TestBuildOrderTrimsContactFields(t *testing.T) {
	req := checkoutRequest{
		FullName:      "  Jane Doe  ",
		Address:       " 12 Main St ",
		PhoneNumber1:  " 555-0100 ",
		PaymentMethod: " cash ",
	}
	cart := []models.CartItem{{ProductID: primitive.NewObjectID(), Price: 1, Quantity: 1}}

	order := buildOrder(1, primitive.NewObjectID(), req, cart)

	if order.FullName != "Jane Doe" || order.Address != "12 Main St" ||
		order.PhoneNumber1 != "555-0100" || order.PaymentMethod != "cash" {
		t.Fatalf("expected trimmed fields, got %+v", order)
	}
}
