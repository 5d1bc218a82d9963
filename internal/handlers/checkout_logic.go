package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

var (
	errEmptyCart    = errors.New("cart is empty")
	errMissingField = errors.New("all required fields must be filled")
)

type checkoutRequest struct {
	FullName      string `json:"fullName" binding:"required"`
	Address       string `json:"address" binding:"required"`
	PhoneNumber1  string `json:"phoneNumber1" binding:"required"`
	PhoneNumber2  string `json:"phoneNumber2"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// validateCheckout re-checks the required fields after trimming; gin binding
// accepts whitespace-only values.
func validateCheckout(req checkoutRequest, cart []models.CartItem) error {
	if strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.Address) == "" ||
		strings.TrimSpace(req.PhoneNumber1) == "" ||
		strings.TrimSpace(req.PaymentMethod) == "" {
		return errMissingField
	}
	if len(cart) == 0 {
		return errEmptyCart
	}
	return nil
}

// checkoutFailureStatus maps a failed checkout transaction to its response.
// Validation runs inside the transaction, so its errors surface here too.
func checkoutFailureStatus(err error) (int, string) {
	switch {
	case err == mongo.ErrNoDocuments:
		return http.StatusNotFound, "user not found"
	case errors.Is(err, errEmptyCart), errors.Is(err, errMissingField):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "db error"
}

// buildOrder snapshots the cart into a new pending order. The items slice is
// a deep copy: later cart or product mutations never touch a placed order.
func buildOrder(orderID int64, userID primitive.ObjectID, req checkoutRequest, cart []models.CartItem) models.Order {
	items := make([]models.OrderItem, 0, len(cart))
	total := 0.0
	for _, line := range cart {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
			Color:     line.Color,
			Size:      line.Size,
		})
		total += line.Price * float64(line.Quantity)
	}

	return models.Order{
		OrderID:       orderID,
		UserID:        userID,
		FullName:      strings.TrimSpace(req.FullName),
		Address:       strings.TrimSpace(req.Address),
		PhoneNumber1:  strings.TrimSpace(req.PhoneNumber1),
		PhoneNumber2:  strings.TrimSpace(req.PhoneNumber2),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		TotalPrice:    total,
		Items:         items,
		Status:        models.OrderStatusPending,
		CreatedAt:     time.Now(),
	}
}
