package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusApproved  = "approved"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
// Any status may be selected from any other; there are no terminal states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is the immutable snapshot of a cart line taken at checkout.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Color     string             `bson:"color,omitempty" json:"color,omitempty"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`
}

// Order is the persisted order document. OrderID is a sequential integer
// assigned from the counters collection inside the checkout transaction.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID       int64              `bson:"orderId" json:"orderId"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	FullName      string             `bson:"fullName" json:"fullName"`
	Address       string             `bson:"address" json:"address"`
	PhoneNumber1  string             `bson:"phoneNumber1" json:"phoneNumber1"`
	PhoneNumber2  string             `bson:"phoneNumber2,omitempty" json:"phoneNumber2,omitempty"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	TotalPrice    float64            `bson:"totalPrice" json:"totalPrice"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
