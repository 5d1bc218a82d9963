package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// CartItem is one product entry in a user's cart. Price carries the
// post-discount snapshot taken when the item was added; quantity is kept
// unique per productId within the cart array.
type CartItem struct {
	ProductID     primitive.ObjectID `bson:"productId" json:"productId"`
	Name          string             `bson:"name" json:"name"`
	Price         float64            `bson:"price" json:"price"`
	OriginalPrice float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Color         string             `bson:"color,omitempty" json:"color,omitempty"`
	Size          string             `bson:"size,omitempty" json:"size,omitempty"`
}

// FavoriteItem is a lightweight product reference embedded in the user
// document, enough to render a favorites list without a product lookup.
type FavoriteItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
}

// User represents the application user account. Cart and favorites are
// denormalized onto the user document, matching the storefront's read pattern.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         string             `bson:"role" json:"role"`
	Cart         []CartItem         `bson:"cart" json:"cart"`
	Favorites    []FavoriteItem     `bson:"favorites" json:"favorites"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
