package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductColor is a selectable variant; Image, when set, replaces the main
// image on selection.
type ProductColor struct {
	Name  string `bson:"name" json:"name"`
	Code  string `bson:"code,omitempty" json:"code,omitempty"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Price         float64            `bson:"price" json:"price"`
	OriginalPrice float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Discount      float64            `bson:"discount,omitempty" json:"discount,omitempty"`
	FinalPrice    float64            `bson:"-" json:"finalPrice"`
	Category      StringList         `bson:"category" json:"category"`
	Sections      StringList         `bson:"sections,omitempty" json:"sections,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	MainImage     string             `bson:"mainImage,omitempty" json:"mainImage,omitempty"`
	Images        []string           `bson:"images,omitempty" json:"images,omitempty"`
	Colors        []ProductColor     `bson:"colors,omitempty" json:"colors,omitempty"`
	Sizes         StringList         `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Details       map[string]string  `bson:"details,omitempty" json:"details,omitempty"`
	Stock         int                `bson:"stock" json:"stock"`
	InStock       bool               `bson:"-" json:"inStock"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	IsDeleted     bool               `bson:"isDeleted" json:"isDeleted,omitempty"`
	DeletedAt     *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
