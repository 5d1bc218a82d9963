package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func GetCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userIDValue}).Decode(&user); err != nil {
			log.Println("[CART] [ERROR] get cart failed:", err)
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		if user.Cart == nil {
			user.Cart = []models.CartItem{}
		}

		total, count := cartTotals(user.Cart)
		c.JSON(http.StatusOK, gin.H{
			"items":      user.Cart,
			"totalPrice": total,
			"itemCount":  count,
		})
	}
}

// AddToCart appends a new line item or bumps the quantity of an existing one.
// Mutations are targeted array updates keyed by productId, never a rewrite of
// the whole cart. The stock check is advisory: it reads the product's current
// stock and rejects over-asks, but nothing re-verifies at write time.
func AddToCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/cart"
		defer handlePanic(c, route)

		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		quantity := req.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ProductID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{
			"_id":       productID,
			"isActive":  bson.M{"$ne": false},
			"isDeleted": bson.M{"$ne": true},
		}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			log.Println("[CART] [ERROR] user lookup failed:", err)
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		index := findCartItem(user.Cart, productID)

		resulting := quantity
		if index >= 0 {
			resulting += user.Cart[index].Quantity
		}
		if err := checkCartQuantity(product, resulting); err != nil {
			var stockErr insufficientStockError
			errors.As(err, &stockErr)
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "insufficient stock",
				"productId": stockErr.ProductID.Hex(),
				"name":      stockErr.Name,
				"available": stockErr.Available,
				"requested": stockErr.Requested,
			})
			return
		}

		now := time.Now()
		if index >= 0 {
			res, err := db.Collection("users").UpdateOne(ctx,
				cartLineFilter(userID, productID),
				bson.M{
					"$inc": bson.M{"cart.$.quantity": quantity},
					"$set": bson.M{"updatedAt": now},
				},
			)
			if err != nil || res.MatchedCount == 0 {
				log.Println("[CART] [ERROR] increment quantity failed:", err)
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
		} else {
			item := newCartItem(product, quantity, strings.TrimSpace(req.Color), strings.TrimSpace(req.Size))
			_, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
				"$push": bson.M{"cart": item},
				"$set":  bson.M{"updatedAt": now},
			})
			if err != nil {
				log.Println("[CART] [ERROR] push cart item failed:", err)
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
		}

		log.Println("[CART] [INFO] item added:", productID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
	}
}

// UpdateCartItem sets a line item's quantity. Quantities below 1 or above the
// product's current stock are rejected.
func UpdateCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /user/cart/:productId"
		defer handlePanic(c, route)

		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("productId")))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
			return
		}

		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if req.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be at least 1"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{
			"_id":       productID,
			"isDeleted": bson.M{"$ne": true},
		}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := checkCartQuantity(product, req.Quantity); err != nil {
			var stockErr insufficientStockError
			errors.As(err, &stockErr)
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "insufficient stock",
				"productId": stockErr.ProductID.Hex(),
				"name":      stockErr.Name,
				"available": stockErr.Available,
				"requested": stockErr.Requested,
			})
			return
		}

		res, err := db.Collection("users").UpdateOne(ctx,
			cartLineFilter(userID, productID),
			bson.M{
				"$set": bson.M{
					"cart.$.quantity": req.Quantity,
					"updatedAt":       time.Now(),
				},
			},
		)
		if err != nil {
			log.Println("[CART] [ERROR] update quantity failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
			return
		}

		log.Println("[CART] [INFO] quantity updated:", productID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
	}
}

func RemoveFromCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("productId")))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("users").UpdateOne(ctx,
			cartLineFilter(userID, productID),
			bson.M{
				"$pull": bson.M{"cart": bson.M{"productId": productID}},
				"$set":  bson.M{"updatedAt": time.Now()},
			},
		)
		if err != nil {
			log.Println("[CART] [ERROR] remove item failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
			return
		}

		log.Println("[CART] [INFO] item removed:", productID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "item removed"})
	}
}

func ClearCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		_, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{
				"cart":      []models.CartItem{},
				"updatedAt": time.Now(),
			},
		})
		if err != nil {
			log.Println("[CART] [ERROR] clear cart failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[CART] [INFO] cart cleared")
		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
	}
}
