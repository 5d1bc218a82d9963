package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

const orderCounterID = "orders"

// nextOrderID increments the order counter document and returns the new
// sequence value. Must run inside the checkout transaction so an aborted
// checkout does not orphan an order id. The single counter document
// serializes checkouts; acceptable at this order volume.
func nextOrderID(ctx context.Context, db *mongo.Database) (int64, error) {
	var counter models.Counter
	err := db.Collection("counters").FindOneAndUpdate(
		ctx,
		bson.M{"_id": orderCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// CreateOrder places an order from the user's current cart. Counter
// increment, order insert and cart clear run in one transaction, so a failed
// checkout leaves no partial state behind.
func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		// the cart is read inside the transaction: the snapshot that builds
		// the order is the snapshot the clear below wipes
		var order models.Order
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			var user models.User
			if err := db.Collection("users").FindOne(sessCtx, bson.M{"_id": userID}).Decode(&user); err != nil {
				return nil, err
			}

			if err := validateCheckout(req, user.Cart); err != nil {
				return nil, err
			}

			orderID, err := nextOrderID(sessCtx, db)
			if err != nil {
				return nil, err
			}

			order = buildOrder(orderID, userID, req, user.Cart)
			if _, err := db.Collection("orders").InsertOne(sessCtx, order); err != nil {
				return nil, err
			}

			_, err = db.Collection("users").UpdateByID(sessCtx, userID, bson.M{
				"$set": bson.M{
					"cart":      []models.CartItem{},
					"updatedAt": time.Now(),
				},
			})
			return nil, err
		})
		if err != nil {
			status, message := checkoutFailureStatus(err)
			if status == http.StatusInternalServerError {
				log.Println("[ORDER] [ERROR] checkout transaction failed:", err)
				respondWithError(c, status, route, message)
				return
			}
			c.JSON(status, gin.H{"error": message})
			return
		}

		log.Println("[ORDER] [INFO] order created:", order.OrderID, "user:", userID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"orderId":    order.OrderID,
			"totalPrice": order.TotalPrice,
			"message":    "order created",
		})
	}
}

// GetMyOrders lists the authenticated user's orders, newest first.
func GetMyOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, bson.M{"userId": userIDValue}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": orders})
	}
}
