package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

var errAlreadyApproved = errors.New("order already approved")

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus sets an order's status. Any status may be selected from
// any other. Only a transition into "approved" touches stock: every line
// item's product stock is decremented in one transaction, and the whole
// transaction aborts if any product lacks sufficient stock. An order that is
// already approved is never decremented twice.
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:id/status"
		defer handlePanic(c, route)

		orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || orderID < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if !models.ValidOrderStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		if req.Status != models.OrderStatusApproved {
			res, err := db.Collection("orders").UpdateOne(ctx,
				bson.M{"orderId": orderID},
				bson.M{"$set": bson.M{"status": req.Status}},
			)
			if err != nil {
				log.Println("[ORDER] [ERROR] status update failed:", err)
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			if res.MatchedCount == 0 {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			log.Println("[ORDER] [INFO] status updated:", orderID, "->", req.Status)
			c.JSON(http.StatusOK, gin.H{"message": "status updated"})
			return
		}

		if err := approveOrder(ctx, db, orderID); err != nil {
			var stockErr insufficientStockError
			if errors.As(err, &stockErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "insufficient stock",
					"productId": stockErr.ProductID.Hex(),
					"name":      stockErr.Name,
					"available": stockErr.Available,
					"requested": stockErr.Requested,
				})
				return
			}
			if errors.Is(err, errAlreadyApproved) {
				c.JSON(http.StatusConflict, gin.H{"error": "order already approved"})
				return
			}
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			log.Println("[ORDER] [ERROR] approval failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[ORDER] [INFO] order approved:", orderID)
		c.JSON(http.StatusOK, gin.H{"message": "order approved"})
	}
}

// approveOrder commits the status change together with every product's stock
// decrement, or nothing. The conditional stock filter plus the transaction's
// snapshot semantics keep stock from ever going negative under concurrent
// approvals; the status guard keys the decrement to this order's transition
// into "approved", so a retried approval is a no-op.
func approveOrder(ctx context.Context, db *mongo.Database, orderID int64) error {
	session, err := db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		var order models.Order
		if err := db.Collection("orders").FindOne(sessCtx, bson.M{"orderId": orderID}).Decode(&order); err != nil {
			return nil, err
		}

		if err := approvalGuard(order); err != nil {
			return nil, err
		}

		for _, item := range order.Items {
			var product models.Product
			err := db.Collection("products").FindOne(sessCtx, bson.M{"_id": item.ProductID}).Decode(&product)
			if err == mongo.ErrNoDocuments {
				return nil, insufficientStockError{
					ProductID: item.ProductID,
					Name:      item.Name,
					Requested: item.Quantity,
				}
			}
			if err != nil {
				return nil, err
			}

			if _, err := decrementStock(product, item.Quantity); err != nil {
				return nil, err
			}

			// the conditional filter keeps the write honest should the
			// snapshot read race a concurrent decrement
			res, err := db.Collection("products").UpdateOne(sessCtx,
				bson.M{"_id": item.ProductID, "stock": bson.M{"$gte": item.Quantity}},
				bson.M{"$inc": bson.M{"stock": -item.Quantity}},
			)
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, insufficientStockError{
					ProductID: item.ProductID,
					Name:      item.Name,
					Available: product.Stock,
					Requested: item.Quantity,
				}
			}
		}

		res, err := db.Collection("orders").UpdateOne(sessCtx,
			bson.M{"orderId": orderID, "status": bson.M{"$ne": models.OrderStatusApproved}},
			bson.M{"$set": bson.M{"status": models.OrderStatusApproved}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, errAlreadyApproved
		}
		return nil, nil
	})
	return err
}
