package handlers

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

// insufficientStockError names the product that lacked stock, both for the
// advisory cart checks and for the approval transaction.
type insufficientStockError struct {
	ProductID primitive.ObjectID
	Name      string
	Available int
	Requested int
}

func (e insufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for product %s: %d available, %d requested", e.Name, e.Available, e.Requested)
}

// cartLineFilter matches the user document only when the cart holds a line
// for the product. Mutations keyed on this filter report MatchedCount 0 for
// absent items; a bare _id filter would match the user document regardless.
func cartLineFilter(userID, productID primitive.ObjectID) bson.M {
	return bson.M{"_id": userID, "cart.productId": productID}
}

func findCartItem(cart []models.CartItem, productID primitive.ObjectID) int {
	for i, item := range cart {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// newCartItem builds the line item snapshot for a product being added to the
// cart. Price carries the post-discount unit price.
func newCartItem(product models.Product, quantity int, color, size string) models.CartItem {
	item := models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     discountedUnitPrice(product.Price, product.Discount),
		Quantity:  quantity,
		Image:     product.MainImage,
		Color:     color,
		Size:      size,
	}
	if isDiscountActive(product.Discount) {
		item.OriginalPrice = product.Price
	}
	return item
}

// checkCartQuantity enforces the advisory stock bound: the resulting quantity
// for a line item must stay within the product's current stock snapshot.
func checkCartQuantity(product models.Product, resulting int) error {
	if resulting > product.Stock {
		return insufficientStockError{
			ProductID: product.ID,
			Name:      product.Name,
			Available: product.Stock,
			Requested: resulting,
		}
	}
	return nil
}

// cartTotals sums the cart's line totals and item count.
func cartTotals(cart []models.CartItem) (float64, int) {
	total := 0.0
	count := 0
	for _, item := range cart {
		total += item.Price * float64(item.Quantity)
		count += item.Quantity
	}
	return total, count
}
