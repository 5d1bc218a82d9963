package handlers

import "storefront/internal/models"

// approvalGuard keys the stock decrement to a single transition into
// "approved": an order already carrying the status is never decremented
// again.
func approvalGuard(order models.Order) error {
	if order.Status == models.OrderStatusApproved {
		return errAlreadyApproved
	}
	return nil
}

// decrementStock computes the stock remaining after an order line is
// approved, failing when the result would go negative.
func decrementStock(product models.Product, requested int) (int, error) {
	if product.Stock < requested {
		return 0, insufficientStockError{
			ProductID: product.ID,
			Name:      product.Name,
			Available: product.Stock,
			Requested: requested,
		}
	}
	return product.Stock - requested, nil
}
