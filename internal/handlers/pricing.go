package handlers

// isDiscountActive reports whether a percentage discount should apply.
// Values outside (0, 100] are treated as no discount.
func isDiscountActive(discount float64) bool {
	return discount > 0 && discount <= 100
}

// discountedUnitPrice returns the unit price after applying a percentage
// discount. This is the snapshot price written onto cart and order items.
func discountedUnitPrice(price, discount float64) float64 {
	if isDiscountActive(discount) {
		return price * (1 - discount/100)
	}
	return price
}
