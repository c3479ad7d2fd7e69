package calculator

import (
	"math"

	"github.com/mmynk/shophub/internal/models"
)

const (
	// ShippingFee is the flat shipping charge for a non-empty order.
	ShippingFee = 5.00

	// TaxRate is applied to the cart subtotal.
	TaxRate = 0.08
)

// CartTotals returns the derived count (sum of quantities) and total price
// (sum of unit price × quantity) for items.
func CartTotals(items []models.LineItem) (count int, total float64) {
	for _, item := range items {
		count += item.Quantity
		total += item.Price * float64(item.Quantity)
	}
	return count, roundCents(total)
}

// NewCart builds a Cart from items with its derived fields filled in.
func NewCart(items []models.LineItem) models.Cart {
	if items == nil {
		items = []models.LineItem{}
	}
	count, total := CartTotals(items)
	return models.Cart{
		Items:      items,
		Count:      count,
		TotalPrice: total,
	}
}

// Summarize computes the checkout breakdown for cart.
// Shipping is only charged when the cart holds at least one item.
func Summarize(cart models.Cart) models.OrderSummary {
	summary := models.OrderSummary{
		Subtotal: cart.TotalPrice,
		Count:    cart.Count,
	}
	if cart.Count == 0 {
		return summary
	}

	summary.Shipping = ShippingFee
	summary.Tax = roundCents(cart.TotalPrice * TaxRate)
	summary.Total = roundCents(summary.Subtotal + summary.Shipping + summary.Tax)
	return summary
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
