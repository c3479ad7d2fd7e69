package models

// LineItem is one product entry in the cart together with its quantity.
// At most one LineItem exists per ProductID and Quantity is always >= 1.
type LineItem struct {
	ProductID   int     `json:"productId"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"` // unit price
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity"`
}

// Cart is the ordered list of line items (insertion order) plus derived fields.
type Cart struct {
	Items []LineItem `json:"items"`

	// Count is the sum of quantities.
	Count int `json:"count"`

	// TotalPrice is the sum of price × quantity.
	TotalPrice float64 `json:"totalPrice"`
}

// OrderSummary is the checkout breakdown for a cart.
type OrderSummary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}
