package catalog

// Product is a catalog entry as served by the catalog API. Only ID and
// Category matter to the recommendation engine.
type Product struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// OrderItem is one line of an order. Product may be absent when the
// catalog API does not expand the reference.
type OrderItem struct {
	ProductID string   `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

// Order is a user's past purchase, read-only for this service.
type Order struct {
	ID     string      `json:"id"`
	UserID string      `json:"user_id"`
	Items  []OrderItem `json:"items"`
}
