package models

// CartEntry is one line item. Product and Variant are snapshots captured at
// add time, so later catalog mutations never change an already-carted price.
type CartEntry struct {
	Product  Product `json:"product"`
	Variant  Variant `json:"variant"`
	Quantity int     `json:"quantity"`
}

// CartSummary is the read-only view handed to the UI: entries plus the
// derived totals, recomputed on every read.
type CartSummary struct {
	Items     []CartEntry `json:"items"`
	ItemCount int         `json:"itemCount"`
	Subtotal  float64     `json:"subtotal"`
	Shipping  float64     `json:"shipping"`
	Total     float64     `json:"total"`
}

type AddItemRequest struct {
	ProductID  string `json:"productId" validate:"required"`
	VariantSKU string `json:"variantSku" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

// UpdateQuantityRequest deliberately leaves Quantity unconstrained: a
// non-positive value is not a validation failure, it is a silent no-op.
type UpdateQuantityRequest struct {
	ProductID  string `json:"productId" validate:"required"`
	VariantSKU string `json:"variantSku" validate:"required"`
	Quantity   int    `json:"quantity"`
}
