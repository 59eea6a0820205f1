package models

import "time"

type CheckoutRequest struct {
	Name    string `json:"name" validate:"required,min=3,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,min=7,max=20"`
	Address string `json:"address" validate:"required,min=5,max=200"`
	City    string `json:"city" validate:"required,min=2,max=100"`
	Notes   string `json:"notes,omitempty" validate:"max=500"`
}

// OrderConfirmation is the simulated checkout result. Nothing is charged and
// nothing is persisted; the order number only identifies the confirmation.
type OrderConfirmation struct {
	OrderNumber string      `json:"orderNumber"`
	Customer    string      `json:"customer"`
	Email       string      `json:"email"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	Items       []CartEntry `json:"items"`
	Subtotal    float64     `json:"subtotal"`
	Shipping    float64     `json:"shipping"`
	Total       float64     `json:"total"`
	CreatedAt   time.Time   `json:"createdAt"`
}
