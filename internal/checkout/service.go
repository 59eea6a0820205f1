// Package checkout implements the simulated checkout: it turns the cart
// into an order confirmation, clears the ledger and optionally emails the
// customer. Nothing is charged and no order is persisted.
package checkout

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dfquintero/sportstore-gateway/internal/cart"
	appErrors "github.com/dfquintero/sportstore-gateway/internal/errors"
	"github.com/dfquintero/sportstore-gateway/internal/models"
	"github.com/google/uuid"
)

// Notifier sends the confirmation email. A nil Notifier disables emails.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order *models.OrderConfirmation) error
}

type Service struct {
	carts    *cart.Service
	notifier Notifier
}

func NewService(carts *cart.Service, notifier Notifier) *Service {
	return &Service{carts: carts, notifier: notifier}
}

// Checkout validates against an empty cart, freezes the totals into a
// confirmation, clears the cart exactly once, and fires the email without
// letting a delivery failure fail the checkout.
func (s *Service) Checkout(ctx context.Context, sessionKey string, req *models.CheckoutRequest) (*models.OrderConfirmation, error) {
	summary, err := s.carts.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	if len(summary.Items) == 0 {
		return nil, appErrors.BadRequestError("Cart is empty")
	}

	order := &models.OrderConfirmation{
		OrderNumber: newOrderNumber(),
		Customer:    req.Name,
		Email:       req.Email,
		Address:     req.Address,
		City:        req.City,
		Items:       summary.Items,
		Subtotal:    summary.Subtotal,
		Shipping:    summary.Shipping,
		Total:       summary.Total,
		CreatedAt:   time.Now(),
	}

	if err := s.carts.Clear(ctx, sessionKey); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendOrderConfirmation(ctx, order); err != nil {
			slog.Warn("order confirmation email failed",
				slog.String("order", order.OrderNumber),
				slog.String("error", err.Error()))
		}
	}

	slog.Info("checkout completed",
		slog.String("order", order.OrderNumber),
		slog.Int("items", len(order.Items)),
		slog.Float64("total", order.Total))

	return order, nil
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}
