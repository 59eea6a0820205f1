package handlers

import (
	"errors"
	"net/http"

	"github.com/dfquintero/sportstore-gateway/internal/api/middleware"
	"github.com/dfquintero/sportstore-gateway/internal/checkout"
	appErrors "github.com/dfquintero/sportstore-gateway/internal/errors"
	"github.com/dfquintero/sportstore-gateway/internal/models"
	"github.com/dfquintero/sportstore-gateway/internal/utils"
	"github.com/dfquintero/sportstore-gateway/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkout  *checkout.Service
	validator *validator.Validate
}

func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkoutService, validator: validator.New()}
}

func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionKey := r.Header.Get(SessionHeader)
		if sessionKey == "" {
			response.Error(w, appErrors.BadRequestError("Session ID is required"))

			return
		}

		var req models.CheckoutRequest

		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid request body").WithError(err))

			return
		}

		if err := utils.ValidateStruct(h.validator, &req); err != nil {
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				response.ValidationError(w, validationErrs)
			} else {
				response.Error(w, appErrors.ValidationError("Invalid input data"))
			}

			return
		}

		order, err := h.checkout.Checkout(r.Context(), sessionKey, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Order confirmed",
			"order", order.OrderNumber)
		response.Success(w, http.StatusCreated, order)
	}
}
