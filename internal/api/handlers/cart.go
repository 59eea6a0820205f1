package handlers

import (
	"errors"
	"net/http"

	"github.com/dfquintero/sportstore-gateway/internal/cart"
	appErrors "github.com/dfquintero/sportstore-gateway/internal/errors"
	"github.com/dfquintero/sportstore-gateway/internal/models"
	"github.com/dfquintero/sportstore-gateway/internal/utils"
	"github.com/dfquintero/sportstore-gateway/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SessionHeader identifies the browsing session owning a cart. The gateway
// mints an id when the client arrives without one and echoes it back.
const SessionHeader = "X-Session-ID"

type CartHandler struct {
	carts     *cart.Service
	validator *validator.Validate
}

func NewCartHandler(cartService *cart.Service) *CartHandler {
	return &CartHandler{carts: cartService, validator: validator.New()}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := h.carts.Get(r.Context(), h.session(w, r))
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AddItemRequest
		if !h.parseAndValidate(w, r, &req) {
			return
		}

		summary, err := h.carts.AddItem(r.Context(), h.session(w, r), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UpdateQuantityRequest
		if !h.parseAndValidate(w, r, &req) {
			return
		}

		summary, err := h.carts.UpdateQuantity(r.Context(), h.session(w, r), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := r.PathValue("productId")
		sku := r.PathValue("sku")

		if productID == "" || sku == "" {
			response.Error(w, appErrors.BadRequestError("Product ID and variant SKU are required"))

			return
		}

		summary, err := h.carts.RemoveItem(r.Context(), h.session(w, r), productID, sku)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.carts.Clear(r.Context(), h.session(w, r)); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}

func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) string {
	sessionKey := r.Header.Get(SessionHeader)
	if sessionKey == "" {
		sessionKey = uuid.NewString()
	}

	w.Header().Set(SessionHeader, sessionKey)

	return sessionKey
}

func (h *CartHandler) parseAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := utils.DecodeJSONBody(r, dest); err != nil {
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithError(err))

		return false
	}

	if err := utils.ValidateStruct(h.validator, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
		} else {
			response.Error(w, appErrors.ValidationError("Invalid input data"))
		}

		return false
	}

	return true
}
