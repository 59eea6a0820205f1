package handlers

import (
	"errors"
	"net/http"

	"github.com/dfquintero/sportstore-gateway/internal/api/middleware"
	"github.com/dfquintero/sportstore-gateway/internal/catalog"
	appErrors "github.com/dfquintero/sportstore-gateway/internal/errors"
	"github.com/dfquintero/sportstore-gateway/internal/models"
	"github.com/dfquintero/sportstore-gateway/internal/pricing"
	"github.com/dfquintero/sportstore-gateway/internal/utils"
	"github.com/dfquintero/sportstore-gateway/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	catalog   *catalog.Service
	validator *validator.Validate
}

func NewProductHandler(catalogService *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: catalogService, validator: validator.New()}
}

// ListProducts returns the catalog with the derived display values the
// storefront grid renders (min price, stock totals, low stock flag).
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := h.catalog.List(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list products", "error", err.Error())
			response.Error(w, err)

			return
		}

		views := make([]models.ProductView, 0, len(products))
		for _, p := range products {
			views = append(views, pricing.View(p))
		}

		response.Success(w, http.StatusOK, views)
	}
}

func (h *ProductHandler) GetProductBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")
		if slug == "" {
			response.Error(w, appErrors.BadRequestError("Product slug is required"))

			return
		}

		product, err := h.catalog.GetBySlug(r.Context(), slug)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, pricing.View(*product))
	}
}

func (h *ProductHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.catalog.Categories(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// CreateProduct handles the admin write path: the canonical payload is
// converted to the legacy shape before it leaves the gateway.
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SaveProductRequest
		if !h.parseAndValidate(w, r, &req) {
			return
		}

		product, err := h.catalog.Create(r.Context(), &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to create product", "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, product)
	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			response.Error(w, appErrors.BadRequestError("Product ID is required"))

			return
		}

		var req models.SaveProductRequest
		if !h.parseAndValidate(w, r, &req) {
			return
		}

		product, err := h.catalog.Update(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			response.Error(w, appErrors.BadRequestError("Product ID is required"))

			return
		}

		if err := h.catalog.Delete(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"deleted": id})
	}
}

func (h *ProductHandler) parseAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
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
