package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dfquintero/sportstore-gateway/internal/api/handlers"
	"github.com/dfquintero/sportstore-gateway/internal/cart"
	appErrors "github.com/dfquintero/sportstore-gateway/internal/errors"
	"github.com/dfquintero/sportstore-gateway/internal/models"
	"github.com/dfquintero/sportstore-gateway/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFinder struct {
	products map[string]*models.Product
}

func (f *stubFinder) GetByID(_ context.Context, id string) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}

	return nil, appErrors.NotFoundError("Product not found")
}

func cartServer(t *testing.T) (*http.ServeMux, *cart.Service) {
	t.Helper()

	finder := &stubFinder{products: map[string]*models.Product{
		"1": {
			ID:   "1",
			Name: "Balón",
			Variants: []models.Variant{
				{SKU: "BAL-5", Stock: 10, SalePrice: 89000},
			},
		},
	}}
	carts := cart.NewService(cart.NewMemoryStore(), finder)
	handler := handlers.NewCartHandler(carts)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/cart", handler.GetCart())
	mux.HandleFunc("POST /api/v1/cart/items", handler.AddItem())
	mux.HandleFunc("PUT /api/v1/cart/items", handler.UpdateQuantity())
	mux.HandleFunc("DELETE /api/v1/cart/items/{productId}/{sku}", handler.RemoveItem())
	mux.HandleFunc("DELETE /api/v1/cart", handler.ClearCart())

	return mux, carts
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()

	var envelope response.APIResponse

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}

func TestCartHandlerSession(t *testing.T) {
	t.Run("Mints A Session When Header Absent", func(t *testing.T) {
		// Arrange
		mux, _ := cartServer(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		rec := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(handlers.SessionHeader))
	})

	t.Run("Echoes An Existing Session Back", func(t *testing.T) {
		// Arrange
		mux, _ := cartServer(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set(handlers.SessionHeader, "sess-42")
		rec := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, "sess-42", rec.Header().Get(handlers.SessionHeader))
	})
}

func TestCartHandlerAddItem(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mux, _ := cartServer(t)
		body := `{"productId": "1", "variantSku": "BAL-5", "quantity": 2}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
		req.Header.Set(handlers.SessionHeader, "sess-1")
		rec := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.True(t, envelope.Success)

		var summary models.CartSummary
		data, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &summary))
		assert.Equal(t, 2, summary.ItemCount)
		assert.InEpsilon(t, 178000.0, summary.Subtotal, 1e-9)
	})

	t.Run("Failure - Missing Quantity", func(t *testing.T) {
		// Arrange
		mux, _ := cartServer(t)
		body := `{"productId": "1", "variantSku": "BAL-5"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
		rec := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		envelope := decodeEnvelope(t, rec)
		assert.False(t, envelope.Success)
	})

	t.Run("Failure - Malformed Body", func(t *testing.T) {
		// Arrange
		mux, _ := cartServer(t)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Arrange
		mux, _ := cartServer(t)
		body := `{"productId": "404", "variantSku": "X", "quantity": 1}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
		rec := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCartHandlerUpdateQuantity(t *testing.T) {
	t.Run("Zero Quantity Returns The Unchanged Cart", func(t *testing.T) {
		// Arrange
		mux, carts := cartServer(t)
		_, err := carts.AddItem(context.Background(), "sess-1", &models.AddItemRequest{
			ProductID: "1", VariantSKU: "BAL-5", Quantity: 2,
		})
		require.NoError(t, err)

		body := `{"productId": "1", "variantSku": "BAL-5", "quantity": 0}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items", strings.NewReader(body))
		req.Header.Set(handlers.SessionHeader, "sess-1")
		rec := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)

		envelope := decodeEnvelope(t, rec)
		var summary models.CartSummary
		data, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &summary))
		assert.Equal(t, 2, summary.ItemCount)
	})
}

func TestCartHandlerRemoveItem(t *testing.T) {
	// Arrange
	mux, carts := cartServer(t)
	_, err := carts.AddItem(context.Background(), "sess-1", &models.AddItemRequest{
		ProductID: "1", VariantSKU: "BAL-5", Quantity: 1,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/1/BAL-5", nil)
	req.Header.Set(handlers.SessionHeader, "sess-1")
	rec := httptest.NewRecorder()

	// Act
	mux.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	summary, err := carts.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}

func TestCartHandlerClearCart(t *testing.T) {
	// Arrange
	mux, carts := cartServer(t)
	_, err := carts.AddItem(context.Background(), "sess-1", &models.AddItemRequest{
		ProductID: "1", VariantSKU: "BAL-5", Quantity: 3,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	req.Header.Set(handlers.SessionHeader, "sess-1")
	rec := httptest.NewRecorder()

	// Act
	mux.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)

	summary, err := carts.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}
