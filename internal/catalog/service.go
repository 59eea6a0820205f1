// Package catalog serves canonical products to the storefront and pushes
// admin edits back to the legacy backend in its own shape.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dfquintero/sportstore-gateway/internal/adapter"
	"github.com/dfquintero/sportstore-gateway/internal/cache"
	"github.com/dfquintero/sportstore-gateway/internal/config"
	appErrors "github.com/dfquintero/sportstore-gateway/internal/errors"
	"github.com/dfquintero/sportstore-gateway/internal/models"
	"github.com/dfquintero/sportstore-gateway/internal/upstream"
	"github.com/microcosm-cc/bluemonday"
)

// Backend is the slice of the upstream client the catalog needs.
type Backend interface {
	ListProducts(ctx context.Context) ([]*adapter.RawProduct, error)
	GetProductBySlug(ctx context.Context, slug string) (*adapter.RawProduct, error)
	ListCategories(ctx context.Context) ([]*adapter.RawCategory, error)
	CreateProduct(ctx context.Context, payload upstream.ProductPayload) (*adapter.RawProduct, error)
	UpdateProduct(ctx context.Context, id string, payload upstream.ProductPayload) (*adapter.RawProduct, error)
	DeleteProduct(ctx context.Context, id string) error
}

type Service struct {
	backend   Backend
	cache     cache.Cache
	ttl       time.Duration
	sanitizer *bluemonday.Policy
}

func NewService(backend Backend, c cache.Cache, cfg *config.CacheConfig) *Service {
	return &Service{
		backend:   backend,
		cache:     c,
		ttl:       cfg.ProductTTL,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// List returns the full adapted catalog, read through the cache. Cache
// failures degrade to a direct upstream fetch.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product

	if found, err := s.cache.Get(ctx, cache.ProductListKey, &products); err != nil {
		slog.Warn("catalog cache read failed", slog.String("error", err.Error()))
	} else if found {
		return products, nil
	}

	raws, err := s.backend.ListProducts(ctx)
	if err != nil {
		return nil, appErrors.UpstreamError("Failed to fetch products").WithError(err)
	}

	products = adapter.AdaptProducts(raws)

	if err := s.cache.Set(ctx, cache.ProductListKey, products, s.ttl); err != nil {
		slog.Warn("catalog cache write failed", slog.String("error", err.Error()))
	}

	return products, nil
}

// GetBySlug returns one adapted product. Adaptation goes through the same
// backfill as listings, so detail pages also always have a variant and image.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product

	key := cache.ProductSlugKey(slug)

	if found, err := s.cache.Get(ctx, key, &product); err != nil {
		slog.Warn("catalog cache read failed", slog.String("error", err.Error()))
	} else if found {
		return &product, nil
	}

	raw, err := s.backend.GetProductBySlug(ctx, slug)
	if err != nil {
		var statusErr *upstream.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.UpstreamError("Failed to fetch product").WithError(err)
	}

	adapted := adapter.AdaptProducts([]*adapter.RawProduct{raw})
	if len(adapted) == 0 {
		return nil, appErrors.NotFoundError("Product not found")
	}

	product = adapted[0]

	if err := s.cache.Set(ctx, key, product, s.ttl); err != nil {
		slog.Warn("catalog cache write failed", slog.String("error", err.Error()))
	}

	return &product, nil
}

// GetByID scans the listing for the product; the legacy backend has no
// by-id read endpoint the storefront may use.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}

	return nil, appErrors.NotFoundError("Product not found")
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category

	if found, err := s.cache.Get(ctx, cache.CategoryListKey, &categories); err != nil {
		slog.Warn("catalog cache read failed", slog.String("error", err.Error()))
	} else if found {
		return categories, nil
	}

	raws, err := s.backend.ListCategories(ctx)
	if err != nil {
		return nil, appErrors.UpstreamError("Failed to fetch categories").WithError(err)
	}

	categories = adapter.AdaptCategories(raws)

	if err := s.cache.Set(ctx, cache.CategoryListKey, categories, s.ttl); err != nil {
		slog.Warn("catalog cache write failed", slog.String("error", err.Error()))
	}

	return categories, nil
}

// Create submits a new product in the legacy shape and returns the adapted
// result. Free-text fields are sanitized before leaving the gateway.
func (s *Service) Create(ctx context.Context, req *models.SaveProductRequest) (*models.Product, error) {
	raw, err := s.backend.CreateProduct(ctx, s.toPayload(req))
	if err != nil {
		return nil, appErrors.UpstreamError("Failed to create product").WithError(err)
	}

	s.invalidate(ctx, req.Slug)

	return adapter.AdaptProduct(raw), nil
}

func (s *Service) Update(ctx context.Context, id string, req *models.SaveProductRequest) (*models.Product, error) {
	raw, err := s.backend.UpdateProduct(ctx, id, s.toPayload(req))
	if err != nil {
		var statusErr *upstream.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.UpstreamError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, req.Slug)

	return adapter.AdaptProduct(raw), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.backend.DeleteProduct(ctx, id); err != nil {
		var statusErr *upstream.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
			return appErrors.NotFoundError("Product not found").WithError(err)
		}

		return appErrors.UpstreamError("Failed to delete product").WithError(err)
	}

	s.invalidate(ctx, "")

	return nil
}

// toPayload builds the legacy-shape write payload through the inverse
// conversions, sanitizing admin-entered text on the way out.
func (s *Service) toPayload(req *models.SaveProductRequest) upstream.ProductPayload {
	product := models.Product{
		Name:        s.sanitizer.Sanitize(req.Name),
		Slug:        req.Slug,
		Description: s.sanitizer.Sanitize(req.Description),
		Images:      req.Images,
		Featured:    req.Featured,
		IsNew:       req.IsNew,
	}

	if req.CategoryID != "" {
		product.Category = &models.Category{ID: req.CategoryID}
	}

	payload := upstream.ProductPayload{LegacyProduct: adapter.ProductToPostgres(&product)}

	for _, v := range req.Variants {
		variant := models.Variant{
			SKU:           v.SKU,
			Color:         v.Color,
			Size:          v.Size,
			Stock:         v.Stock,
			PurchasePrice: v.PurchasePrice,
			SalePrice:     v.SalePrice,
		}
		payload.Variantes = append(payload.Variantes, adapter.VariantToPostgres(&variant))
	}

	return payload
}

func (s *Service) invalidate(ctx context.Context, slug string) {
	if err := s.cache.Delete(ctx, cache.ProductListKey); err != nil {
		slog.Warn("catalog cache invalidation failed", slog.String("error", err.Error()))
	}

	if slug != "" {
		if err := s.cache.Delete(ctx, cache.ProductSlugKey(slug)); err != nil {
			slog.Warn("catalog cache invalidation failed", slog.String("error", err.Error()))
		}
	}
}
