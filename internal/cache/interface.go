package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const (
	ProductListKey    = "catalog:products"
	CategoryListKey   = "catalog:categories"
	ProductSlugPrefix = "catalog:product:"
)

func ProductSlugKey(slug string) string {
	return ProductSlugPrefix + slug
}
