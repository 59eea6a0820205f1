// Package pricing derives the display values the storefront shows next to a
// product: minimum sale price, stock totals, low-stock signal and shipping.
// All functions are pure and leave the product untouched.
package pricing

import "github.com/dfquintero/sportstore-gateway/internal/models"

const (
	// DefaultPrice is shown when neither the variants nor the legacy flat
	// price carry a usable value.
	DefaultPrice = 150000

	// FreeShippingThreshold is the cart subtotal at which shipping is free.
	FreeShippingThreshold = 100000

	// FlatShippingFee applies below the threshold.
	FlatShippingFee = 5000

	lowStockCeiling = 10
)

// MinPrice is the minimum sale price across variants with a positive sale
// price. When no variant qualifies it falls back to the product's legacy
// flat price, then to DefaultPrice. Legacy records use 0 for "no price", so
// zero-priced variants are excluded from the minimum.
func MinPrice(p *models.Product) float64 {
	min := 0.0

	for _, v := range p.Variants {
		if v.SalePrice <= 0 {
			continue
		}

		if min == 0 || v.SalePrice < min {
			min = v.SalePrice
		}
	}

	if min > 0 {
		return min
	}

	if p.Price > 0 {
		return p.Price
	}

	return DefaultPrice
}

// TotalStock sums stock across all variants. Stock is clamped non-negative
// at adaptation, so the sum never goes below zero.
func TotalStock(p *models.Product) int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}

	return total
}

// IsLowStock reports the display-only low stock signal: some stock, but
// fewer than ten units across all variants.
func IsLowStock(p *models.Product) bool {
	total := TotalStock(p)

	return total > 0 && total < lowStockCeiling
}

// ShippingCost is a pure function of the cart subtotal: free at or above the
// threshold, the flat fee below it.
func ShippingCost(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}

	return FlatShippingFee
}

// View bundles a product with its derived display values.
func View(p models.Product) models.ProductView {
	return models.ProductView{
		Product:    p,
		MinPrice:   MinPrice(&p),
		TotalStock: TotalStock(&p),
		LowStock:   IsLowStock(&p),
	}
}
