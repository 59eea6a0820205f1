// Package adapter is the single translation boundary between the two backend
// record shapes (the relational Spanish-named one and the adapted
// English-named one) and the canonical model. Every other package operates on
// canonical types only. Adaptation never fails: malformed input degrades to
// defaults and logs a diagnostic.
package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/dfquintero/sportstore-gateway/internal/models"
)

const (
	// UncategorizedName marks a category whose id arrived without a name.
	UncategorizedName = "Sin categoría"

	// Defaults for the synthetic variant backfilled onto products that
	// arrive with no variant breakdown.
	DefaultVariantColor         = "Negro"
	DefaultVariantSize          = "Único"
	DefaultVariantStock         = 10
	DefaultVariantPurchasePrice = 100000
	DefaultVariantSalePrice     = 150000
)

// placeholderPalette drives the deterministic placeholder image color:
// leading numeric portion of the product id, modulo the palette size.
var placeholderPalette = [...]string{"d946ef", "a855f7", "2dd4bf", "f0abfc", "c026d3"}

// AdaptProduct converts a raw record in either shape to the canonical model.
// Returns nil for nil input. No backfill happens here; synthetic variants and
// images are a list-level concern (AdaptProducts).
func AdaptProduct(raw *RawProduct) *models.Product {
	if raw == nil {
		return nil
	}

	id := firstString(raw.ID.String(), raw.MongoID)

	var category *models.Category

	switch {
	case raw.CategoriaID != "":
		name := raw.CategoriaNombre
		if name == "" && raw.Category != nil {
			name = firstString(raw.Category.Nombre, raw.Category.Name)
		}
		if name == "" {
			name = UncategorizedName
		}

		category = &models.Category{ID: raw.CategoriaID.String(), Name: name}
	case raw.Category != nil:
		catID := firstString(raw.Category.ID.String(), raw.Category.MongoID)
		if catID != "" {
			name := firstString(raw.Category.Nombre, raw.Category.Name)
			if name == "" {
				name = UncategorizedName
			}

			category = &models.Category{ID: catID, Name: name}
		}
	}

	return &models.Product{
		ID:          id,
		Name:        firstString(raw.Nombre, raw.Name),
		Slug:        raw.Slug,
		Description: firstString(raw.Descripcion, raw.Description),
		Category:    category,
		Images:      decodeImages(firstRaw(raw.Imagenes, raw.Images), id),
		Variants:    decodeVariants(firstRaw(raw.Variantes, raw.Variants), id),
		Price:       floatValue(raw.Precio),
		Featured:    boolAlias(raw.Destacado, raw.Featured, false),
		IsNew:       boolAlias(raw.Nuevo, raw.IsNew, false),
		Active:      boolAlias(raw.Activo, raw.Active, true),
		CreatedAt:   firstString(raw.CreatedAt, raw.CreatedAtAlias),
	}
}

// AdaptProducts adapts a whole listing and enforces the rendering invariant:
// every product leaves with at least one variant and one image. Nil input
// yields an empty slice.
func AdaptProducts(raws []*RawProduct) []models.Product {
	products := make([]models.Product, 0, len(raws))

	for _, raw := range raws {
		adapted := AdaptProduct(raw)
		if adapted == nil {
			continue
		}

		if len(adapted.Variants) == 0 {
			adapted.Variants = []models.Variant{defaultVariant(adapted.ID)}
		}

		if len(adapted.Images) == 0 {
			adapted.Images = []string{PlaceholderImage(adapted.ID, adapted.Name)}
		}

		products = append(products, *adapted)
	}

	return products
}

// AdaptVariant converts a raw variant. Returns nil for nil input. Missing or
// negative stock clamps to 0; a zero legacy price falls through to the
// adapted-shape price, matching the observed backend behavior.
func AdaptVariant(raw *RawVariant) *models.Variant {
	if raw == nil {
		return nil
	}

	return &models.Variant{
		ID:            firstString(raw.ID.String(), raw.MongoID),
		SKU:           raw.SKU,
		Color:         raw.Color,
		Size:          firstString(raw.Talla, raw.Size),
		Stock:         clampStock(raw.Stock),
		PurchasePrice: firstPositive(raw.PrecioCompra, raw.PurchasePrice),
		SalePrice:     firstPositive(raw.PrecioVenta, raw.SalePrice),
	}
}

// AdaptVariants adapts a sequence, skipping nil entries. There is no
// synthetic backfill at this level.
func AdaptVariants(raws []*RawVariant) []models.Variant {
	variants := make([]models.Variant, 0, len(raws))

	for _, raw := range raws {
		if adapted := AdaptVariant(raw); adapted != nil {
			variants = append(variants, *adapted)
		}
	}

	return variants
}

// AdaptUser converts a raw user record. The legacy role "cliente" maps to
// "customer"; every other role value passes through verbatim.
func AdaptUser(raw *RawUser) *models.User {
	if raw == nil {
		return nil
	}

	return &models.User{
		ID:        firstString(raw.ID.String(), raw.MongoID),
		Name:      firstString(raw.Nombre, raw.Name),
		Email:     raw.Email,
		Phone:     firstString(raw.Telefono, raw.Phone),
		Role:      RoleFromRaw(firstString(raw.Rol, raw.Role)),
		Active:    boolAlias(raw.Activo, raw.Active, true),
		CreatedAt: firstString(raw.CreatedAt, raw.CreatedAtAlias),
	}
}

// AdaptCategory converts a raw category, defaulting a missing name to the
// uncategorized marker. Returns nil for nil input or an id-less record.
func AdaptCategory(raw *RawCategory) *models.Category {
	if raw == nil {
		return nil
	}

	id := firstString(raw.ID.String(), raw.MongoID)
	if id == "" {
		return nil
	}

	name := firstString(raw.Nombre, raw.Name)
	if name == "" {
		name = UncategorizedName
	}

	return &models.Category{ID: id, Name: name}
}

func AdaptCategories(raws []*RawCategory) []models.Category {
	categories := make([]models.Category, 0, len(raws))

	for _, raw := range raws {
		if adapted := AdaptCategory(raw); adapted != nil {
			categories = append(categories, *adapted)
		}
	}

	return categories
}

// RoleFromRaw maps the legacy "cliente" to the canonical customer role and
// leaves any other value untouched.
func RoleFromRaw(role string) string {
	if role == "cliente" {
		return models.RoleCustomer
	}

	return role
}

// ProductToPostgres is the write-path inverse of AdaptProduct for the fields
// both shapes share. Adapting a legacy record and converting it back must
// reproduce the original values.
func ProductToPostgres(p *models.Product) LegacyProduct {
	if p == nil {
		return LegacyProduct{}
	}

	legacy := LegacyProduct{
		Nombre:      p.Name,
		Slug:        p.Slug,
		Descripcion: p.Description,
		Imagenes:    p.Images,
		Destacado:   p.Featured,
		Nuevo:       p.IsNew,
	}

	if p.Category != nil {
		legacy.CategoriaID = p.Category.ID
	}

	return legacy
}

// VariantToPostgres is the write-path inverse of AdaptVariant.
func VariantToPostgres(v *models.Variant) LegacyVariant {
	if v == nil {
		return LegacyVariant{}
	}

	return LegacyVariant{
		SKU:          v.SKU,
		Color:        v.Color,
		Talla:        v.Size,
		Stock:        v.Stock,
		PrecioCompra: v.PurchasePrice,
		PrecioVenta:  v.SalePrice,
	}
}

// PlaceholderImage builds the deterministic placeholder URL used when a
// product has no images. The palette index depends only on the id, so the
// same product renders the same color everywhere without coordination.
func PlaceholderImage(id, name string) string {
	idx := 0
	if n, ok := leadingInt(id); ok {
		idx = n % len(placeholderPalette)
	}

	label := name
	if runes := []rune(label); len(runes) > 15 {
		label = string(runes[:15])
	}

	if label == "" {
		label = "Producto"
	}

	return fmt.Sprintf("https://via.placeholder.com/400x400/%s/ffffff?text=%s",
		placeholderPalette[idx], url.QueryEscape(label))
}

func defaultVariant(productID string) models.Variant {
	return models.Variant{
		ID:            productID + "-default",
		SKU:           "SKU-" + productID,
		Color:         DefaultVariantColor,
		Size:          DefaultVariantSize,
		Stock:         DefaultVariantStock,
		PurchasePrice: DefaultVariantPurchasePrice,
		SalePrice:     DefaultVariantSalePrice,
	}
}

// decodeImages handles the three historical encodings of the image field:
// a JSON array, a JSON-encoded array inside a string, or a bare URL string.
// A string that fails to parse as an array is kept as a single image rather
// than failing the product.
func decodeImages(raw json.RawMessage, productID string) []string {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var images []string
	if err := json.Unmarshal(raw, &images); err == nil {
		return images
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		slog.Warn("unreadable image field on product",
			slog.String("product_id", productID))

		return nil
	}

	if err := json.Unmarshal([]byte(encoded), &images); err != nil {
		return []string{encoded}
	}

	return images
}

// decodeVariants mirrors decodeImages for the variant field, except a string
// that fails to parse yields no variants at all; the diagnostic is logged and
// the product-level backfill takes over.
func decodeVariants(raw json.RawMessage, productID string) []models.Variant {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var raws []*RawVariant
	if err := json.Unmarshal(raw, &raws); err == nil {
		return AdaptVariants(raws)
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		slog.Warn("unreadable variant field on product",
			slog.String("product_id", productID))

		return nil
	}

	if err := json.Unmarshal([]byte(encoded), &raws); err != nil {
		slog.Warn("variant field did not parse as JSON",
			slog.String("product_id", productID),
			slog.String("error", err.Error()))

		return nil
	}

	return AdaptVariants(raws)
}

// firstString returns the first non-empty value; alias resolution order is
// always legacy field first.
func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

func firstRaw(values ...json.RawMessage) json.RawMessage {
	for _, v := range values {
		if len(v) > 0 && !bytes.Equal(v, []byte("null")) {
			return v
		}
	}

	return nil
}

// firstPositive picks the first price that is present and greater than zero.
// A zero price is treated as missing here; the legacy data uses 0 for both.
func firstPositive(values ...*float64) float64 {
	for _, v := range values {
		if v != nil && *v > 0 {
			return *v
		}
	}

	return 0
}

func floatValue(v *float64) float64 {
	if v == nil {
		return 0
	}

	return *v
}

func clampStock(v *float64) int {
	if v == nil || *v < 0 {
		return 0
	}

	return int(*v)
}

// boolAlias resolves a pair of aliased flags: the legacy field wins when
// present, then the adapted one, then the default.
func boolAlias(legacy, adapted *bool, def bool) bool {
	if legacy != nil {
		return *legacy
	}

	if adapted != nil {
		return *adapted
	}

	return def
}

// leadingInt parses the leading decimal digits of s, the way the historical
// frontend's parseInt did.
func leadingInt(s string) (int, bool) {
	n := 0
	seen := false

	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}

		n = n*10 + int(r-'0')
		seen = true

		if n > 1<<30 {
			break
		}
	}

	return n, seen
}
