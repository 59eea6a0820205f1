package models

// Category as the storefront renders it. Products coming from the legacy
// backend may carry only a numeric categoria_id; the name defaults to
// "Sin categoría" during adaptation.
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Variant is one purchasable SKU-level combination under a parent product.
type Variant struct {
	ID            string  `json:"_id,omitempty"`
	SKU           string  `json:"sku"`
	Color         string  `json:"color"`
	Size          string  `json:"size"`
	Stock         int     `json:"stock"`
	PurchasePrice float64 `json:"purchasePrice"`
	SalePrice     float64 `json:"salePrice"`
}

// Product is the canonical model every package past the adapter operates on.
// After adaptation a product always has at least one variant and one image.
type Product struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Category    *Category `json:"category"`
	Images      []string  `json:"images"`
	Variants    []Variant `json:"variants"`
	// Price is the legacy flat price some relational records carry when they
	// have no variant breakdown. Display pricing falls back to it.
	Price     float64 `json:"price,omitempty"`
	Featured  bool    `json:"featured"`
	IsNew     bool    `json:"isNew"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// FindVariant returns the variant with the given SKU, or nil.
func (p *Product) FindVariant(sku string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].SKU == sku {
			return &p.Variants[i]
		}
	}

	return nil
}

// ProductView is a product plus the derived display values the catalog
// and admin listings show next to it.
type ProductView struct {
	Product

	MinPrice   float64 `json:"minPrice"`
	TotalStock int     `json:"totalStock"`
	LowStock   bool    `json:"lowStock"`
}

type SaveProductRequest struct {
	Name        string         `json:"name" validate:"required,min=3,max=200"`
	Slug        string         `json:"slug" validate:"required,min=3,max=200"`
	Description string         `json:"description,omitempty"`
	CategoryID  string         `json:"categoryId,omitempty"`
	Images      []string       `json:"images,omitempty"`
	Featured    bool           `json:"featured"`
	IsNew       bool           `json:"isNew"`
	Variants    []VariantInput `json:"variants" validate:"omitempty,dive"`
}

type VariantInput struct {
	SKU           string  `json:"sku" validate:"required,min=3,max=50"`
	Color         string  `json:"color"`
	Size          string  `json:"size"`
	Stock         int     `json:"stock" validate:"gte=0"`
	PurchasePrice float64 `json:"purchasePrice" validate:"gte=0"`
	SalePrice     float64 `json:"salePrice" validate:"gte=0"`
}
