package adapter

import (
	"bytes"
	"encoding/json"
)

// FlexID decodes a backend identifier that may arrive as a JSON number or a
// JSON string. Either way it is kept as its string form; "null" and absence
// both decode to the empty string.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""

		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*f = FlexID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	*f = FlexID(n.String())

	return nil
}

func (f FlexID) String() string {
	return string(f)
}

// RawCategory covers the embedded category object of the adapted shape.
type RawCategory struct {
	ID      FlexID `json:"id"`
	MongoID string `json:"_id"`
	Nombre  string `json:"nombre"`
	Name    string `json:"name"`
}

// RawProduct accepts both historical backend shapes at once: the relational
// Spanish-named fields and the adapted English-named ones. Whichever set the
// payload carries gets populated; alias resolution happens in AdaptProduct.
// Images and variants stay raw because they may be a JSON array or a
// JSON-encoded string of one.
type RawProduct struct {
	ID              FlexID          `json:"id"`
	MongoID         string          `json:"_id"`
	Nombre          string          `json:"nombre"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Descripcion     string          `json:"descripcion"`
	Description     string          `json:"description"`
	CategoriaID     FlexID          `json:"categoria_id"`
	CategoriaNombre string          `json:"categoria_nombre"`
	Category        *RawCategory    `json:"category"`
	Imagenes        json.RawMessage `json:"imagenes"`
	Images          json.RawMessage `json:"images"`
	Variantes       json.RawMessage `json:"variantes"`
	Variants        json.RawMessage `json:"variants"`
	Destacado       *bool           `json:"destacado"`
	Featured        *bool           `json:"featured"`
	Nuevo           *bool           `json:"nuevo"`
	IsNew           *bool           `json:"isNew"`
	Activo          *bool           `json:"activo"`
	Active          *bool           `json:"active"`
	Precio          *float64        `json:"precio"`
	CreatedAt       string          `json:"created_at"`
	CreatedAtAlias  string          `json:"createdAt"`
}

type RawVariant struct {
	ID            FlexID   `json:"id"`
	MongoID       string   `json:"_id"`
	SKU           string   `json:"sku"`
	Color         string   `json:"color"`
	Talla         string   `json:"talla"`
	Size          string   `json:"size"`
	Stock         *float64 `json:"stock"`
	PrecioCompra  *float64 `json:"precio_compra"`
	PurchasePrice *float64 `json:"purchasePrice"`
	PrecioVenta   *float64 `json:"precio_venta"`
	SalePrice     *float64 `json:"salePrice"`
}

type RawUser struct {
	ID             FlexID `json:"id"`
	MongoID        string `json:"_id"`
	Nombre         string `json:"nombre"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Telefono       string `json:"telefono"`
	Phone          string `json:"phone"`
	Rol            string `json:"rol"`
	Role           string `json:"role"`
	Activo         *bool  `json:"activo"`
	Active         *bool  `json:"active"`
	CreatedAt      string `json:"created_at"`
	CreatedAtAlias string `json:"createdAt"`
}

// LegacyProduct is the write-path shape submitted back to the relational
// backend. Field for field it is the inverse of the read-path aliasing.
type LegacyProduct struct {
	Nombre      string   `json:"nombre"`
	Slug        string   `json:"slug"`
	Descripcion string   `json:"descripcion"`
	CategoriaID string   `json:"categoria_id,omitempty"`
	Imagenes    []string `json:"imagenes"`
	Destacado   bool     `json:"destacado"`
	Nuevo       bool     `json:"nuevo"`
}

type LegacyVariant struct {
	SKU          string  `json:"sku"`
	Color        string  `json:"color"`
	Talla        string  `json:"talla"`
	Stock        int     `json:"stock"`
	PrecioCompra float64 `json:"precio_compra"`
	PrecioVenta  float64 `json:"precio_venta"`
}
