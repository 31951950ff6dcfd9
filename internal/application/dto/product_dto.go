package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string           `json:"name" validate:"required"`
	Price         *decimal.Decimal `json:"price" validate:"required,gte=0"`
	OriginalPrice *decimal.Decimal `json:"originalPrice" validate:"omitempty,gte=0"`
	Unit          string           `json:"unit"`
	ImageURL      string           `json:"imageUrl"`
	Category      string           `json:"category"`
	SKU           *string          `json:"sku"`
	Observation   string           `json:"observation"`
	Active        *bool            `json:"active"`
}

// UpdateProductRequest entrada parcial para actualizar un producto.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1"`
	Price         *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	OriginalPrice *decimal.Decimal `json:"originalPrice" validate:"omitempty,gte=0"`
	Unit          *string          `json:"unit"`
	ImageURL      *string          `json:"imageUrl"`
	Category      *string          `json:"category"`
	SKU           *string          `json:"sku"`
	Observation   *string          `json:"observation"`
	Active        *bool            `json:"active"`
}

// ProductListQuery filtros de listado de productos.
type ProductListQuery struct {
	PageQuery
	Search   string `query:"search"`
	Category string `query:"category"`
	MinPrice string `query:"minPrice"`
	MaxPrice string `query:"maxPrice"`
	Active   string `query:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Unit          string           `json:"unit,omitempty"`
	ImageURL      string           `json:"imageUrl,omitempty"`
	Category      string           `json:"category,omitempty"`
	SKU           *string          `json:"sku"`
	Observation   string           `json:"observation,omitempty"`
	Active        bool             `json:"active"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// ImageResponse salida de la subida de imagen del producto.
type ImageResponse struct {
	ImageURL string `json:"imageUrl"`
}
