package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Page paginación por página (1-based) usada en todos los listados.
type Page struct {
	Page  int
	Limit int
}

// Offset devuelve el desplazamiento SQL correspondiente a la página.
func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// UserFilter filtros para listar usuarios (colaboradores).
type UserFilter struct {
	Page
	Search string // nombre o email
	Role   string
}

// ClientFilter filtros para listar clientes.
type ClientFilter struct {
	Page
	Search string // nombre o CNPJ
}

// ProductFilter filtros para listar productos.
type ProductFilter struct {
	Page
	Search   string // nombre o SKU
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Active   *bool
}

// FlyerFilter filtros para listar encartes (fechas sobre created_at).
type FlyerFilter struct {
	Page
	Search    string
	ClientID  string
	StartDate *time.Time
	EndDate   *time.Time
}

// TemplateFilter filtros para listar templates.
type TemplateFilter struct {
	Page
	Search    string
	Type      string
	IsDefault *bool
}

// GalleryFilter filtros para listar imágenes. RootOnly = solo imágenes sin carpeta.
type GalleryFilter struct {
	Page
	Search   string
	FolderID string
	RootOnly bool
}
