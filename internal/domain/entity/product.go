package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto que puede aparecer en un encarte.
// SKU es opcional pero único cuando existe; Active=false es un borrado lógico.
type Product struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal // precio "de", para mostrar la oferta
	Unit          string
	ImageURL      string
	Category      string
	SKU           *string
	Observation   string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
