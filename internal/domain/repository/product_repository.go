package repository

import (
	"context"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	// Deactivate marca el producto como inactivo (borrado lógico).
	Deactivate(ctx context.Context, id string) error
}
