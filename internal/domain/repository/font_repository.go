package repository

import (
	"context"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
)

// FontRepository puerto de persistencia para fuentes.
type FontRepository interface {
	Create(ctx context.Context, font *entity.Font) error
	GetByID(ctx context.Context, id string) (*entity.Font, error)
	List(ctx context.Context) ([]*entity.Font, error)
	Delete(ctx context.Context, id string) error
}
