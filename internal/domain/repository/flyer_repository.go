package repository

import (
	"context"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
)

// FlyerRepository puerto de persistencia para encartes. Las lecturas incluyen ClientName.
type FlyerRepository interface {
	Create(ctx context.Context, flyer *entity.Flyer) error
	GetByID(ctx context.Context, id string) (*entity.Flyer, error)
	Update(ctx context.Context, flyer *entity.Flyer) error
	List(ctx context.Context, f FlyerFilter) ([]*entity.Flyer, int, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Flyer, error)
	Delete(ctx context.Context, id string) error
}
