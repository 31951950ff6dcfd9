package repository

import (
	"context"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
)

// TemplateRepository puerto de persistencia para templates.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *entity.Template) error
	GetByID(ctx context.Context, id string) (*entity.Template, error)
	Update(ctx context.Context, tpl *entity.Template) error
	List(ctx context.Context, f TemplateFilter) ([]*entity.Template, int, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Template, error)
	Delete(ctx context.Context, id string) error
}
