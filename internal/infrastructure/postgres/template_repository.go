package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

const templateColumns = `id, name, type, thumbnail_url, is_default, configuration, created_at, updated_at`

// TemplateRepo templates sobre PostgreSQL.
type TemplateRepo struct {
	q Querier
}

// NewTemplateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTemplateRepository(q Querier) *TemplateRepo {
	return &TemplateRepo{q: q}
}

func (r *TemplateRepo) Create(ctx context.Context, t *entity.Template) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO templates (`+templateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.Name, t.Type, t.ThumbnailURL, t.IsDefault, t.Configuration, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return classify("insert template", err)
	}
	return nil
}

func (r *TemplateRepo) GetByID(ctx context.Context, id string) (*entity.Template, error) {
	if !validID(id) {
		return nil, nil
	}
	t, err := scanTemplate(r.q.QueryRow(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

func (r *TemplateRepo) Update(ctx context.Context, t *entity.Template) error {
	_, err := r.q.Exec(ctx, `
		UPDATE templates SET name = $2, type = $3, thumbnail_url = $4, is_default = $5, configuration = $6, updated_at = $7
		WHERE id = $1`,
		t.ID, t.Name, t.Type, t.ThumbnailURL, t.IsDefault, t.Configuration, t.UpdatedAt,
	)
	if err != nil {
		return classify("update template", err)
	}
	return nil
}

// List filtra por nombre, tipo y si es default. Los default salen primero.
func (r *TemplateRepo) List(ctx context.Context, f repository.TemplateFilter) ([]*entity.Template, int, error) {
	var w where
	if f.Search != "" {
		w.add(folded("name")+" ILIKE ?", searchPattern(f.Search))
	}
	if f.Type != "" {
		w.add("type = ?", f.Type)
	}
	if f.IsDefault != nil {
		w.add("is_default = ?", *f.IsDefault)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM templates`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count templates: %w", err)
	}

	limit, args := w.page(f.Limit, f.Offset())
	list, err := r.query(ctx, `SELECT `+templateColumns+` FROM templates`+w.String()+
		` ORDER BY is_default DESC, created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *TemplateRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Template, error) {
	return r.query(ctx, `SELECT `+templateColumns+` FROM templates ORDER BY updated_at DESC LIMIT $1`, limit)
}

func (r *TemplateRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

func (r *TemplateRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Template, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Template, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTemplate(row pgx.Row) (*entity.Template, error) {
	var t entity.Template
	if err := row.Scan(&t.ID, &t.Name, &t.Type, &t.ThumbnailURL, &t.IsDefault, &t.Configuration,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
