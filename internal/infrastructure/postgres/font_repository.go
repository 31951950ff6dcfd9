package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

var _ repository.FontRepository = (*FontRepo)(nil)

// FontRepo fuentes tipográficas sobre PostgreSQL.
type FontRepo struct {
	q Querier
}

// NewFontRepository construye el adaptador.
func NewFontRepository(q Querier) *FontRepo {
	return &FontRepo{q: q}
}

func (r *FontRepo) Create(ctx context.Context, f *entity.Font) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO fonts (id, family, weight, style, file_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		f.ID, f.Family, f.Weight, f.Style, f.FileURL, f.CreatedAt,
	)
	if err != nil {
		return classify("insert font", err)
	}
	return nil
}

func (r *FontRepo) GetByID(ctx context.Context, id string) (*entity.Font, error) {
	if !validID(id) {
		return nil, nil
	}
	var f entity.Font
	err := r.q.QueryRow(ctx, `SELECT id, family, weight, style, file_url, created_at FROM fonts WHERE id = $1`, id).
		Scan(&f.ID, &f.Family, &f.Weight, &f.Style, &f.FileURL, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get font: %w", err)
	}
	return &f, nil
}

// List devuelve todas las fuentes, las más recientes primero.
func (r *FontRepo) List(ctx context.Context) ([]*entity.Font, error) {
	rows, err := r.q.Query(ctx, `SELECT id, family, weight, style, file_url, created_at FROM fonts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list fonts: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Font, 0)
	for rows.Next() {
		var f entity.Font
		if err := rows.Scan(&f.ID, &f.Family, &f.Weight, &f.Style, &f.FileURL, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan font: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

func (r *FontRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM fonts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete font: %w", err)
	}
	return nil
}
