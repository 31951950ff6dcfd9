package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

var _ repository.FlyerRepository = (*FlyerRepo)(nil)

// Las lecturas siempre van con el nombre del cliente (LEFT JOIN: el cliente es opcional).
const flyerSelect = `
	SELECT f.id, f.name, f.client_id, c.name, f.thumbnail_url, f.status, f.configuration, f.created_at, f.updated_at
	FROM flyers f
	LEFT JOIN clients c ON c.id = f.client_id`

// FlyerRepo encartes sobre PostgreSQL.
type FlyerRepo struct {
	q Querier
}

// NewFlyerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFlyerRepository(q Querier) *FlyerRepo {
	return &FlyerRepo{q: q}
}

// Create persiste el encarte. Configuraciones que exceden límites de PostgreSQL
// vuelven como domain.ErrPayloadTooLarge o domain.ErrInvalidJSON.
func (r *FlyerRepo) Create(ctx context.Context, f *entity.Flyer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO flyers (id, name, client_id, thumbnail_url, status, configuration, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.ID, f.Name, f.ClientID, f.ThumbnailURL, f.Status, f.Configuration, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return classify("insert flyer", err)
	}
	return nil
}

// GetByID obtiene el encarte con el nombre del cliente.
func (r *FlyerRepo) GetByID(ctx context.Context, id string) (*entity.Flyer, error) {
	if !validID(id) {
		return nil, nil
	}
	f, err := scanFlyer(r.q.QueryRow(ctx, flyerSelect+` WHERE f.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get flyer: %w", err)
	}
	return f, nil
}

// Update reescribe nombre, cliente, miniatura, estado y configuración.
func (r *FlyerRepo) Update(ctx context.Context, f *entity.Flyer) error {
	_, err := r.q.Exec(ctx, `
		UPDATE flyers SET name = $2, client_id = $3, thumbnail_url = $4, status = $5, configuration = $6, updated_at = $7
		WHERE id = $1`,
		f.ID, f.Name, f.ClientID, f.ThumbnailURL, f.Status, f.Configuration, f.UpdatedAt,
	)
	if err != nil {
		return classify("update flyer", err)
	}
	return nil
}

// List filtra por nombre, cliente y rango de created_at (ambos extremos inclusivos).
func (r *FlyerRepo) List(ctx context.Context, fl repository.FlyerFilter) ([]*entity.Flyer, int, error) {
	var w where
	if fl.Search != "" {
		w.add(folded("f.name")+" ILIKE ?", searchPattern(fl.Search))
	}
	if fl.ClientID != "" {
		w.add("f.client_id::text = ?", fl.ClientID)
	}
	if fl.StartDate != nil {
		w.add("f.created_at >= ?", *fl.StartDate)
	}
	if fl.EndDate != nil {
		w.add("f.created_at <= ?", *fl.EndDate)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM flyers f`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count flyers: %w", err)
	}

	limit, args := w.page(fl.Limit, fl.Offset())
	list, err := r.query(ctx, flyerSelect+w.String()+` ORDER BY f.created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListRecent devuelve los últimos encartes modificados.
func (r *FlyerRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Flyer, error) {
	return r.query(ctx, flyerSelect+` ORDER BY f.updated_at DESC LIMIT $1`, limit)
}

// Delete elimina el encarte.
func (r *FlyerRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM flyers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete flyer: %w", err)
	}
	return nil
}

func (r *FlyerRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Flyer, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list flyers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Flyer, 0)
	for rows.Next() {
		f, err := scanFlyer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flyer: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func scanFlyer(row pgx.Row) (*entity.Flyer, error) {
	var f entity.Flyer
	if err := row.Scan(&f.ID, &f.Name, &f.ClientID, &f.ClientName, &f.ThumbnailURL, &f.Status,
		&f.Configuration, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}
