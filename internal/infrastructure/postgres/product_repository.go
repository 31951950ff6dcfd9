package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, price, original_price, unit, image_url, category, sku, observation, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. SKU repetido devuelve domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Price, p.OriginalPrice, p.Unit, p.ImageURL, p.Category, p.SKU, p.Observation,
		p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return classify("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (activo o no).
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.findOne(ctx, "get product", `id = $1`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.findOne(ctx, "get product by sku", `sku = $1`, sku)
}

func (r *ProductRepo) findOne(ctx context.Context, op, cond string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE `+cond, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, price = $3, original_price = $4, unit = $5, image_url = $6, category = $7,
			sku = $8, observation = $9, active = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Price, p.OriginalPrice, p.Unit, p.ImageURL, p.Category, p.SKU, p.Observation,
		p.Active, p.UpdatedAt,
	)
	if err != nil {
		return classify("update product", err)
	}
	return nil
}

// List lista productos con filtros de búsqueda (nombre o SKU), categoría, rango de precio y estado.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var w where
	if f.Search != "" {
		w.add("("+folded("name")+" ILIKE ? OR sku ILIKE ?)", searchPattern(f.Search))
	}
	if f.Category != "" {
		w.add("category = ?", f.Category)
	}
	if f.MinPrice != nil {
		w.add("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		w.add("price <= ?", *f.MaxPrice)
	}
	if f.Active != nil {
		w.add("active = ?", *f.Active)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	limit, args := w.page(f.Limit, f.Offset())
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products`+w.String()+` ORDER BY created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Deactivate marca el producto como inactivo.
func (r *ProductRepo) Deactivate(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.OriginalPrice, &p.Unit, &p.ImageURL, &p.Category, &p.SKU,
		&p.Observation, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
