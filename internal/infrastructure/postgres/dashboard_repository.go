package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo conteos de solo lectura para el dashboard.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador del dashboard.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

func (r *DashboardRepo) CountFlyers(ctx context.Context) (int, error) {
	return r.count(ctx, "flyers", `SELECT count(*) FROM flyers`)
}

// CountFlyersSince cuenta encartes creados desde since (inclusive).
func (r *DashboardRepo) CountFlyersSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, "flyers since", `SELECT count(*) FROM flyers WHERE created_at >= $1`, since)
}

func (r *DashboardRepo) CountClients(ctx context.Context) (int, error) {
	return r.count(ctx, "clients", `SELECT count(*) FROM clients`)
}

// CountProducts solo cuenta productos activos.
func (r *DashboardRepo) CountProducts(ctx context.Context) (int, error) {
	return r.count(ctx, "products", `SELECT count(*) FROM products WHERE active`)
}

func (r *DashboardRepo) CountTemplates(ctx context.Context) (int, error) {
	return r.count(ctx, "templates", `SELECT count(*) FROM templates`)
}

func (r *DashboardRepo) count(ctx context.Context, what, query string, args ...any) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", what, err)
	}
	return n, nil
}
