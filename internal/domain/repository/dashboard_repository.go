package repository

import (
	"context"
	"time"
)

// DashboardRepository consultas de conteo read-only para el dashboard.
type DashboardRepository interface {
	CountFlyers(ctx context.Context) (int, error)
	CountFlyersSince(ctx context.Context, since time.Time) (int, error)
	CountClients(ctx context.Context) (int, error)
	CountProducts(ctx context.Context) (int, error)
	CountTemplates(ctx context.Context) (int, error)
}
