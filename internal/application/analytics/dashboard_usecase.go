// Package analytics contiene los casos de uso de lectura del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

const (
	recentWindow       = 7 * 24 * time.Hour
	defaultRecentLimit = 5
	maxRecentLimit     = 50
)

// DashboardUseCase contadores y actividad reciente.
//
// Fuente de datos: DashboardRepository (conteos read-only) y los repositorios de
// encartes y templates para los listados recientes.
type DashboardUseCase struct {
	counts    repository.DashboardRepository
	flyers    repository.FlyerRepository
	templates repository.TemplateRepository
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	counts repository.DashboardRepository,
	flyers repository.FlyerRepository,
	templates repository.TemplateRepository,
) *DashboardUseCase {
	return &DashboardUseCase{counts: counts, flyers: flyers, templates: templates, now: time.Now}
}

// GetStats ejecuta los seis conteos en paralelo.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	now := uc.now()
	weekAgo := now.Add(-recentWindow)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type countResult struct {
		n   int
		err error
	}
	run := func(fn func() (int, error)) <-chan countResult {
		ch := make(chan countResult, 1)
		go func() {
			n, err := fn()
			ch <- countResult{n, err}
		}()
		return ch
	}

	flyersCh := run(func() (int, error) { return uc.counts.CountFlyers(ctx) })
	clientsCh := run(func() (int, error) { return uc.counts.CountClients(ctx) })
	productsCh := run(func() (int, error) { return uc.counts.CountProducts(ctx) })
	templatesCh := run(func() (int, error) { return uc.counts.CountTemplates(ctx) })
	recentCh := run(func() (int, error) { return uc.counts.CountFlyersSince(ctx, weekAgo) })
	monthCh := run(func() (int, error) { return uc.counts.CountFlyersSince(ctx, monthStart) })

	flyers, clients, products := <-flyersCh, <-clientsCh, <-productsCh
	templates, recent, month := <-templatesCh, <-recentCh, <-monthCh

	for _, r := range []struct {
		label string
		err   error
	}{
		{"encartes", flyers.err},
		{"clientes", clients.err},
		{"productos", products.err},
		{"templates", templates.err},
		{"encartes recientes", recent.err},
		{"encartes del mes", month.err},
	} {
		if r.err != nil {
			return nil, fmt.Errorf("dashboard: contar %s: %w", r.label, r.err)
		}
	}

	return &dto.DashboardStatsResponse{
		TotalFlyers:     flyers.n,
		TotalClients:    clients.n,
		TotalProducts:   products.n,
		TotalTemplates:  templates.n,
		RecentFlyers:    recent.n,
		FlyersThisMonth: month.n,
	}, nil
}

// GetRecent devuelve los últimos encartes y templates modificados (limit por defecto 5).
func (uc *DashboardUseCase) GetRecent(ctx context.Context, limit int) (*dto.DashboardRecentResponse, error) {
	if limit < 1 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	flyers, err := uc.flyers.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: encartes recientes: %w", err)
	}
	templates, err := uc.templates.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: templates recientes: %w", err)
	}

	out := &dto.DashboardRecentResponse{
		RecentFlyers:    make([]dto.RecentFlyer, 0, len(flyers)),
		RecentTemplates: make([]dto.RecentTemplate, 0, len(templates)),
	}
	for _, f := range flyers {
		out.RecentFlyers = append(out.RecentFlyers, dto.RecentFlyer{
			ID:           f.ID,
			Name:         f.Name,
			ClientName:   f.ClientName,
			ThumbnailURL: f.ThumbnailURL,
			UpdatedAt:    f.UpdatedAt,
		})
	}
	for _, t := range templates {
		out.RecentTemplates = append(out.RecentTemplates, dto.RecentTemplate{
			ID:           t.ID,
			Name:         t.Name,
			Type:         t.Type,
			ThumbnailURL: t.ThumbnailURL,
			UpdatedAt:    t.UpdatedAt,
		})
	}
	return out, nil
}
