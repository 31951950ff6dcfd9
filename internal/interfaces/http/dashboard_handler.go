package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/encartes-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve los contadores generales.
// GET /v1/dashboard/stats
//
// Respuesta: totalFlyers, totalClients, totalProducts (activos), totalTemplates,
// recentFlyers (últimos 7 días) y flyersThisMonth.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, stats)
}

// GetRecent devuelve los últimos encartes y templates modificados.
// GET /v1/dashboard/recent?limit=5
func (h *DashboardHandler) GetRecent(c *fiber.Ctx) error {
	recent, err := h.uc.GetRecent(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, recent)
}
