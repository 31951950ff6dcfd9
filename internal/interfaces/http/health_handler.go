package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/encartes-api/internal/application/usecase"
)

// HealthHandler endpoint público de salud.
type HealthHandler struct {
	uc *usecase.HealthUseCase
}

// NewHealthHandler construye el handler.
func NewHealthHandler(uc *usecase.HealthUseCase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

// Check godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthStatus
// @Router       /v1/health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.uc.Check(c.UserContext()))
}
