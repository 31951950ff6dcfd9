package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/encartes-api/internal/application/dto"
)

// respond envuelve data en {success:true, data}.
func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.SuccessResponse{Success: true, Data: data})
}

// respondPaged envuelve un listado paginado en {success, data, pagination}.
func respondPaged[T any](c *fiber.Ctx, page *dto.Paged[T]) error {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	pagination := page.Pagination
	return c.Status(fiber.StatusOK).JSON(dto.SuccessResponse{Success: true, Data: items, Pagination: &pagination})
}

// respondRaw devuelve cuerpos que ya llevan su propio campo success.
func respondRaw(c *fiber.Ctx, status int, body any) error {
	return c.Status(status).JSON(body)
}
