package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/application/usecase"
)

// FontHandler maneja las fuentes tipográficas subidas.
type FontHandler struct {
	uc *usecase.FontUseCase
}

// NewFontHandler construye el handler.
func NewFontHandler(uc *usecase.FontUseCase) *FontHandler {
	return &FontHandler{uc: uc}
}

// Create godoc
// @Summary      Subir fuente
// @Tags         fonts
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true  ".ttf, .otf, .woff o .woff2"
// @Param        family  formData  string  true  "Familia"
// @Param        weight  formData  string  true  "Peso"
// @Param        style   formData  string  true  "Estilo"
// @Success      201  {object}  dto.FontResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /v1/fonts [post]
func (h *FontHandler) Create(c *fiber.Ctx) error {
	file, release, err := openFile(c, "file")
	defer release()
	if err != nil {
		return err
	}
	in := dto.CreateFontRequest{
		Family: c.FormValue("family"),
		Weight: c.FormValue("weight"),
		Style:  c.FormValue("style"),
	}
	out, err := h.uc.Create(c.UserContext(), in, file)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Listar fuentes
// @Tags         fonts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FontResponse
// @Router       /v1/fonts [get]
func (h *FontHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar fuente
// @Tags         fonts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la fuente"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/fonts/{id} [delete]
func (h *FontHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}
