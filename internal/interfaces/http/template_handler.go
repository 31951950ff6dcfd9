package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/application/usecase"
)

// TemplateHandler maneja templates de cabecera, pie o página completa.
type TemplateHandler struct {
	uc *usecase.TemplateUseCase
}

// NewTemplateHandler construye el handler.
func NewTemplateHandler(uc *usecase.TemplateUseCase) *TemplateHandler {
	return &TemplateHandler{uc: uc}
}

// Create godoc
// @Summary      Crear template
// @Tags         templates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTemplateRequest  true  "Template"
// @Success      201   {object}  dto.TemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/templates [post]
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTemplateRequest
	if err := BindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Listar templates
// @Tags         templates
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"
// @Param        limit      query  int     false  "Tamaño de página"
// @Param        search     query  string  false  "Busca en el nombre"
// @Param        type       query  string  false  "header, footer o full"
// @Param        isDefault  query  bool    false  "Solo templates por defecto"
// @Success      200  {array}   dto.TemplateResponse
// @Router       /v1/templates [get]
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	var q dto.TemplateListQuery
	if err := BindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return respondPaged(c, out)
}

// GetByID godoc
// @Summary      Obtener template
// @Tags         templates
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del template"
// @Success      200  {object}  dto.TemplateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/templates/{id} [get]
func (h *TemplateHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar template
// @Tags         templates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del template"
// @Param        body  body  dto.UpdateTemplateRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.TemplateResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/templates/{id} [patch]
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTemplateRequest
	if err := BindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar template
// @Description  Los templates por defecto no se pueden eliminar
// @Tags         templates
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del template"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/templates/{id} [delete]
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// UploadThumbnail godoc
// @Summary      Subir miniatura del template
// @Tags         templates
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID del template"
// @Param        file  formData  file    true  "Imagen"
// @Success      201   {object}  dto.ThumbnailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/templates/{id}/thumbnail [post]
func (h *TemplateHandler) UploadThumbnail(c *fiber.Ctx) error {
	file, release, err := requireFile(c, "file")
	defer release()
	if err != nil {
		return err
	}
	out, err := h.uc.UploadThumbnail(c.UserContext(), c.Params("id"), file)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}
