package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/application/usecase"
)

// FlyerHandler maneja encartes: CRUD, duplicado, miniatura y exportación.
type FlyerHandler struct {
	uc *usecase.FlyerUseCase
}

// NewFlyerHandler construye el handler.
func NewFlyerHandler(uc *usecase.FlyerUseCase) *FlyerHandler {
	return &FlyerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear encarte
// @Description  La configuración serializada no puede superar 10 MB
// @Tags         flyers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFlyerRequest  true  "Encarte"
// @Success      201   {object}  dto.FlyerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      413   {object}  dto.ErrorResponse
// @Router       /v1/flyers [post]
func (h *FlyerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFlyerRequest
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
// @Summary      Listar encartes
// @Tags         flyers
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"
// @Param        limit      query  int     false  "Tamaño de página"
// @Param        search     query  string  false  "Busca en el nombre"
// @Param        clientId   query  string  false  "ID del cliente"
// @Param        startDate  query  string  false  "Creados desde (YYYY-MM-DD o RFC3339)"
// @Param        endDate    query  string  false  "Creados hasta (YYYY-MM-DD o RFC3339)"
// @Success      200  {array}   dto.FlyerResponse
// @Router       /v1/flyers [get]
func (h *FlyerHandler) List(c *fiber.Ctx) error {
	var q dto.FlyerListQuery
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
// @Summary      Obtener encarte
// @Tags         flyers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del encarte"
// @Success      200  {object}  dto.FlyerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/flyers/{id} [get]
func (h *FlyerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar encarte
// @Tags         flyers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del encarte"
// @Param        body  body  dto.UpdateFlyerRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.FlyerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/flyers/{id} [patch]
func (h *FlyerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFlyerRequest
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
// @Summary      Eliminar encarte
// @Tags         flyers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del encarte"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/flyers/{id} [delete]
func (h *FlyerHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Duplicate godoc
// @Summary      Duplicar encarte
// @Description  Crea un borrador nuevo con el mismo cliente y configuración
// @Tags         flyers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del encarte"
// @Param        body  body  dto.DuplicateFlyerRequest  true  "Nombre de la copia"
// @Success      201   {object}  dto.FlyerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/flyers/{id}/duplicate [post]
func (h *FlyerHandler) Duplicate(c *fiber.Ctx) error {
	var in dto.DuplicateFlyerRequest
	if err := BindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Duplicate(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// UploadThumbnail godoc
// @Summary      Subir miniatura del encarte
// @Tags         flyers
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID del encarte"
// @Param        file  formData  file    true  "Imagen"
// @Success      201   {object}  dto.ThumbnailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/flyers/{id}/thumbnail [post]
func (h *FlyerHandler) UploadThumbnail(c *fiber.Ctx) error {
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

// Export godoc
// @Summary      Exportar encarte
// @Description  Genera un PDF en exports/ y devuelve el enlace (válido 24 h)
// @Tags         flyers
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID del encarte"
// @Param        format   query  string  false  "pdf"
// @Param        quality  query  string  false  "low, medium o high"
// @Success      200  {object}  dto.ExportFlyerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/flyers/{id}/export [get]
func (h *FlyerHandler) Export(c *fiber.Ctx) error {
	var q dto.ExportFlyerQuery
	if err := BindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.Export(c.UserContext(), c.Params("id"), q)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}
