package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/application/usecase"
)

// CollaboratorHandler maneja los usuarios colaboradores.
type CollaboratorHandler struct {
	uc *usecase.CollaboratorUseCase
}

// NewCollaboratorHandler construye el handler.
func NewCollaboratorHandler(uc *usecase.CollaboratorUseCase) *CollaboratorHandler {
	return &CollaboratorHandler{uc: uc}
}

// Create godoc
// @Summary      Crear colaborador
// @Tags         collaborators
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCollaboratorRequest  true  "Datos del colaborador"
// @Success      201   {object}  dto.CollaboratorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /v1/collaborators [post]
func (h *CollaboratorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCollaboratorRequest
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
// @Summary      Listar colaboradores
// @Tags         collaborators
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"
// @Param        limit   query  int     false  "Tamaño de página"
// @Param        search  query  string  false  "Busca en nombre o email"
// @Param        role    query  string  false  "collaborator, manager o admin"
// @Success      200  {array}   dto.CollaboratorResponse
// @Router       /v1/collaborators [get]
func (h *CollaboratorHandler) List(c *fiber.Ctx) error {
	var q dto.CollaboratorListQuery
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
// @Summary      Obtener colaborador
// @Tags         collaborators
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del colaborador"
// @Success      200  {object}  dto.CollaboratorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/collaborators/{id} [get]
func (h *CollaboratorHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar colaborador
// @Tags         collaborators
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del colaborador"
// @Param        body  body  dto.UpdateCollaboratorRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.CollaboratorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /v1/collaborators/{id} [patch]
func (h *CollaboratorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCollaboratorRequest
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
// @Summary      Eliminar colaborador
// @Tags         collaborators
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del colaborador"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/collaborators/{id} [delete]
func (h *CollaboratorHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// UploadAvatar godoc
// @Summary      Subir avatar del colaborador
// @Tags         collaborators
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID del colaborador"
// @Param        file  formData  file    true  "Imagen"
// @Success      201   {object}  dto.AvatarResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/collaborators/{id}/avatar [post]
func (h *CollaboratorHandler) UploadAvatar(c *fiber.Ctx) error {
	file, release, err := requireFile(c, "file")
	defer release()
	if err != nil {
		return err
	}
	out, err := h.uc.UploadAvatar(c.UserContext(), c.Params("id"), file)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}
