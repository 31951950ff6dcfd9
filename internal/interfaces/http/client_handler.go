package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/application/usecase"
)

// ClientHandler maneja clientes (supermercados) y sus contactos.
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "Cliente y contactos"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /v1/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
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
// @Summary      Listar clientes
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"
// @Param        limit   query  int     false  "Tamaño de página"
// @Param        search  query  string  false  "Busca en nombre o CNPJ"
// @Success      200  {array}   dto.ClientResponse
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var q dto.ClientListQuery
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
// @Summary      Obtener cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Description  Si se envía contacts, reemplaza todos los contactos
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del cliente"
// @Param        body  body  dto.UpdateClientRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ClientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /v1/clients/{id} [patch]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
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
// @Summary      Eliminar cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// UploadLogo godoc
// @Summary      Subir logo del cliente
// @Tags         clients
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID del cliente"
// @Param        file  formData  file    true  "Logo"
// @Success      201   {object}  dto.LogoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/clients/{id}/logo [post]
func (h *ClientHandler) UploadLogo(c *fiber.Ctx) error {
	file, release, err := requireFile(c, "file")
	defer release()
	if err != nil {
		return err
	}
	out, err := h.uc.UploadLogo(c.UserContext(), c.Params("id"), file)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}
