package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/application/usecase"
)

// GalleryHandler maneja imágenes y carpetas de la galería.
type GalleryHandler struct {
	uc *usecase.GalleryUseCase
}

// NewGalleryHandler construye el handler.
func NewGalleryHandler(uc *usecase.GalleryUseCase) *GalleryHandler {
	return &GalleryHandler{uc: uc}
}

// ListImages godoc
// @Summary      Listar imágenes
// @Tags         gallery
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página"
// @Param        limit     query  int     false  "Tamaño de página"
// @Param        search    query  string  false  "Busca en el nombre del archivo"
// @Param        folderId  query  string  false  "ID de carpeta o none para la raíz"
// @Success      200  {array}   dto.GalleryImageResponse
// @Router       /v1/gallery [get]
func (h *GalleryHandler) ListImages(c *fiber.Ctx) error {
	var q dto.GalleryListQuery
	if err := BindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.ListImages(c.UserContext(), q)
	if err != nil {
		return err
	}
	return respondPaged(c, out)
}

// Upload godoc
// @Summary      Subir imágenes
// @Tags         gallery
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        files     formData  file    true   "Imágenes (varias)"
// @Param        folderId  formData  string  false  "Carpeta destino"
// @Success      201  {array}   dto.GalleryImageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /v1/gallery/upload [post]
func (h *GalleryHandler) Upload(c *fiber.Ctx) error {
	files, release, err := openFiles(c, "files", "files[]")
	defer release()
	if err != nil {
		return err
	}
	out, err := h.uc.Upload(c.UserContext(), files, c.FormValue("folderId"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// DeleteImage godoc
// @Summary      Eliminar imagen
// @Tags         gallery
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la imagen"
// @Success      200  {object}  dto.ActionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/gallery/{id} [delete]
func (h *GalleryHandler) DeleteImage(c *fiber.Ctx) error {
	out, err := h.uc.DeleteImage(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respondRaw(c, fiber.StatusOK, out)
}

// DeleteMany godoc
// @Summary      Eliminar varias imágenes
// @Tags         gallery
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeleteManyRequest  true  "IDs"
// @Success      200   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/gallery/delete-many [post]
func (h *GalleryHandler) DeleteMany(c *fiber.Ctx) error {
	var in dto.DeleteManyRequest
	if err := BindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.DeleteMany(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respondRaw(c, fiber.StatusOK, out)
}

// MoveImages godoc
// @Summary      Mover imágenes a una carpeta
// @Description  folderId null mueve a la raíz
// @Tags         gallery
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MoveImagesRequest  true  "Imágenes y carpeta"
// @Success      200   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/gallery/move [post]
func (h *GalleryHandler) MoveImages(c *fiber.Ctx) error {
	var in dto.MoveImagesRequest
	if err := BindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.MoveImages(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respondRaw(c, fiber.StatusOK, out)
}

// ListFolders godoc
// @Summary      Listar carpetas
// @Tags         gallery
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.GalleryFolderResponse
// @Router       /v1/gallery/folders [get]
func (h *GalleryHandler) ListFolders(c *fiber.Ctx) error {
	out, err := h.uc.ListFolders(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// CreateFolder godoc
// @Summary      Crear carpeta
// @Tags         gallery
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFolderRequest  true  "Carpeta"
// @Success      201   {object}  dto.GalleryFolderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/gallery/folders [post]
func (h *GalleryHandler) CreateFolder(c *fiber.Ctx) error {
	var in dto.CreateFolderRequest
	if err := BindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateFolder(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// UpdateFolder godoc
// @Summary      Actualizar carpeta
// @Tags         gallery
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la carpeta"
// @Param        body  body  dto.UpdateFolderRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.GalleryFolderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/gallery/folders/{id} [patch]
func (h *GalleryHandler) UpdateFolder(c *fiber.Ctx) error {
	var in dto.UpdateFolderRequest
	if err := BindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateFolder(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// DeleteFolder godoc
// @Summary      Eliminar carpeta
// @Description  Sus imágenes pasan a la raíz
// @Tags         gallery
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la carpeta"
// @Success      200  {object}  dto.ActionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/gallery/folders/{id} [delete]
func (h *GalleryHandler) DeleteFolder(c *fiber.Ctx) error {
	out, err := h.uc.DeleteFolder(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respondRaw(c, fiber.StatusOK, out)
}
