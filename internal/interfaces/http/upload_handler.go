package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/encartes-api/internal/application/usecase"
)

// UploadHandler subida genérica de archivos.
type UploadHandler struct {
	uc *usecase.UploadUseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *usecase.UploadUseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir archivo
// @Tags         uploads
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true   "Archivo"
// @Param        folder  formData  string  false  "products, logos, templates, general, fonts, avatars o thumbnails"
// @Success      201  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /v1/uploads [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, release, err := openFile(c, "file")
	defer release()
	if err != nil {
		return err
	}
	out, err := h.uc.Upload(c.UserContext(), c.FormValue("folder"), file)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}
