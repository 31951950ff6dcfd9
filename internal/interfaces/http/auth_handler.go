package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/encartes-api/internal/application/auth"
	"github.com/jhoicas/encartes-api/internal/application/dto"
)

// AuthHandler maneja login, registro, recuperación de contraseña y perfil.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve access token y refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := BindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// Signup godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "Datos de registro"
// @Success      201   {object}  dto.SignupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /v1/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := BindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Signup(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}

// Refresh godoc
// @Summary      Renovar access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshTokenRequest  true  "Refresh token"
// @Success      200   {object}  dto.RefreshTokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshTokenRequest
	if err := BindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Refresh(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// ForgotPassword godoc
// @Summary      Solicitar redefinición de contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "Email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := BindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ForgotPassword(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// ResetPassword godoc
// @Summary      Redefinir contraseña con el token del email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "Token y nueva contraseña"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := BindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ResetPassword(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// VerifyEmail godoc
// @Summary      Verificar email
// @Tags         auth
// @Produce      json
// @Param        token  query  string  true  "Token de verificación"
// @Success      200    {object}  dto.MessageResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /v1/auth/verify-email [get]
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	out, err := h.uc.VerifyEmail(c.UserContext(), c.Query("token"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// GetProfile godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.uc.GetProfile(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// UpdateProfile godoc
// @Summary      Actualizar perfil
// @Description  Actualización parcial; establishment se fusiona campo a campo
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/auth/profile [patch]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := BindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, out)
}

// UploadAvatar godoc
// @Summary      Subir avatar
// @Tags         auth
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Imagen"
// @Success      201   {object}  dto.AvatarResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/auth/avatar [post]
func (h *AuthHandler) UploadAvatar(c *fiber.Ctx) error {
	file, release, err := requireFile(c, "file")
	defer release()
	if err != nil {
		return err
	}
	out, err := h.uc.UploadAvatar(c.UserContext(), GetUserID(c), file)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, out)
}
