package dto

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
)

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// SignupRequest entrada para registro público.
type SignupRequest struct {
	Name            string `json:"name" form:"name" validate:"required,min=3"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required"`
}

// RefreshTokenRequest entrada para renovar el access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken" validate:"required"`
}

// ForgotPasswordRequest entrada para solicitar redefinición de contraseña.
type ForgotPasswordRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

// ResetPasswordRequest entrada para redefinir la contraseña con el token del email.
type ResetPasswordRequest struct {
	Token           string `json:"token" form:"token" validate:"required"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required"`
}

// UpdateProfileRequest actualización parcial del perfil; Establishment se fusiona.
type UpdateProfileRequest struct {
	Name          *string                    `json:"name"`
	Phone         *string                    `json:"phone"`
	CPFCNPJ       *string                    `json:"cpfCnpj"`
	AvatarURL     NullableString             `json:"avatarUrl"`
	Establishment *entity.EstablishmentPatch `json:"establishment"`
}

// NullableString campo de PATCH que distingue ausente, null y valor.
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON marca el campo como enviado; null deja Value en nil.
func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// AuthUser usuario devuelto en login.
type AuthUser struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	Role          string    `json:"role,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// LoginResponse salida con tokens JWT.
type LoginResponse struct {
	User         AuthUser `json:"user"`
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	ExpiresIn    int      `json:"expiresIn"` // segundos
}

// SignupResponse salida del registro.
type SignupResponse struct {
	User    AuthUser `json:"user"`
	Message string   `json:"message"`
}

// RefreshTokenResponse salida del refresh.
type RefreshTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// ProfileResponse perfil completo del usuario autenticado.
type ProfileResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Email         string                `json:"email"`
	EmailVerified bool                  `json:"emailVerified"`
	Role          string                `json:"role"`
	Phone         string                `json:"phone,omitempty"`
	CPFCNPJ       string                `json:"cpfCnpj,omitempty"`
	Establishment *entity.Establishment `json:"establishment,omitempty"`
	AvatarURL     string                `json:"avatarUrl,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// AvatarResponse salida de la subida de avatar.
type AvatarResponse struct {
	AvatarURL string `json:"avatarUrl"`
}
