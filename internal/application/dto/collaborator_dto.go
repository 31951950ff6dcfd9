package dto

import "time"

// CreateCollaboratorRequest entrada para crear un colaborador.
type CreateCollaboratorRequest struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"omitempty,oneof=collaborator manager admin"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateCollaboratorRequest entrada parcial (la contraseña no se cambia aquí).
type UpdateCollaboratorRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=3"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
	Role  *string `json:"role" validate:"omitempty,oneof=collaborator manager admin"`
}

// CollaboratorListQuery filtros de listado.
type CollaboratorListQuery struct {
	PageQuery
	Search string `query:"search"`
	Role   string `query:"role"`
}

// CollaboratorResponse salida de un colaborador (sin password).
type CollaboratorResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Role          string    `json:"role"`
	AvatarURL     string    `json:"avatarUrl,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
