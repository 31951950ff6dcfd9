package dto

import "time"

// ContactInput contacto de un cliente en create/update. ID es opcional: se
// acepta el que devuelve GET para poder reenviar la lista tal cual.
type ContactInput struct {
	ID    *string `json:"id" validate:"omitempty,uuid"`
	Name  string `json:"name" validate:"required"`
	Role  string `json:"role"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name     string         `json:"name" validate:"required"`
	CNPJ     string         `json:"cnpj" validate:"required"`
	LogoURL  string         `json:"logoUrl" validate:"omitempty,url"`
	Contacts []ContactInput `json:"contacts" validate:"omitempty,dive"`
}

// UpdateClientRequest entrada parcial. Contacts no nil reemplaza todos los contactos.
type UpdateClientRequest struct {
	Name     *string         `json:"name" validate:"omitempty,min=1"`
	CNPJ     *string         `json:"cnpj" validate:"omitempty,min=1"`
	LogoURL  *string         `json:"logoUrl" validate:"omitempty,url"`
	Contacts *[]ContactInput `json:"contacts" validate:"omitempty,dive"`
}

// ClientListQuery filtros de listado de clientes.
type ClientListQuery struct {
	PageQuery
	Search string `query:"search"`
}

// ContactResponse salida de un contacto.
type ContactResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ClientResponse salida de un cliente con sus contactos.
type ClientResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	CNPJ      string            `json:"cnpj"`
	LogoURL   string            `json:"logoUrl,omitempty"`
	Contacts  []ContactResponse `json:"contacts"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// LogoResponse salida de la subida de logo.
type LogoResponse struct {
	LogoURL string `json:"logoUrl"`
}
