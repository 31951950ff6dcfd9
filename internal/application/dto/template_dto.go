package dto

import (
	"encoding/json"
	"time"
)

// CreateTemplateRequest entrada para crear un template.
type CreateTemplateRequest struct {
	Name          string          `json:"name" validate:"required"`
	Type          string          `json:"type" validate:"required,oneof=header footer full"`
	ThumbnailURL  string          `json:"thumbnailUrl"`
	IsDefault     bool            `json:"isDefault"`
	Configuration json.RawMessage `json:"configuration"`
}

// UpdateTemplateRequest entrada parcial.
type UpdateTemplateRequest struct {
	Name          *string         `json:"name" validate:"omitempty,min=1"`
	Type          *string         `json:"type" validate:"omitempty,oneof=header footer full"`
	ThumbnailURL  *string         `json:"thumbnailUrl"`
	IsDefault     *bool           `json:"isDefault"`
	Configuration json.RawMessage `json:"configuration"`
}

// TemplateListQuery filtros de listado.
type TemplateListQuery struct {
	PageQuery
	Search    string `query:"search"`
	Type      string `query:"type"`
	IsDefault string `query:"isDefault"`
}

// TemplateResponse salida de un template.
type TemplateResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	ThumbnailURL  string          `json:"thumbnailUrl,omitempty"`
	IsDefault     bool            `json:"isDefault"`
	Configuration json.RawMessage `json:"configuration"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
