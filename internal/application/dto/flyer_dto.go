package dto

import (
	"encoding/json"
	"time"
)

// CreateFlyerRequest entrada para crear un encarte.
type CreateFlyerRequest struct {
	Name          string          `json:"name" validate:"required"`
	ClientID      *string         `json:"clientId" validate:"omitempty,uuid"`
	Configuration json.RawMessage `json:"configuration"`
}

// UpdateFlyerRequest entrada parcial para actualizar un encarte.
type UpdateFlyerRequest struct {
	Name          *string         `json:"name" validate:"omitempty,min=1"`
	ClientID      *string         `json:"clientId" validate:"omitempty,uuid"`
	Configuration json.RawMessage `json:"configuration"`
}

// DuplicateFlyerRequest nombre del nuevo encarte.
type DuplicateFlyerRequest struct {
	Name string `json:"name" validate:"required"`
}

// FlyerListQuery filtros de listado de encartes.
type FlyerListQuery struct {
	PageQuery
	Search    string `query:"search"`
	ClientID  string `query:"clientId"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// ExportFlyerQuery parámetros de exportación.
type ExportFlyerQuery struct {
	Format  string `query:"format"`
	Quality string `query:"quality"`
}

// FlyerResponse salida de un encarte.
type FlyerResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	ClientID      *string         `json:"clientId"`
	ClientName    *string         `json:"clientName"`
	ThumbnailURL  string          `json:"thumbnailUrl,omitempty"`
	Status        string          `json:"status"`
	Configuration json.RawMessage `json:"configuration"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ThumbnailResponse salida de la subida de miniatura.
type ThumbnailResponse struct {
	ThumbnailURL string `json:"thumbnailUrl"`
}

// ExportFlyerResponse enlace de descarga del encarte exportado.
type ExportFlyerResponse struct {
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Format      string    `json:"format"`
	Quality     string    `json:"quality"`
}
