package dto

import "time"

// CreateFontRequest campos de formulario que acompañan al archivo de fuente.
type CreateFontRequest struct {
	Family string
	Weight string
	Style  string
}

// FontResponse salida de una fuente.
type FontResponse struct {
	ID        string    `json:"id"`
	Family    string    `json:"family"`
	Weight    string    `json:"weight"`
	Style     string    `json:"style"`
	FileURL   string    `json:"fileUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
