package dto

import "time"

// GalleryListQuery filtros de listado; FolderID "none" = raíz.
type GalleryListQuery struct {
	PageQuery
	Search   string `query:"search"`
	FolderID string `query:"folderId"`
}

// DeleteManyRequest IDs a borrar (no vacío).
type DeleteManyRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

// MoveImagesRequest mueve imágenes a una carpeta (nil = raíz).
type MoveImagesRequest struct {
	ImageIDs []string `json:"imageIds" validate:"required,min=1,dive,uuid"`
	FolderID *string  `json:"folderId" validate:"omitempty,uuid"`
}

// CreateFolderRequest entrada para crear carpeta.
type CreateFolderRequest struct {
	Name  string  `json:"name" validate:"required"`
	Color *string `json:"color"`
}

// UpdateFolderRequest entrada parcial para carpeta.
type UpdateFolderRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Color *string `json:"color"`
}

// GalleryImageResponse salida de una imagen.
type GalleryImageResponse struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	FolderID     *string   `json:"folderId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GalleryFolderResponse salida de una carpeta.
type GalleryFolderResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Color      *string   `json:"color"`
	ImageCount int       `json:"imageCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ActionResponse respuestas de galería que ya llevan success (no se envuelven).
type ActionResponse struct {
	Success bool `json:"success"`
	Deleted *int `json:"deleted,omitempty"`
	Moved   *int `json:"moved,omitempty"`
}
