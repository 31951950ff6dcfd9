package entity

import "time"

// GalleryImage imagen de la galería; FolderID nil = raíz.
type GalleryImage struct {
	ID           string
	Filename     string
	URL          string
	ThumbnailURL string
	MimeType     string
	Size         int64
	FolderID     *string
	CreatedAt    time.Time
}

// GalleryFolder carpeta de la galería. ImageCount se calcula en lecturas.
type GalleryFolder struct {
	ID         string
	Name       string
	Color      *string
	ImageCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
