package repository

import (
	"context"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
)

// GalleryRepository puerto de persistencia para imágenes y carpetas de la galería.
type GalleryRepository interface {
	CreateImage(ctx context.Context, img *entity.GalleryImage) error
	GetImage(ctx context.Context, id string) (*entity.GalleryImage, error)
	ListImages(ctx context.Context, f GalleryFilter) ([]*entity.GalleryImage, int, error)
	DeleteImage(ctx context.Context, id string) error
	// DeleteImages borra las imágenes indicadas y devuelve las efectivamente borradas.
	DeleteImages(ctx context.Context, ids []string) ([]*entity.GalleryImage, error)
	// MoveImages cambia la carpeta (nil = raíz) y devuelve cuántas filas cambiaron.
	MoveImages(ctx context.Context, ids []string, folderID *string) (int, error)

	CreateFolder(ctx context.Context, folder *entity.GalleryFolder) error
	GetFolder(ctx context.Context, id string) (*entity.GalleryFolder, error)
	UpdateFolder(ctx context.Context, folder *entity.GalleryFolder) error
	ListFolders(ctx context.Context) ([]*entity.GalleryFolder, error)
	// DetachFolder mueve a la raíz las imágenes de la carpeta.
	DetachFolder(ctx context.Context, folderID string) error
	DeleteFolder(ctx context.Context, id string) error
}
