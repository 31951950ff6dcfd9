package ports

import (
	"context"
	"io"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
)

// Carpetas de destino aceptadas por POST /uploads.
var UploadFolders = []string{"products", "logos", "templates", "general", "fonts", "avatars", "thumbnails"}

// Carpetas internas (no seleccionables por el cliente).
const (
	FolderGallery = "gallery"
	FolderExports = "exports"
)

// FileUpload archivo recibido en una petición multipart, ya abierto.
type FileUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// FileStorage puerto de almacenamiento de archivos subidos.
type FileStorage interface {
	// Save guarda el archivo como {folder}/{uuid}{ext} y devuelve sus metadatos.
	Save(ctx context.Context, folder string, file FileUpload) (*entity.StoredFile, error)
	// SaveBytes guarda contenido generado (p. ej. PDFs exportados) con nombre fijo.
	SaveBytes(ctx context.Context, folder, name string, data []byte) (*entity.StoredFile, error)
	// Delete borra el archivo referenciado por su URL pública; ignora errores.
	Delete(ctx context.Context, url string)
}
