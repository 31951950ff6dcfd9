package usecase

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/application/ports"
	"github.com/jhoicas/encartes-api/internal/domain"
)

const defaultUploadFolder = "general"

var ErrInvalidFolder = domain.NewError(domain.ErrInvalidInput, "INVALID_FOLDER",
	"Pasta inválida. Use: "+strings.Join(ports.UploadFolders, ", "))

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// UploadUseCase subida genérica de archivos a una de las carpetas permitidas.
type UploadUseCase struct {
	storage ports.FileStorage
}

// NewUploadUseCase construye el caso de uso.
func NewUploadUseCase(storage ports.FileStorage) *UploadUseCase {
	return &UploadUseCase{storage: storage}
}

// Upload guarda el archivo en folder (general si viene vacío).
func (uc *UploadUseCase) Upload(ctx context.Context, folder string, file *ports.FileUpload) (*dto.UploadResponse, error) {
	if file == nil {
		return nil, domain.ErrFileRequired
	}
	if folder == "" {
		folder = defaultUploadFolder
	}
	if !slices.Contains(ports.UploadFolders, folder) {
		return nil, ErrInvalidFolder
	}
	stored, err := uc.storage.Save(ctx, folder, *file)
	if err != nil {
		return nil, err
	}
	return &dto.UploadResponse{
		ID:       stored.ID,
		Filename: stored.OriginalName,
		URL:      stored.URL,
		MimeType: stored.MimeType,
		Size:     stored.Size,
	}, nil
}

// IsImageFile indica si la extensión es de imagen (jpg, jpeg, png, gif, webp).
func IsImageFile(filename string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}
