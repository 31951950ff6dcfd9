package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/application/ports"
	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

// folderRoot valor de folderId que selecciona las imágenes sin carpeta.
const folderRoot = "none"

var (
	ErrGalleryImageNotFound  = domain.NewError(domain.ErrNotFound, "GALLERY_IMAGE_NOT_FOUND", "Imagem não encontrada")
	ErrGalleryFolderNotFound = domain.NewError(domain.ErrNotFound, "GALLERY_FOLDER_NOT_FOUND", "Pasta não encontrada")
	ErrInvalidImageFile      = domain.NewError(domain.ErrInvalidInput, "INVALID_IMAGE_FILE", "Arquivo deve ser uma imagem (.jpg, .jpeg, .png, .gif ou .webp)")
)

// GalleryTxRunner ejecuta fn con un repositorio de galería atado a una transacción.
type GalleryTxRunner interface {
	RunGallery(ctx context.Context, fn func(repo repository.GalleryRepository) error) error
}

// GalleryUseCase imágenes y carpetas de la galería.
type GalleryUseCase struct {
	repo    repository.GalleryRepository
	tx      GalleryTxRunner
	storage ports.FileStorage
}

// NewGalleryUseCase construye el caso de uso.
func NewGalleryUseCase(repo repository.GalleryRepository, tx GalleryTxRunner, storage ports.FileStorage) *GalleryUseCase {
	return &GalleryUseCase{repo: repo, tx: tx, storage: storage}
}

// ListImages lista imágenes; folderId=none devuelve solo las de la raíz.
func (uc *GalleryUseCase) ListImages(ctx context.Context, q dto.GalleryListQuery) (*dto.Paged[dto.GalleryImageResponse], error) {
	page, err := toPage(q.PageQuery)
	if err != nil {
		return nil, err
	}
	f := repository.GalleryFilter{Page: page, Search: q.Search}
	if q.FolderID == folderRoot {
		f.RootOnly = true
	} else {
		f.FolderID = q.FolderID
	}
	list, total, err := uc.repo.ListImages(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.GalleryImageResponse, 0, len(list))
	for _, img := range list {
		items = append(items, toGalleryImageResponse(img))
	}
	return &dto.Paged[dto.GalleryImageResponse]{Items: items, Pagination: dto.NewPagination(page.Page, page.Limit, total)}, nil
}

// Upload guarda cada imagen en la carpeta gallery y la registra. Todas las
// extensiones se validan antes de escribir nada.
func (uc *GalleryUseCase) Upload(ctx context.Context, files []ports.FileUpload, folderID string) ([]dto.GalleryImageResponse, error) {
	if len(files) == 0 {
		return nil, domain.ErrFileRequired
	}
	for _, f := range files {
		if !IsImageFile(f.Filename) {
			return nil, ErrInvalidImageFile.WithDetails(f.Filename)
		}
	}
	var folder *string
	if folderID != "" && folderID != folderRoot {
		if _, err := uc.mustFolder(ctx, folderID); err != nil {
			return nil, err
		}
		folder = &folderID
	}

	out := make([]dto.GalleryImageResponse, 0, len(files))
	for _, f := range files {
		stored, err := uc.storage.Save(ctx, ports.FolderGallery, f)
		if err != nil {
			return nil, err
		}
		img := &entity.GalleryImage{
			ID:           uuid.New().String(),
			Filename:     stored.OriginalName,
			URL:          stored.URL,
			ThumbnailURL: stored.URL,
			MimeType:     stored.MimeType,
			Size:         stored.Size,
			FolderID:     folder,
			CreatedAt:    time.Now(),
		}
		if err := uc.repo.CreateImage(ctx, img); err != nil {
			uc.storage.Delete(ctx, stored.URL)
			return nil, err
		}
		out = append(out, toGalleryImageResponse(img))
	}
	return out, nil
}

// DeleteImage elimina la imagen y su archivo.
func (uc *GalleryUseCase) DeleteImage(ctx context.Context, id string) (*dto.ActionResponse, error) {
	img, err := uc.repo.GetImage(ctx, id)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrGalleryImageNotFound
	}
	if err := uc.repo.DeleteImage(ctx, id); err != nil {
		return nil, err
	}
	uc.storage.Delete(ctx, img.URL)
	return &dto.ActionResponse{Success: true}, nil
}

// DeleteMany elimina las imágenes existentes entre ids y devuelve cuántas se borraron.
func (uc *GalleryUseCase) DeleteMany(ctx context.Context, in dto.DeleteManyRequest) (*dto.ActionResponse, error) {
	deleted, err := uc.repo.DeleteImages(ctx, in.IDs)
	if err != nil {
		return nil, err
	}
	for _, img := range deleted {
		uc.storage.Delete(ctx, img.URL)
	}
	n := len(deleted)
	return &dto.ActionResponse{Success: true, Deleted: &n}, nil
}

// MoveImages mueve imágenes a una carpeta o a la raíz (folderId nulo).
func (uc *GalleryUseCase) MoveImages(ctx context.Context, in dto.MoveImagesRequest) (*dto.ActionResponse, error) {
	folder := emptyToNil(in.FolderID)
	if folder != nil {
		if _, err := uc.mustFolder(ctx, *folder); err != nil {
			return nil, err
		}
	}
	moved, err := uc.repo.MoveImages(ctx, in.ImageIDs, folder)
	if err != nil {
		return nil, err
	}
	return &dto.ActionResponse{Success: true, Moved: &moved}, nil
}

// ListFolders devuelve las carpetas ordenadas por nombre con su número de imágenes.
func (uc *GalleryUseCase) ListFolders(ctx context.Context) ([]dto.GalleryFolderResponse, error) {
	list, err := uc.repo.ListFolders(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GalleryFolderResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toGalleryFolderResponse(f))
	}
	return out, nil
}

func (uc *GalleryUseCase) CreateFolder(ctx context.Context, in dto.CreateFolderRequest) (*dto.GalleryFolderResponse, error) {
	now := time.Now()
	folder := &entity.GalleryFolder{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Color:     emptyToNil(in.Color),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.CreateFolder(ctx, folder); err != nil {
		return nil, err
	}
	out := toGalleryFolderResponse(folder)
	return &out, nil
}

func (uc *GalleryUseCase) UpdateFolder(ctx context.Context, id string, in dto.UpdateFolderRequest) (*dto.GalleryFolderResponse, error) {
	folder, err := uc.mustFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		folder.Name = *in.Name
	}
	if in.Color != nil {
		folder.Color = emptyToNil(in.Color)
	}
	folder.UpdatedAt = time.Now()
	if err := uc.repo.UpdateFolder(ctx, folder); err != nil {
		return nil, err
	}
	out := toGalleryFolderResponse(folder)
	return &out, nil
}

// DeleteFolder mueve sus imágenes a la raíz y borra la carpeta en una transacción.
func (uc *GalleryUseCase) DeleteFolder(ctx context.Context, id string) (*dto.ActionResponse, error) {
	if _, err := uc.mustFolder(ctx, id); err != nil {
		return nil, err
	}
	err := uc.tx.RunGallery(ctx, func(repo repository.GalleryRepository) error {
		if err := repo.DetachFolder(ctx, id); err != nil {
			return err
		}
		return repo.DeleteFolder(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.ActionResponse{Success: true}, nil
}

func (uc *GalleryUseCase) mustFolder(ctx context.Context, id string) (*entity.GalleryFolder, error) {
	folder, err := uc.repo.GetFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, ErrGalleryFolderNotFound
	}
	return folder, nil
}

func toGalleryImageResponse(img *entity.GalleryImage) dto.GalleryImageResponse {
	return dto.GalleryImageResponse{
		ID:           img.ID,
		Filename:     img.Filename,
		URL:          img.URL,
		ThumbnailURL: img.ThumbnailURL,
		MimeType:     img.MimeType,
		Size:         img.Size,
		FolderID:     img.FolderID,
		CreatedAt:    img.CreatedAt,
	}
}

func toGalleryFolderResponse(f *entity.GalleryFolder) dto.GalleryFolderResponse {
	return dto.GalleryFolderResponse{
		ID:         f.ID,
		Name:       f.Name,
		Color:      f.Color,
		ImageCount: f.ImageCount,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}
