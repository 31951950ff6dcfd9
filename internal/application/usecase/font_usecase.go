package usecase

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/application/ports"
	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

var (
	ErrFontNotFound    = domain.NewError(domain.ErrNotFound, "FONT_NOT_FOUND", "Fonte não encontrada")
	ErrInvalidFontFile = domain.NewError(domain.ErrInvalidInput, "INVALID_FONT_FILE", "Arquivo deve ser .ttf, .otf, .woff ou .woff2")
	ErrMissingFields   = domain.NewError(domain.ErrInvalidInput, "MISSING_FIELDS", "Campos obrigatórios: family, weight, style")
)

var fontExtensions = map[string]bool{".ttf": true, ".otf": true, ".woff": true, ".woff2": true}

// FontUseCase gestión de fuentes tipográficas subidas.
type FontUseCase struct {
	repo    repository.FontRepository
	storage ports.FileStorage
}

// NewFontUseCase construye el caso de uso.
func NewFontUseCase(repo repository.FontRepository, storage ports.FileStorage) *FontUseCase {
	return &FontUseCase{repo: repo, storage: storage}
}

// Create valida archivo y campos, guarda el archivo en fonts y registra la fuente.
func (uc *FontUseCase) Create(ctx context.Context, in dto.CreateFontRequest, file *ports.FileUpload) (*dto.FontResponse, error) {
	if file == nil {
		return nil, domain.ErrFileRequired
	}
	if strings.TrimSpace(in.Family) == "" || strings.TrimSpace(in.Weight) == "" || strings.TrimSpace(in.Style) == "" {
		return nil, ErrMissingFields
	}
	if !IsFontFile(file.Filename) {
		return nil, ErrInvalidFontFile
	}
	stored, err := uc.storage.Save(ctx, "fonts", *file)
	if err != nil {
		return nil, err
	}
	font := &entity.Font{
		ID:        uuid.New().String(),
		Family:    in.Family,
		Weight:    in.Weight,
		Style:     in.Style,
		FileURL:   stored.URL,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, font); err != nil {
		uc.storage.Delete(ctx, stored.URL)
		return nil, err
	}
	return toFontResponse(font), nil
}

// List devuelve todas las fuentes, las más recientes primero.
func (uc *FontUseCase) List(ctx context.Context) ([]dto.FontResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FontResponse, 0, len(list))
	for _, f := range list {
		out = append(out, *toFontResponse(f))
	}
	return out, nil
}

// Delete elimina la fuente y su archivo.
func (uc *FontUseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	font, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if font == nil {
		return nil, ErrFontNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	uc.storage.Delete(ctx, font.FileURL)
	return &dto.MessageResponse{Message: "Fonte removida com sucesso"}, nil
}

// IsFontFile indica si la extensión corresponde a una fuente soportada.
func IsFontFile(filename string) bool {
	return fontExtensions[strings.ToLower(filepath.Ext(filename))]
}

func toFontResponse(f *entity.Font) *dto.FontResponse {
	return &dto.FontResponse{
		ID:        f.ID,
		Family:    f.Family,
		Weight:    f.Weight,
		Style:     f.Style,
		FileURL:   f.FileURL,
		CreatedAt: f.CreatedAt,
	}
}
