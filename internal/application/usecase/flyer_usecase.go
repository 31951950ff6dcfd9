package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/application/ports"
	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

const (
	exportFormatPDF = "pdf"
	exportTTL       = 24 * time.Hour
)

var (
	ErrFlyerNotFound     = domain.NewError(domain.ErrNotFound, "FLYER_NOT_FOUND", "Encarte não encontrado")
	ErrUnsupportedFormat = domain.NewError(domain.ErrInvalidInput, "UNSUPPORTED_FORMAT", "Formato de exportação não suportado. Use pdf.")

	errFlyerCreation = domain.NewError(domain.ErrInternal, "FLYER_CREATION_ERROR", "Erro ao criar encarte")
	errFlyerUpdate   = domain.NewError(domain.ErrInternal, "FLYER_UPDATE_ERROR", "Erro ao atualizar encarte")
)

// ExportRecorder registra exportaciones generadas (métricas).
type ExportRecorder interface {
	RecordExport(format string)
}

// FlyerUseCase casos de uso de encartes: CRUD, duplicado, miniatura y exportación.
type FlyerUseCase struct {
	repo         repository.FlyerRepository
	storage      ports.FileStorage
	exporter     ports.FlyerExporter
	recorder     ExportRecorder
	shareBaseURL string
	now          func() time.Time
}

// NewFlyerUseCase construye el caso de uso. shareBaseURL es la URL del frontend
// usada para el QR del PDF; recorder puede ser nil.
func NewFlyerUseCase(
	repo repository.FlyerRepository,
	storage ports.FileStorage,
	exporter ports.FlyerExporter,
	shareBaseURL string,
	recorder ExportRecorder,
) *FlyerUseCase {
	return &FlyerUseCase{
		repo:         repo,
		storage:      storage,
		exporter:     exporter,
		recorder:     recorder,
		shareBaseURL: strings.TrimRight(shareBaseURL, "/"),
		now:          time.Now,
	}
}

// Create crea un encarte en estado draft.
func (uc *FlyerUseCase) Create(ctx context.Context, in dto.CreateFlyerRequest) (*dto.FlyerResponse, error) {
	cfg, err := prepareConfiguration(in.Configuration)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	flyer := &entity.Flyer{
		ID:            uuid.New().String(),
		Name:          in.Name,
		ClientID:      emptyToNil(in.ClientID),
		Status:        entity.FlyerStatusDraft,
		Configuration: cfg,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, flyer); err != nil {
		return nil, classifyStorageError(err, errFlyerCreation)
	}
	return toFlyerResponse(flyer), nil
}

// List lista encartes; las fechas filtran por created_at.
func (uc *FlyerUseCase) List(ctx context.Context, q dto.FlyerListQuery) (*dto.Paged[dto.FlyerResponse], error) {
	start, err := parseDateParam("startDate", q.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDateParam("endDate", q.EndDate)
	if err != nil {
		return nil, err
	}
	page, err := toPage(q.PageQuery)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.FlyerFilter{
		Page:      page,
		Search:    q.Search,
		ClientID:  q.ClientID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.FlyerResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toFlyerResponse(f))
	}
	return &dto.Paged[dto.FlyerResponse]{Items: items, Pagination: dto.NewPagination(page.Page, page.Limit, total)}, nil
}

// GetByID devuelve el encarte con el nombre del cliente.
func (uc *FlyerUseCase) GetByID(ctx context.Context, id string) (*dto.FlyerResponse, error) {
	flyer, err := uc.mustFlyer(ctx, id)
	if err != nil {
		return nil, err
	}
	return toFlyerResponse(flyer), nil
}

// Update aplica cambios parciales al encarte.
func (uc *FlyerUseCase) Update(ctx context.Context, id string, in dto.UpdateFlyerRequest) (*dto.FlyerResponse, error) {
	flyer, err := uc.mustFlyer(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Configuration != nil {
		cfg, err := prepareConfiguration(in.Configuration)
		if err != nil {
			return nil, err
		}
		flyer.Configuration = cfg
	}
	if in.Name != nil {
		flyer.Name = *in.Name
	}
	if in.ClientID != nil {
		flyer.ClientID = emptyToNil(in.ClientID)
	}
	flyer.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, flyer); err != nil {
		return nil, classifyStorageError(err, errFlyerUpdate)
	}
	// el nombre del cliente puede haber cambiado junto con clientId
	updated, err := uc.repo.GetByID(ctx, id)
	if err != nil || updated == nil {
		return toFlyerResponse(flyer), nil
	}
	return toFlyerResponse(updated), nil
}

// Delete elimina el encarte.
func (uc *FlyerUseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	if _, err := uc.mustFlyer(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Encarte removido com sucesso"}, nil
}

// Duplicate crea un nuevo draft con el cliente y la configuración del original.
func (uc *FlyerUseCase) Duplicate(ctx context.Context, id string, in dto.DuplicateFlyerRequest) (*dto.FlyerResponse, error) {
	original, err := uc.mustFlyer(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	cfg := make([]byte, len(original.Configuration))
	copy(cfg, original.Configuration)
	flyer := &entity.Flyer{
		ID:            uuid.New().String(),
		Name:          in.Name,
		ClientID:      original.ClientID,
		ClientName:    original.ClientName,
		Status:        entity.FlyerStatusDraft,
		Configuration: cfg,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, flyer); err != nil {
		return nil, classifyStorageError(err, errFlyerCreation)
	}
	return toFlyerResponse(flyer), nil
}

// UploadThumbnail guarda la miniatura en thumbnails y la asigna al encarte.
func (uc *FlyerUseCase) UploadThumbnail(ctx context.Context, id string, file ports.FileUpload) (*dto.ThumbnailResponse, error) {
	flyer, err := uc.mustFlyer(ctx, id)
	if err != nil {
		return nil, err
	}
	stored, err := uc.storage.Save(ctx, "thumbnails", file)
	if err != nil {
		return nil, err
	}
	flyer.ThumbnailURL = stored.URL
	flyer.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, flyer); err != nil {
		return nil, classifyStorageError(err, errFlyerUpdate)
	}
	return &dto.ThumbnailResponse{ThumbnailURL: stored.URL}, nil
}

// Export genera el PDF del encarte en exports/{id}_{unix}.pdf y devuelve el enlace de descarga.
func (uc *FlyerUseCase) Export(ctx context.Context, id string, q dto.ExportFlyerQuery) (*dto.ExportFlyerResponse, error) {
	format := strings.ToLower(q.Format)
	if format == "" {
		format = exportFormatPDF
	}
	if format != exportFormatPDF {
		return nil, ErrUnsupportedFormat
	}
	quality := strings.ToLower(q.Quality)
	switch quality {
	case "":
		quality = ports.QualityHigh
	case ports.QualityLow, ports.QualityMedium, ports.QualityHigh:
	default:
		return nil, invalidQuery("quality", "deve ser um dos valores: low, medium, high")
	}

	flyer, err := uc.mustFlyer(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := uc.exporter.ExportPDF(ctx, flyer, ports.ExportOptions{
		Quality:  quality,
		ShareURL: fmt.Sprintf("%s/flyers/%s", uc.shareBaseURL, flyer.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("exportar encarte %s: %w", flyer.ID, err)
	}
	now := uc.now()
	name := fmt.Sprintf("%s_%d.%s", flyer.ID, now.Unix(), format)
	stored, err := uc.storage.SaveBytes(ctx, ports.FolderExports, name, data)
	if err != nil {
		return nil, err
	}
	if uc.recorder != nil {
		uc.recorder.RecordExport(format)
	}
	return &dto.ExportFlyerResponse{
		DownloadURL: stored.URL,
		ExpiresAt:   now.Add(exportTTL),
		Format:      format,
		Quality:     quality,
	}, nil
}

func (uc *FlyerUseCase) mustFlyer(ctx context.Context, id string) (*entity.Flyer, error) {
	flyer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if flyer == nil {
		return nil, ErrFlyerNotFound
	}
	return flyer, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func toFlyerResponse(f *entity.Flyer) *dto.FlyerResponse {
	return &dto.FlyerResponse{
		ID:            f.ID,
		Name:          f.Name,
		ClientID:      f.ClientID,
		ClientName:    f.ClientName,
		ThumbnailURL:  f.ThumbnailURL,
		Status:        f.Status,
		Configuration: f.Configuration,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}
