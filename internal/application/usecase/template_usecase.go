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

var (
	ErrTemplateNotFound    = domain.NewError(domain.ErrNotFound, "TEMPLATE_NOT_FOUND", "Template não encontrado")
	ErrCannotDeleteDefault = domain.NewError(domain.ErrInvalidInput, "CANNOT_DELETE_DEFAULT", "Não é possível remover templates padrão")

	errTemplateCreation = domain.NewError(domain.ErrInternal, "TEMPLATE_CREATION_ERROR", "Erro ao criar template")
	errTemplateUpdate   = domain.NewError(domain.ErrInternal, "TEMPLATE_UPDATE_ERROR", "Erro ao atualizar template")
)

// TemplateUseCase casos de uso de templates de cabecera, pie y página completa.
type TemplateUseCase struct {
	repo    repository.TemplateRepository
	storage ports.FileStorage
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(repo repository.TemplateRepository, storage ports.FileStorage) *TemplateUseCase {
	return &TemplateUseCase{repo: repo, storage: storage}
}

func (uc *TemplateUseCase) Create(ctx context.Context, in dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	cfg, err := prepareConfiguration(in.Configuration)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	tpl := &entity.Template{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Type:          in.Type,
		ThumbnailURL:  in.ThumbnailURL,
		IsDefault:     in.IsDefault,
		Configuration: cfg,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, tpl); err != nil {
		return nil, classifyStorageError(err, errTemplateCreation)
	}
	return toTemplateResponse(tpl), nil
}

func (uc *TemplateUseCase) List(ctx context.Context, q dto.TemplateListQuery) (*dto.Paged[dto.TemplateResponse], error) {
	isDefault, err := parseBoolParam("isDefault", q.IsDefault)
	if err != nil {
		return nil, err
	}
	page, err := toPage(q.PageQuery)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.TemplateFilter{
		Page:      page,
		Search:    q.Search,
		Type:      q.Type,
		IsDefault: isDefault,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.TemplateResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTemplateResponse(t))
	}
	return &dto.Paged[dto.TemplateResponse]{Items: items, Pagination: dto.NewPagination(page.Page, page.Limit, total)}, nil
}

func (uc *TemplateUseCase) GetByID(ctx context.Context, id string) (*dto.TemplateResponse, error) {
	tpl, err := uc.mustTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

func (uc *TemplateUseCase) Update(ctx context.Context, id string, in dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	tpl, err := uc.mustTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Configuration != nil {
		cfg, err := prepareConfiguration(in.Configuration)
		if err != nil {
			return nil, err
		}
		tpl.Configuration = cfg
	}
	if in.Name != nil {
		tpl.Name = *in.Name
	}
	if in.Type != nil {
		tpl.Type = *in.Type
	}
	if in.ThumbnailURL != nil {
		tpl.ThumbnailURL = *in.ThumbnailURL
	}
	if in.IsDefault != nil {
		tpl.IsDefault = *in.IsDefault
	}
	tpl.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, tpl); err != nil {
		return nil, classifyStorageError(err, errTemplateUpdate)
	}
	return toTemplateResponse(tpl), nil
}

// Delete elimina el template salvo que sea uno de los predeterminados.
func (uc *TemplateUseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	tpl, err := uc.mustTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if tpl.IsDefault {
		return nil, ErrCannotDeleteDefault
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Template removido com sucesso"}, nil
}

func (uc *TemplateUseCase) UploadThumbnail(ctx context.Context, id string, file ports.FileUpload) (*dto.ThumbnailResponse, error) {
	tpl, err := uc.mustTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	stored, err := uc.storage.Save(ctx, "thumbnails", file)
	if err != nil {
		return nil, err
	}
	tpl.ThumbnailURL = stored.URL
	tpl.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, tpl); err != nil {
		return nil, classifyStorageError(err, errTemplateUpdate)
	}
	return &dto.ThumbnailResponse{ThumbnailURL: stored.URL}, nil
}

func (uc *TemplateUseCase) mustTemplate(ctx context.Context, id string) (*entity.Template, error) {
	tpl, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}
	return tpl, nil
}

func toTemplateResponse(t *entity.Template) *dto.TemplateResponse {
	return &dto.TemplateResponse{
		ID:            t.ID,
		Name:          t.Name,
		Type:          t.Type,
		ThumbnailURL:  t.ThumbnailURL,
		IsDefault:     t.IsDefault,
		Configuration: t.Configuration,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
