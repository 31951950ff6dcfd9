package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/application/ports"
	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

var ErrCollaboratorNotFound = domain.NewError(domain.ErrNotFound, "COLLABORATOR_NOT_FOUND", "Colaborador não encontrado")

// CollaboratorUseCase gestión de colaboradores (usuarios creados por otros usuarios).
type CollaboratorUseCase struct {
	repo    repository.UserRepository
	storage ports.FileStorage
}

// NewCollaboratorUseCase construye el caso de uso.
func NewCollaboratorUseCase(repo repository.UserRepository, storage ports.FileStorage) *CollaboratorUseCase {
	return &CollaboratorUseCase{repo: repo, storage: storage}
}

// Create crea un colaborador; rol por defecto collaborator.
func (uc *CollaboratorUseCase) Create(ctx context.Context, in dto.CreateCollaboratorRequest) (*dto.CollaboratorResponse, error) {
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleCollaborator
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return toCollaboratorResponse(user), nil
}

// List lista colaboradores; search busca en nombre o email.
func (uc *CollaboratorUseCase) List(ctx context.Context, q dto.CollaboratorListQuery) (*dto.Paged[dto.CollaboratorResponse], error) {
	page, err := toPage(q.PageQuery)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.UserFilter{Page: page, Search: q.Search, Role: q.Role})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CollaboratorResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toCollaboratorResponse(u))
	}
	return &dto.Paged[dto.CollaboratorResponse]{Items: items, Pagination: dto.NewPagination(page.Page, page.Limit, total)}, nil
}

// GetByID obtiene un colaborador.
func (uc *CollaboratorUseCase) GetByID(ctx context.Context, id string) (*dto.CollaboratorResponse, error) {
	user, err := uc.mustCollaborator(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCollaboratorResponse(user), nil
}

// Update actualiza datos del colaborador. La contraseña no se toca aquí.
func (uc *CollaboratorUseCase) Update(ctx context.Context, id string, in dto.UpdateCollaboratorRequest) (*dto.CollaboratorResponse, error) {
	user, err := uc.mustCollaborator(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil && *in.Email != user.Email {
		other, err := uc.repo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return toCollaboratorResponse(user), nil
}

// Delete elimina el colaborador.
func (uc *CollaboratorUseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	if _, err := uc.mustCollaborator(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Colaborador removido com sucesso"}, nil
}

// UploadAvatar guarda el avatar del colaborador en la carpeta avatars.
func (uc *CollaboratorUseCase) UploadAvatar(ctx context.Context, id string, file ports.FileUpload) (*dto.AvatarResponse, error) {
	user, err := uc.mustCollaborator(ctx, id)
	if err != nil {
		return nil, err
	}
	stored, err := uc.storage.Save(ctx, "avatars", file)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = stored.URL
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.AvatarResponse{AvatarURL: stored.URL}, nil
}

func (uc *CollaboratorUseCase) mustCollaborator(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrCollaboratorNotFound
	}
	return user, nil
}

func toCollaboratorResponse(u *entity.User) *dto.CollaboratorResponse {
	return &dto.CollaboratorResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          u.Role,
		AvatarURL:     u.AvatarURL,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
