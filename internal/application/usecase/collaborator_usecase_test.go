package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/internal/domain/entity"
)

func TestCollaborator_Create(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewCollaboratorUseCase(repo, newFakeStorage())
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateCollaboratorRequest{Name: "Carla", Email: "carla@loja.com", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCollaborator, out.Role)
	assert.False(t, out.EmailVerified)

	stored := repo.users[out.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("123456")))

	_, err = uc.Create(ctx, dto.CreateCollaboratorRequest{Name: "Outra", Email: "carla@loja.com", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestCollaborator_UpdateEmailConflicto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewCollaboratorUseCase(repo, newFakeStorage())
	ctx := context.Background()
	a, err := uc.Create(ctx, dto.CreateCollaboratorRequest{Name: "Ana", Email: "ana@x.com", Password: "123456", Role: entity.RoleManager})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreateCollaboratorRequest{Name: "Bia", Email: "bia@x.com", Password: "123456"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, b.ID, dto.UpdateCollaboratorRequest{Email: str("ana@x.com")})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	out, err := uc.Update(ctx, a.ID, dto.UpdateCollaboratorRequest{Role: str(entity.RoleAdmin), Phone: str("11999")})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)
	assert.Equal(t, "11999", out.Phone)
}

func TestCollaborator_NoEncontrado(t *testing.T) {
	uc := NewCollaboratorUseCase(newFakeUserRepo(), newFakeStorage())
	ctx := context.Background()

	_, err := uc.GetByID(ctx, "x")
	assert.ErrorIs(t, err, ErrCollaboratorNotFound)
	_, err = uc.Delete(ctx, "x")
	assert.ErrorIs(t, err, ErrCollaboratorNotFound)
}

func TestCollaborator_ListPorRol(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewCollaboratorUseCase(repo, newFakeStorage())
	ctx := context.Background()
	_, _ = uc.Create(ctx, dto.CreateCollaboratorRequest{Name: "Ana", Email: "ana@x.com", Password: "123456", Role: entity.RoleManager})
	_, _ = uc.Create(ctx, dto.CreateCollaboratorRequest{Name: "Bia", Email: "bia@x.com", Password: "123456"})

	out, err := uc.List(ctx, dto.CollaboratorListQuery{Role: entity.RoleManager})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Ana", out.Items[0].Name)
	assert.Equal(t, 1, out.Pagination.TotalPages)
}
