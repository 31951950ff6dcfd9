package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/domain"
)

func TestTemplate_CRUD(t *testing.T) {
	repo := newFakeTemplateRepo()
	uc := NewTemplateUseCase(repo, newFakeStorage())
	ctx := context.Background()

	tpl, err := uc.Create(ctx, dto.CreateTemplateRequest{Name: "Cabeçalho vermelho", Type: "header", Configuration: json.RawMessage(`{"bg":"#f00"}`)})
	require.NoError(t, err)
	assert.False(t, tpl.IsDefault)

	isDefault := true
	out, err := uc.Update(ctx, tpl.ID, dto.UpdateTemplateRequest{IsDefault: &isDefault, Type: str("full")})
	require.NoError(t, err)
	assert.True(t, out.IsDefault)
	assert.Equal(t, "full", out.Type)
	assert.JSONEq(t, `{"bg":"#f00"}`, string(out.Configuration), "la configuración no enviada se conserva")

	_, err = uc.Delete(ctx, tpl.ID)
	assert.ErrorIs(t, err, ErrCannotDeleteDefault)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	isDefault = false
	_, err = uc.Update(ctx, tpl.ID, dto.UpdateTemplateRequest{IsDefault: &isDefault})
	require.NoError(t, err)
	msg, err := uc.Delete(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Template removido com sucesso", msg.Message)

	_, err = uc.GetByID(ctx, tpl.ID)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestTemplate_ErrorDeCreacion(t *testing.T) {
	repo := newFakeTemplateRepo()
	repo.createErr = errors.New("pool closed")
	uc := NewTemplateUseCase(repo, newFakeStorage())

	_, err := uc.Create(context.Background(), dto.CreateTemplateRequest{Name: "X", Type: "footer"})
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "TEMPLATE_CREATION_ERROR", de.Code)
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestTemplate_ListIsDefaultInvalido(t *testing.T) {
	uc := NewTemplateUseCase(newFakeTemplateRepo(), newFakeStorage())
	_, err := uc.List(context.Background(), dto.TemplateListQuery{IsDefault: "talvez"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
