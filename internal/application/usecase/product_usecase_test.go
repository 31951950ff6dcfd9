package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/pkg/validator"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func str(s string) *string { return &s }

func TestProduct_CreateDefaults(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, newFakeStorage())

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "Arroz 5kg", Price: dec("21.999")})
	require.NoError(t, err)
	assert.True(t, out.Active)
	assert.Nil(t, out.SKU)
	assert.Equal(t, "22", out.Price.String())
}

func TestProduct_SKU(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, newFakeStorage())
	ctx := context.Background()

	a, err := uc.Create(ctx, dto.CreateProductRequest{Name: "A", Price: dec("1"), SKU: str("SKU-1")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "B", Price: dec("1"), SKU: str("SKU-1")})
	assert.ErrorIs(t, err, ErrSKUAlreadyExists)

	// un SKU vacío no cuenta como duplicado
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "C", Price: dec("1"), SKU: str("")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "D", Price: dec("1"), SKU: str("")})
	require.NoError(t, err)

	b, err := uc.Create(ctx, dto.CreateProductRequest{Name: "E", Price: dec("1"), SKU: str("SKU-2")})
	require.NoError(t, err)
	_, err = uc.Update(ctx, b.ID, dto.UpdateProductRequest{SKU: str("SKU-1")})
	assert.ErrorIs(t, err, ErrSKUAlreadyExists)

	// mismo SKU propio no es conflicto
	_, err = uc.Update(ctx, a.ID, dto.UpdateProductRequest{SKU: str("SKU-1"), Name: str("A2")})
	assert.NoError(t, err)
}

func TestProduct_DeleteEsLogico(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, newFakeStorage())
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Feijão", Price: dec("7.49")})
	require.NoError(t, err)

	msg, err := uc.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Produto removido com sucesso", msg.Message)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	_, err = uc.Delete(ctx, "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProduct_ListParseaFiltros(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, newFakeStorage())

	_, err := uc.List(context.Background(), dto.ProductListQuery{MinPrice: "1.5", MaxPrice: "10", Active: "false", Category: "grãos"})
	require.NoError(t, err)
	require.NotNil(t, repo.lastList.MinPrice)
	assert.Equal(t, "1.5", repo.lastList.MinPrice.String())
	require.NotNil(t, repo.lastList.Active)
	assert.False(t, *repo.lastList.Active)
	assert.Equal(t, 20, repo.lastList.Limit)

	_, err = uc.List(context.Background(), dto.ProductListQuery{MinPrice: "barato"})
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "VALIDATION_ERROR", de.Code)
	assert.Equal(t, []validator.FieldError{{Field: "minPrice", Message: "deve ser um número"}}, de.Details)
}

func TestProduct_UploadImage(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo, newFakeStorage())
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Café", Price: dec("15")})
	require.NoError(t, err)

	img, err := uc.UploadImage(ctx, p.ID, upload("cafe.jpg", "jpg"))
	require.NoError(t, err)
	got, _ := uc.GetByID(ctx, p.ID)
	assert.Equal(t, img.ImageURL, got.ImageURL)
	assert.Contains(t, img.ImageURL, "/products/")
}
