package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/domain"
)

func TestFont_CreateValidaciones(t *testing.T) {
	uc := NewFontUseCase(newFakeFontRepo(), newFakeStorage())
	ctx := context.Background()
	fields := dto.CreateFontRequest{Family: "Roboto", Weight: "700", Style: "normal"}

	_, err := uc.Create(ctx, fields, nil)
	assert.ErrorIs(t, err, domain.ErrFileRequired)

	f := upload("Roboto-Bold.ttf", "ttf")
	_, err = uc.Create(ctx, dto.CreateFontRequest{Family: "Roboto"}, &f)
	assert.ErrorIs(t, err, ErrMissingFields)

	bad := upload("Roboto-Bold.zip", "zip")
	_, err = uc.Create(ctx, fields, &bad)
	assert.ErrorIs(t, err, ErrInvalidFontFile)
}

func TestFont_CreateYDeleteBorraArchivo(t *testing.T) {
	repo := newFakeFontRepo()
	st := newFakeStorage()
	uc := NewFontUseCase(repo, st)
	ctx := context.Background()

	f := upload("Roboto-Bold.WOFF2", "woff2")
	font, err := uc.Create(ctx, dto.CreateFontRequest{Family: "Roboto", Weight: "700", Style: "italic"}, &f)
	require.NoError(t, err)
	assert.Contains(t, font.FileURL, "/fonts/")

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	msg, err := uc.Delete(ctx, font.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fonte removida com sucesso", msg.Message)
	assert.Equal(t, []string{font.FileURL}, st.deleted)

	_, err = uc.Delete(ctx, font.ID)
	assert.ErrorIs(t, err, ErrFontNotFound)
}

func TestIsFontFile(t *testing.T) {
	for name, want := range map[string]bool{
		"a.ttf": true, "a.OTF": true, "a.woff": true, "a.woff2": true,
		"a.png": false, "ttf": false, "": false,
	} {
		assert.Equal(t, want, IsFontFile(name), name)
	}
}
