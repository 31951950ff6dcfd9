package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/application/ports"
	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/internal/domain/entity"
)

type stubExporter struct {
	got  ports.ExportOptions
	err  error
	seen *entity.Flyer
}

func (e *stubExporter) ExportPDF(_ context.Context, f *entity.Flyer, opts ports.ExportOptions) ([]byte, error) {
	e.got, e.seen = opts, f
	if e.err != nil {
		return nil, e.err
	}
	return []byte("%PDF-1.4 encarte"), nil
}

type countingRecorder struct{ formats []string }

func (r *countingRecorder) RecordExport(format string) { r.formats = append(r.formats, format) }

func newFlyerUC() (*FlyerUseCase, *fakeFlyerRepo, *fakeStorage, *stubExporter, *countingRecorder) {
	repo := newFakeFlyerRepo()
	st := newFakeStorage()
	exp := &stubExporter{}
	rec := &countingRecorder{}
	uc := NewFlyerUseCase(repo, st, exp, "http://app.test/", rec)
	uc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return uc, repo, st, exp, rec
}

func TestFlyer_CreateDraft(t *testing.T) {
	uc, _, _, _, _ := newFlyerUC()

	out, err := uc.Create(context.Background(), dto.CreateFlyerRequest{
		Name:          "Ofertas da semana",
		Configuration: json.RawMessage(`{ "pages": [ {"products": []} ] }`),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.FlyerStatusDraft, out.Status)
	assert.Nil(t, out.ClientID)
	assert.JSONEq(t, `{"pages":[{"products":[]}]}`, string(out.Configuration))
	assert.Equal(t, `{"pages":[{"products":[]}]}`, string(out.Configuration), "se guarda compactado")
}

func TestFlyer_ConfiguracionAusenteEsObjetoVacio(t *testing.T) {
	uc, _, _, _, _ := newFlyerUC()
	out, err := uc.Create(context.Background(), dto.CreateFlyerRequest{Name: "X"})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out.Configuration))

	_, err = uc.Create(context.Background(), dto.CreateFlyerRequest{Name: "X", Configuration: json.RawMessage(`[1,2]`)})
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "VALIDATION_ERROR", de.Code)
}

func TestFlyer_ConfiguracionDemasiadoGrande(t *testing.T) {
	uc, _, _, _, _ := newFlyerUC()
	big := `{"img":"` + strings.Repeat("A", maxConfigurationBytes) + `"}`

	_, err := uc.Create(context.Background(), dto.CreateFlyerRequest{Name: "X", Configuration: json.RawMessage(big)})
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "CONFIGURATION_TOO_LARGE", de.Code)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, de.Message, "(10.00MB)")
}

func TestFlyer_ClasificaErroresDeAlmacenamiento(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode string
		wantKind error
	}{
		{"tipado demasiado grande", fmt.Errorf("insert flyer: %w", domain.ErrPayloadTooLarge.WithCause(errors.New("22001"))), "PAYLOAD_TOO_LARGE", domain.ErrInvalidInput},
		{"mensaje value too long", errors.New("ERROR: value too long for type character varying(255)"), "PAYLOAD_TOO_LARGE", domain.ErrInvalidInput},
		{"tipado json", fmt.Errorf("insert flyer: %w", domain.ErrInvalidJSON.WithCause(errors.New("22P02"))), "INVALID_JSON", domain.ErrInvalidInput},
		{"mensaje invalid input syntax", errors.New("invalid input syntax for type json"), "INVALID_JSON", domain.ErrInvalidInput},
		{"otro", errors.New("connection reset by peer"), "FLYER_CREATION_ERROR", domain.ErrInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, repo, _, _, _ := newFlyerUC()
			repo.createErr = tc.err

			_, err := uc.Create(context.Background(), dto.CreateFlyerRequest{Name: "X"})
			var de *domain.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.wantCode, de.Code)
			assert.ErrorIs(t, err, tc.wantKind)
			assert.NotNil(t, de.Cause())
		})
	}
}

func TestFlyer_UpdateErrorDeAlmacenamiento(t *testing.T) {
	uc, repo, _, _, _ := newFlyerUC()
	f, err := uc.Create(context.Background(), dto.CreateFlyerRequest{Name: "X"})
	require.NoError(t, err)
	repo.updateErr = errors.New("deadlock detected")

	_, err = uc.Update(context.Background(), f.ID, dto.UpdateFlyerRequest{Name: str("Y")})
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "FLYER_UPDATE_ERROR", de.Code)
}

func TestFlyer_DuplicateCopiaClienteYConfiguracion(t *testing.T) {
	uc, repo, _, _, _ := newFlyerUC()
	ctx := context.Background()
	clientID := "6f1c2b1e-1b7e-4b43-9a33-7f0f7b2f2a10"
	orig, err := uc.Create(ctx, dto.CreateFlyerRequest{Name: "Original", ClientID: &clientID, Configuration: json.RawMessage(`{"a":1}`)})
	require.NoError(t, err)
	f := repo.flyers[orig.ID]
	f.Status = "published"
	repo.flyers[orig.ID] = f

	dup, err := uc.Duplicate(ctx, orig.ID, dto.DuplicateFlyerRequest{Name: "Cópia"})
	require.NoError(t, err)
	assert.NotEqual(t, orig.ID, dup.ID)
	assert.Equal(t, "Cópia", dup.Name)
	assert.Equal(t, entity.FlyerStatusDraft, dup.Status)
	require.NotNil(t, dup.ClientID)
	assert.Equal(t, clientID, *dup.ClientID)
	assert.JSONEq(t, `{"a":1}`, string(dup.Configuration))

	_, err = uc.Duplicate(ctx, "nope", dto.DuplicateFlyerRequest{Name: "Z"})
	assert.ErrorIs(t, err, ErrFlyerNotFound)
}

func TestFlyer_Export(t *testing.T) {
	uc, _, st, exp, rec := newFlyerUC()
	ctx := context.Background()
	f, err := uc.Create(ctx, dto.CreateFlyerRequest{Name: "Ofertas"})
	require.NoError(t, err)

	out, err := uc.Export(ctx, f.ID, dto.ExportFlyerQuery{})
	require.NoError(t, err)
	assert.Equal(t, "pdf", out.Format)
	assert.Equal(t, ports.QualityHigh, out.Quality)
	wantName := fmt.Sprintf("%s_%d.pdf", f.ID, uc.now().Unix())
	assert.Equal(t, "http://cdn.test/uploads/exports/"+wantName, out.DownloadURL)
	assert.Equal(t, uc.now().Add(24*time.Hour), out.ExpiresAt)
	assert.Equal(t, []byte("%PDF-1.4 encarte"), st.files[out.DownloadURL])
	assert.Equal(t, "http://app.test/flyers/"+f.ID, exp.got.ShareURL)
	assert.Equal(t, []string{"pdf"}, rec.formats)
}

func TestFlyer_ExportValidaciones(t *testing.T) {
	uc, _, _, exp, _ := newFlyerUC()
	ctx := context.Background()
	f, err := uc.Create(ctx, dto.CreateFlyerRequest{Name: "Ofertas"})
	require.NoError(t, err)

	_, err = uc.Export(ctx, f.ID, dto.ExportFlyerQuery{Format: "png"})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = uc.Export(ctx, f.ID, dto.ExportFlyerQuery{Quality: "ultra"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Export(ctx, "nope", dto.ExportFlyerQuery{Format: "PDF", Quality: "low"})
	assert.ErrorIs(t, err, ErrFlyerNotFound)

	exp.err = errors.New("fuente no encontrada")
	_, err = uc.Export(ctx, f.ID, dto.ExportFlyerQuery{})
	assert.Error(t, err)
}

func TestFlyer_ListParseaFechas(t *testing.T) {
	uc, repo, _, _, _ := newFlyerUC()

	_, err := uc.List(context.Background(), dto.FlyerListQuery{StartDate: "2026-01-01", EndDate: "2026-01-31T23:59:59Z", ClientID: "c1"})
	require.NoError(t, err)
	require.NotNil(t, repo.lastList.StartDate)
	assert.Equal(t, 2026, repo.lastList.StartDate.Year())
	require.NotNil(t, repo.lastList.EndDate)
	assert.Equal(t, 31, repo.lastList.EndDate.Day())
	assert.Equal(t, "c1", repo.lastList.ClientID)

	_, err = uc.List(context.Background(), dto.FlyerListQuery{StartDate: "ontem"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFlyer_ThumbnailYDelete(t *testing.T) {
	uc, repo, _, _, _ := newFlyerUC()
	ctx := context.Background()
	f, err := uc.Create(ctx, dto.CreateFlyerRequest{Name: "Ofertas"})
	require.NoError(t, err)

	th, err := uc.UploadThumbnail(ctx, f.ID, upload("capa.png", "png"))
	require.NoError(t, err)
	assert.Equal(t, th.ThumbnailURL, repo.flyers[f.ID].ThumbnailURL)

	msg, err := uc.Delete(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Encarte removido com sucesso", msg.Message)
	_, err = uc.GetByID(ctx, f.ID)
	assert.ErrorIs(t, err, ErrFlyerNotFound)
}
