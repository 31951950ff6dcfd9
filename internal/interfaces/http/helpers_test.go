package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/encartes-api/internal/application/auth"
	"github.com/jhoicas/encartes-api/internal/application/ports"
	"github.com/jhoicas/encartes-api/internal/application/usecase"
	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
	"github.com/jhoicas/encartes-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/encartes-api/internal/interfaces/http"
	"github.com/jhoicas/encartes-api/pkg/jwt"
	"github.com/jhoicas/encartes-api/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "ana@mercado.com.br"
	testIssuer    = "encartes-api-test"
	testCDN       = "http://localhost:3000/uploads"
)

// ── usuarios ─────────────────────────────────────────────────────────────────

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*entity.User
	err   error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*entity.User{
		testUserID: {ID: testUserID, Email: testEmail, Name: "Ana Souza", Role: entity.RoleAdmin, EmailVerified: true},
	}}
}

func (f *fakeUsers) find(match func(*entity.User) bool) *entity.User {
	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (f *fakeUsers) GetByVerificationToken(_ context.Context, token string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.find(func(u *entity.User) bool {
		return u.EmailVerificationToken != nil && *u.EmailVerificationToken == token
	}), nil
}

func (f *fakeUsers) GetByResetToken(_ context.Context, token string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.find(func(u *entity.User) bool {
		return u.PasswordResetToken != nil && *u.PasswordResetToken == token
	}), nil
}

func (f *fakeUsers) Update(ctx context.Context, u *entity.User) error { return f.Create(ctx, u) }

func (f *fakeUsers) List(context.Context, repository.UserFilter) ([]*entity.User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

type nopMailer struct{}

func (nopMailer) SendEmailVerification(context.Context, string, string, string) error { return nil }
func (nopMailer) SendPasswordReset(context.Context, string, string, string) error     { return nil }

// ── ping ─────────────────────────────────────────────────────────────────────

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

// ── fuentes ──────────────────────────────────────────────────────────────────

type fakeFontRepo struct {
	mu    sync.Mutex
	fonts map[string]*entity.Font
}

func newFakeFontRepo() *fakeFontRepo { return &fakeFontRepo{fonts: map[string]*entity.Font{}} }

func (r *fakeFontRepo) Create(_ context.Context, f *entity.Font) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.fonts[f.ID] = &cp
	return nil
}

func (r *fakeFontRepo) GetByID(_ context.Context, id string) (*entity.Font, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.fonts[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeFontRepo) List(context.Context) ([]*entity.Font, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Font, 0, len(r.fonts))
	for _, f := range r.fonts {
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeFontRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.fonts, id)
	return nil
}

// ── productos ────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu       sync.Mutex
	products []*entity.Product
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.products {
		if p.SKU != nil && x.SKU != nil && *x.SKU == *p.SKU {
			return errors.Join(domain.ErrDuplicate, errors.New("products_sku_key"))
		}
	}
	cp := *p
	r.products = append(r.products, &cp)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.products {
		if x.ID == id {
			cp := *x
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.products {
		if x.SKU != nil && *x.SKU == sku {
			cp := *x
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.products {
		if x.ID == p.ID {
			cp := *p
			r.products[i] = &cp
		}
	}
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var match []*entity.Product
	for _, x := range r.products {
		if f.Search == "" || strings.Contains(strings.ToLower(x.Name), strings.ToLower(f.Search)) {
			match = append(match, x)
		}
	}
	total := len(match)
	start := f.Offset()
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return match[start:end], total, nil
}

func (r *fakeProductRepo) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.products {
		if x.ID == id {
			x.Active = false
		}
	}
	return nil
}

// ── clientes ─────────────────────────────────────────────────────────────────

type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[string]entity.Client
}

func newFakeClientRepo() *fakeClientRepo { return &fakeClientRepo{clients: map[string]entity.Client{}} }

func (r *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.clients {
		if x.CNPJ == c.CNPJ {
			return errors.Join(domain.ErrDuplicate, errors.New("clients_cnpj_key"))
		}
	}
	cp := *c
	cp.Contacts = nil
	r.clients[c.ID] = cp
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	c.Contacts = append([]entity.ClientContact(nil), c.Contacts...)
	return &c, nil
}

func (r *fakeClientRepo) GetByCNPJ(_ context.Context, cnpj string) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.CNPJ == cnpj {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	cp.Contacts = r.clients[c.ID].Contacts
	r.clients[c.ID] = cp
	return nil
}

func (r *fakeClientRepo) ReplaceContacts(_ context.Context, clientID string, contacts []entity.ClientContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.clients[clientID]
	c.Contacts = append([]entity.ClientContact(nil), contacts...)
	r.clients[clientID] = c
	return nil
}

func (r *fakeClientRepo) List(context.Context, repository.ClientFilter) ([]*entity.Client, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Client, 0, len(r.clients))
	for _, c := range r.clients {
		cp := c
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
	return nil
}

// fakeTx ejecuta fn directamente sobre los repositorios en memoria.
type fakeTx struct {
	clients *fakeClientRepo
	gallery *fakeGalleryRepo
}

func (t fakeTx) RunClient(_ context.Context, fn func(repository.ClientRepository) error) error {
	return fn(t.clients)
}

func (t fakeTx) RunGallery(_ context.Context, fn func(repository.GalleryRepository) error) error {
	return fn(t.gallery)
}

// ── galería ──────────────────────────────────────────────────────────────────

type fakeGalleryRepo struct {
	mu      sync.Mutex
	images  []*entity.GalleryImage
	folders map[string]*entity.GalleryFolder
}

func newFakeGalleryRepo() *fakeGalleryRepo {
	return &fakeGalleryRepo{folders: map[string]*entity.GalleryFolder{}}
}

func (r *fakeGalleryRepo) CreateImage(_ context.Context, img *entity.GalleryImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *img
	r.images = append(r.images, &cp)
	return nil
}

func (r *fakeGalleryRepo) GetImage(_ context.Context, id string) (*entity.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, img := range r.images {
		if img.ID == id {
			cp := *img
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeGalleryRepo) ListImages(context.Context, repository.GalleryFilter) ([]*entity.GalleryImage, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]*entity.GalleryImage(nil), r.images...)
	return out, len(out), nil
}

func (r *fakeGalleryRepo) DeleteImage(_ context.Context, id string) error {
	_, err := r.DeleteImages(context.Background(), []string{id})
	return err
}

func (r *fakeGalleryRepo) DeleteImages(_ context.Context, ids []string) ([]*entity.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted []*entity.GalleryImage
	kept := r.images[:0]
	for _, img := range r.images {
		if slices.Contains(ids, img.ID) {
			deleted = append(deleted, img)
			continue
		}
		kept = append(kept, img)
	}
	r.images = kept
	return deleted, nil
}

func (r *fakeGalleryRepo) MoveImages(_ context.Context, ids []string, folderID *string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, img := range r.images {
		if slices.Contains(ids, img.ID) {
			img.FolderID = folderID
			n++
		}
	}
	return n, nil
}

func (r *fakeGalleryRepo) CreateFolder(_ context.Context, f *entity.GalleryFolder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.folders[f.ID] = &cp
	return nil
}

func (r *fakeGalleryRepo) GetFolder(_ context.Context, id string) (*entity.GalleryFolder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.folders[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeGalleryRepo) UpdateFolder(ctx context.Context, f *entity.GalleryFolder) error {
	return r.CreateFolder(ctx, f)
}

func (r *fakeGalleryRepo) ListFolders(context.Context) ([]*entity.GalleryFolder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.GalleryFolder, 0, len(r.folders))
	for _, f := range r.folders {
		cp := *f
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeGalleryRepo) DetachFolder(_ context.Context, folderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, img := range r.images {
		if img.FolderID != nil && *img.FolderID == folderID {
			img.FolderID = nil
		}
	}
	return nil
}

func (r *fakeGalleryRepo) DeleteFolder(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.folders, id)
	return nil
}

// ── encartes ─────────────────────────────────────────────────────────────────

type fakeFlyerRepo struct {
	mu     sync.Mutex
	flyers map[string]entity.Flyer
}

func newFakeFlyerRepo() *fakeFlyerRepo { return &fakeFlyerRepo{flyers: map[string]entity.Flyer{}} }

func (r *fakeFlyerRepo) Create(_ context.Context, f *entity.Flyer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flyers[f.ID] = *f
	return nil
}

func (r *fakeFlyerRepo) GetByID(_ context.Context, id string) (*entity.Flyer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flyers[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r *fakeFlyerRepo) Update(ctx context.Context, f *entity.Flyer) error { return r.Create(ctx, f) }

func (r *fakeFlyerRepo) List(context.Context, repository.FlyerFilter) ([]*entity.Flyer, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Flyer, 0, len(r.flyers))
	for _, f := range r.flyers {
		cp := f
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeFlyerRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Flyer, error) {
	list, _, err := r.List(ctx, repository.FlyerFilter{})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, err
}

func (r *fakeFlyerRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flyers, id)
	return nil
}

// fakeExporter devuelve un PDF fijo y recuerda las opciones recibidas.
type fakeExporter struct {
	mu   sync.Mutex
	opts []ports.ExportOptions
}

func (e *fakeExporter) ExportPDF(_ context.Context, _ *entity.Flyer, opts ports.ExportOptions) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts = append(e.opts, opts)
	return []byte("%PDF-1.7 encarte"), nil
}

// ── app ──────────────────────────────────────────────────────────────────────

type testEnv struct {
	app      *fiber.App
	fs       afero.Fs
	users    *fakeUsers
	fonts    *fakeFontRepo
	products *fakeProductRepo
	clients  *fakeClientRepo
	gallery  *fakeGalleryRepo
	flyers   *fakeFlyerRepo
	exporter *fakeExporter
}

// newTestApp arma el router completo con repositorios en memoria.
func newTestApp(t *testing.T) *testEnv {
	t.Helper()
	fs := afero.NewMemMapFs()
	store, err := storage.NewLocalStorage(fs, "/uploads", testCDN)
	require.NoError(t, err)

	env := &testEnv{
		fs:       fs,
		users:    newFakeUsers(),
		fonts:    newFakeFontRepo(),
		products: &fakeProductRepo{},
		clients:  newFakeClientRepo(),
		gallery:  newFakeGalleryRepo(),
		flyers:   newFakeFlyerRepo(),
		exporter: &fakeExporter{},
	}
	tx := fakeTx{clients: env.clients, gallery: env.gallery}
	env.app = fiber.New(fiber.Config{
		ErrorHandler: apphttp.ErrorHandler(false, logger.Nop()),
		BodyLimit:    1024 * 1024,
	})
	apphttp.Router(env.app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(env.users, nopMailer{}, store, auth.JWTConfig{
			Secret:           testJWTSecret,
			ExpiresIn:        time.Hour,
			RefreshExpiresIn: 24 * time.Hour,
			Issuer:           testIssuer,
		}, logger.Nop()),
		ClientUC:  usecase.NewClientUseCase(env.clients, tx, store),
		ProductUC: usecase.NewProductUseCase(env.products, store),
		FlyerUC:   usecase.NewFlyerUseCase(env.flyers, store, env.exporter, "https://app.encartes.com.br", nil),
		FontUC:    usecase.NewFontUseCase(env.fonts, store),
		UploadUC:  usecase.NewUploadUseCase(store),
		GalleryUC: usecase.NewGalleryUseCase(env.gallery, tx, store),
		HealthUC:  usecase.NewHealthUseCase(fakePinger{}, "test"),
		Users:     env.users,
		JWTSecret: testJWTSecret,
	})
	return env
}

func bearer(t *testing.T) string {
	t.Helper()
	tok, err := jwt.Generate(testJWTSecret, testUserID, testEmail, entity.RoleAdmin, testIssuer, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

type multipartFile struct {
	field, name, content string
}

// multipartBody arma un cuerpo multipart/form-data con archivos y campos.
func multipartBody(t *testing.T, files []multipartFile, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, auth string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func doMultipart(t *testing.T, app *fiber.App, path string, body io.Reader, contentType, auth string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// envelope cuerpo genérico de respuesta para inspeccionar en tests.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}
