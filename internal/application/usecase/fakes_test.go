package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/encartes-api/internal/application/ports"
	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

// ── storage ───────────────────────────────────────────────────────────────────

type fakeStorage struct {
	mu      sync.Mutex
	n       int
	files   map[string][]byte // url -> contenido
	deleted []string
	failOn  string
}

func newFakeStorage() *fakeStorage { return &fakeStorage{files: map[string][]byte{}} }

func (s *fakeStorage) Save(_ context.Context, folder string, f ports.FileUpload) (*entity.StoredFile, error) {
	if s.failOn != "" && s.failOn == f.Filename {
		return nil, errors.New("disco lleno")
	}
	data, err := io.ReadAll(f.Content)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	name := fmt.Sprintf("f%d%s", s.n, strings.ToLower(extOf(f.Filename)))
	url := "http://cdn.test/uploads/" + folder + "/" + name
	s.files[url] = data
	return &entity.StoredFile{
		ID: name, OriginalName: f.Filename, Folder: folder, URL: url,
		MimeType: "image/png", Size: int64(len(data)),
	}, nil
}

func (s *fakeStorage) SaveBytes(_ context.Context, folder, name string, data []byte) (*entity.StoredFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "http://cdn.test/uploads/" + folder + "/" + name
	s.files[url] = data
	return &entity.StoredFile{ID: name, OriginalName: name, Folder: folder, URL: url, Size: int64(len(data))}, nil
}

func (s *fakeStorage) Delete(_ context.Context, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, url)
	s.deleted = append(s.deleted, url)
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

func upload(name, content string) ports.FileUpload {
	return ports.FileUpload{Filename: name, Size: int64(len(content)), Content: strings.NewReader(content)}
}

// ── clientes ──────────────────────────────────────────────────────────────────

type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[string]entity.Client
	// failContacts simula un error dentro de la transacción
	failContacts bool
}

func newFakeClientRepo() *fakeClientRepo { return &fakeClientRepo{clients: map[string]entity.Client{}} }

func (r *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.clients {
		if x.CNPJ == c.CNPJ {
			return fmt.Errorf("insert client: %w", domain.ErrDuplicate)
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
	return &c, nil
}

func (r *fakeClientRepo) GetByCNPJ(_ context.Context, cnpj string) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.CNPJ == cnpj {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old := r.clients[c.ID]
	cp := *c
	cp.Contacts = old.Contacts
	r.clients[c.ID] = cp
	return nil
}

func (r *fakeClientRepo) ReplaceContacts(_ context.Context, clientID string, contacts []entity.ClientContact) error {
	if r.failContacts {
		return errors.New("insert contact: conexión perdida")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.clients[clientID]
	c.Contacts = append([]entity.ClientContact(nil), contacts...)
	r.clients[clientID] = c
	return nil
}

func (r *fakeClientRepo) List(_ context.Context, f repository.ClientFilter) ([]*entity.Client, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Client
	for _, c := range r.clients {
		if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) && !strings.Contains(c.CNPJ, f.Search) {
			continue
		}
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

// fakeClientTx aplica fn sobre una copia y solo la confirma si no hay error.
type fakeClientTx struct{ repo *fakeClientRepo }

func (t fakeClientTx) RunClient(ctx context.Context, fn func(repository.ClientRepository) error) error {
	t.repo.mu.Lock()
	snapshot := make(map[string]entity.Client, len(t.repo.clients))
	for k, v := range t.repo.clients {
		snapshot[k] = v
	}
	t.repo.mu.Unlock()

	if err := fn(t.repo); err != nil {
		t.repo.mu.Lock()
		t.repo.clients = snapshot
		t.repo.mu.Unlock()
		return err
	}
	return nil
}

// ── productos ─────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]entity.Product
	lastList repository.ProductFilter
}

func newFakeProductRepo() *fakeProductRepo { return &fakeProductRepo{products: map[string]entity.Product{}} }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU != nil && *p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.lastList = f
	var out []*entity.Product
	for _, p := range r.products {
		cp := p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) Deactivate(_ context.Context, id string) error {
	p := r.products[id]
	p.Active = false
	r.products[id] = p
	return nil
}

// ── usuarios ──────────────────────────────────────────────────────────────────

type fakeUserRepo struct{ users map[string]entity.User }

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[string]entity.User{}} }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByVerificationToken(context.Context, string) (*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) GetByResetToken(context.Context, string) (*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	var out []*entity.User
	for _, u := range r.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		cp := u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

// ── encartes y templates ──────────────────────────────────────────────────────

type fakeFlyerRepo struct {
	flyers    map[string]entity.Flyer
	createErr error
	updateErr error
	lastList  repository.FlyerFilter
}

func newFakeFlyerRepo() *fakeFlyerRepo { return &fakeFlyerRepo{flyers: map[string]entity.Flyer{}} }

func (r *fakeFlyerRepo) Create(_ context.Context, f *entity.Flyer) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.flyers[f.ID] = *f
	return nil
}

func (r *fakeFlyerRepo) GetByID(_ context.Context, id string) (*entity.Flyer, error) {
	f, ok := r.flyers[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r *fakeFlyerRepo) Update(_ context.Context, f *entity.Flyer) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.flyers[f.ID] = *f
	return nil
}

func (r *fakeFlyerRepo) List(_ context.Context, f repository.FlyerFilter) ([]*entity.Flyer, int, error) {
	r.lastList = f
	return nil, 0, nil
}

func (r *fakeFlyerRepo) ListRecent(_ context.Context, limit int) ([]*entity.Flyer, error) {
	var out []*entity.Flyer
	for _, f := range r.flyers {
		cp := f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeFlyerRepo) Delete(_ context.Context, id string) error {
	delete(r.flyers, id)
	return nil
}

type fakeTemplateRepo struct {
	templates map[string]entity.Template
	createErr error
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: map[string]entity.Template{}}
}

func (r *fakeTemplateRepo) Create(_ context.Context, t *entity.Template) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.templates[t.ID] = *t
	return nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id string) (*entity.Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, t *entity.Template) error {
	r.templates[t.ID] = *t
	return nil
}

func (r *fakeTemplateRepo) List(context.Context, repository.TemplateFilter) ([]*entity.Template, int, error) {
	return nil, 0, nil
}

func (r *fakeTemplateRepo) ListRecent(context.Context, int) ([]*entity.Template, error) {
	return nil, nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id string) error {
	delete(r.templates, id)
	return nil
}

// ── fuentes ───────────────────────────────────────────────────────────────────

type fakeFontRepo struct{ fonts map[string]entity.Font }

func newFakeFontRepo() *fakeFontRepo { return &fakeFontRepo{fonts: map[string]entity.Font{}} }

func (r *fakeFontRepo) Create(_ context.Context, f *entity.Font) error {
	r.fonts[f.ID] = *f
	return nil
}

func (r *fakeFontRepo) GetByID(_ context.Context, id string) (*entity.Font, error) {
	f, ok := r.fonts[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r *fakeFontRepo) List(context.Context) ([]*entity.Font, error) {
	var out []*entity.Font
	for _, f := range r.fonts {
		cp := f
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeFontRepo) Delete(_ context.Context, id string) error {
	delete(r.fonts, id)
	return nil
}

// ── galería ───────────────────────────────────────────────────────────────────

type fakeGalleryRepo struct {
	images  map[string]entity.GalleryImage
	folders map[string]entity.GalleryFolder
	last    repository.GalleryFilter
}

func newFakeGalleryRepo() *fakeGalleryRepo {
	return &fakeGalleryRepo{images: map[string]entity.GalleryImage{}, folders: map[string]entity.GalleryFolder{}}
}

func (r *fakeGalleryRepo) CreateImage(_ context.Context, img *entity.GalleryImage) error {
	r.images[img.ID] = *img
	return nil
}

func (r *fakeGalleryRepo) GetImage(_ context.Context, id string) (*entity.GalleryImage, error) {
	img, ok := r.images[id]
	if !ok {
		return nil, nil
	}
	return &img, nil
}

func (r *fakeGalleryRepo) ListImages(_ context.Context, f repository.GalleryFilter) ([]*entity.GalleryImage, int, error) {
	r.last = f
	var out []*entity.GalleryImage
	for _, img := range r.images {
		if f.RootOnly && img.FolderID != nil {
			continue
		}
		if f.FolderID != "" && (img.FolderID == nil || *img.FolderID != f.FolderID) {
			continue
		}
		cp := img
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeGalleryRepo) DeleteImage(_ context.Context, id string) error {
	delete(r.images, id)
	return nil
}

func (r *fakeGalleryRepo) DeleteImages(_ context.Context, ids []string) ([]*entity.GalleryImage, error) {
	var out []*entity.GalleryImage
	for _, id := range ids {
		if img, ok := r.images[id]; ok {
			delete(r.images, id)
			out = append(out, &img)
		}
	}
	return out, nil
}

func (r *fakeGalleryRepo) MoveImages(_ context.Context, ids []string, folderID *string) (int, error) {
	n := 0
	for _, id := range ids {
		if img, ok := r.images[id]; ok {
			img.FolderID = folderID
			r.images[id] = img
			n++
		}
	}
	return n, nil
}

func (r *fakeGalleryRepo) CreateFolder(_ context.Context, f *entity.GalleryFolder) error {
	r.folders[f.ID] = *f
	return nil
}

func (r *fakeGalleryRepo) GetFolder(_ context.Context, id string) (*entity.GalleryFolder, error) {
	f, ok := r.folders[id]
	if !ok {
		return nil, nil
	}
	for _, img := range r.images {
		if img.FolderID != nil && *img.FolderID == id {
			f.ImageCount++
		}
	}
	return &f, nil
}

func (r *fakeGalleryRepo) UpdateFolder(_ context.Context, f *entity.GalleryFolder) error {
	r.folders[f.ID] = *f
	return nil
}

func (r *fakeGalleryRepo) ListFolders(context.Context) ([]*entity.GalleryFolder, error) {
	var out []*entity.GalleryFolder
	for id := range r.folders {
		f, _ := r.GetFolder(context.Background(), id)
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeGalleryRepo) DetachFolder(_ context.Context, folderID string) error {
	for id, img := range r.images {
		if img.FolderID != nil && *img.FolderID == folderID {
			img.FolderID = nil
			r.images[id] = img
		}
	}
	return nil
}

func (r *fakeGalleryRepo) DeleteFolder(_ context.Context, id string) error {
	delete(r.folders, id)
	return nil
}

type fakeGalleryTx struct {
	repo  *fakeGalleryRepo
	calls int
}

func (t *fakeGalleryTx) RunGallery(_ context.Context, fn func(repository.GalleryRepository) error) error {
	t.calls++
	return fn(t.repo)
}

func intPtr(v int) *int { return &v }
