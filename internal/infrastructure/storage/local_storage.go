// Package storage guarda los archivos subidos en disco y los expone por CDN_URL.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/jhoicas/encartes-api/internal/application/ports"
	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/pkg/logger"
	"github.com/jhoicas/encartes-api/pkg/textnorm"
)

var _ ports.FileStorage = (*LocalStorage)(nil)

var mimeTypes = map[string]string{
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".png":   "image/png",
	".gif":   "image/gif",
	".webp":  "image/webp",
	".pdf":   "application/pdf",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".woff":  "font/woff",
	".woff2": "font/woff2",
}

// MimeType resuelve el tipo por extensión; desconocidas -> application/octet-stream.
func MimeType(filename string) string {
	if m, ok := mimeTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return m
	}
	return "application/octet-stream"
}

// UploadObserver recibe cada archivo guardado (métricas).
type UploadObserver func(folder string, size int64)

// LocalStorage implementa ports.FileStorage sobre un afero.Fs (disco en producción, memoria en tests).
type LocalStorage struct {
	fs      afero.Fs
	root    string
	baseURL string
	log     *logger.Logger
	observe UploadObserver
}

// Option configura LocalStorage.
type Option func(*LocalStorage)

// WithObserver registra un observador de subidas.
func WithObserver(fn UploadObserver) Option {
	return func(s *LocalStorage) { s.observe = fn }
}

// WithLogger usa log para avisos de borrado.
func WithLogger(log *logger.Logger) Option {
	return func(s *LocalStorage) { s.log = log }
}

// NewLocalStorage crea el árbol de carpetas bajo root. cdnURL es el prefijo público de las URLs.
func NewLocalStorage(fs afero.Fs, root, cdnURL string, opts ...Option) (*LocalStorage, error) {
	s := &LocalStorage{
		fs:      fs,
		root:    filepath.Clean(root),
		baseURL: strings.TrimRight(cdnURL, "/"),
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	folders := append([]string{ports.FolderGallery, ports.FolderExports}, ports.UploadFolders...)
	for _, f := range folders {
		if err := s.fs.MkdirAll(filepath.Join(s.root, f), 0o755); err != nil {
			return nil, fmt.Errorf("crear carpeta %s: %w", f, err)
		}
	}
	return s, nil
}

// Save guarda el archivo como {folder}/{uuid}{ext}. OriginalName conserva el
// nombre enviado por el cliente tal cual.
func (s *LocalStorage) Save(ctx context.Context, folder string, file ports.FileUpload) (*entity.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	stored, err := s.write(folder, name, file.Content)
	if err != nil {
		return nil, err
	}
	stored.OriginalName = file.Filename
	return stored, nil
}

// SaveBytes guarda contenido generado con un nombre fijo (sobrescribe si existe).
func (s *LocalStorage) SaveBytes(ctx context.Context, folder, name string, data []byte) (*entity.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = textnorm.SafeFilename(name)
	stored, err := s.write(folder, name, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	stored.OriginalName = name
	return stored, nil
}

func (s *LocalStorage) write(folder, name string, content io.Reader) (*entity.StoredFile, error) {
	if !validFolder(folder) {
		return nil, fmt.Errorf("carpeta inválida: %q", folder)
	}
	dir := filepath.Join(s.root, folder)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear carpeta %s: %w", folder, err)
	}
	p := filepath.Join(dir, name)
	f, err := s.fs.Create(p)
	if err != nil {
		return nil, fmt.Errorf("crear archivo: %w", err)
	}
	n, err := io.Copy(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = s.fs.Remove(p)
		return nil, fmt.Errorf("escribir archivo: %w", err)
	}
	if s.observe != nil {
		s.observe(folder, n)
	}
	return &entity.StoredFile{
		ID:       name,
		Folder:   folder,
		Path:     p,
		URL:      s.baseURL + "/" + folder + "/" + name,
		MimeType: MimeType(name),
		Size:     n,
	}, nil
}

// Delete borra el archivo de una URL pública propia. Los errores solo se registran.
func (s *LocalStorage) Delete(_ context.Context, url string) {
	rel, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || rel == "" {
		return
	}
	rel = path.Clean(rel)
	if strings.HasPrefix(rel, "..") || path.IsAbs(rel) {
		return
	}
	if err := s.fs.Remove(filepath.Join(s.root, filepath.FromSlash(rel))); err != nil {
		s.log.Debug().Err(err).Str("url", url).Msg("no se pudo borrar el archivo")
	}
}

func validFolder(folder string) bool {
	return folder != "" && !strings.ContainsAny(folder, `/\`) && folder != "." && folder != ".."
}
