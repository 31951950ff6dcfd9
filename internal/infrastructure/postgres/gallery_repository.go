package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

var _ repository.GalleryRepository = (*GalleryRepo)(nil)

const imageColumns = `id, filename, url, thumbnail_url, mime_type, size, folder_id, created_at`

const folderSelect = `
	SELECT gf.id, gf.name, gf.color, gf.created_at, gf.updated_at,
		(SELECT count(*) FROM gallery_images gi WHERE gi.folder_id = gf.id)
	FROM gallery_folders gf`

// GalleryRepo imágenes y carpetas de la galería sobre PostgreSQL (pool o tx).
type GalleryRepo struct {
	q Querier
}

// NewGalleryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGalleryRepository(q Querier) *GalleryRepo {
	return &GalleryRepo{q: q}
}

func (r *GalleryRepo) CreateImage(ctx context.Context, img *entity.GalleryImage) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO gallery_images (`+imageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		img.ID, img.Filename, img.URL, img.ThumbnailURL, img.MimeType, img.Size, img.FolderID, img.CreatedAt,
	)
	if err != nil {
		return classify("insert gallery image", err)
	}
	return nil
}

func (r *GalleryRepo) GetImage(ctx context.Context, id string) (*entity.GalleryImage, error) {
	if !validID(id) {
		return nil, nil
	}
	img, err := scanImage(r.q.QueryRow(ctx, `SELECT `+imageColumns+` FROM gallery_images WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get gallery image: %w", err)
	}
	return img, nil
}

// ListImages filtra por nombre de archivo y carpeta; RootOnly devuelve solo las de la raíz.
func (r *GalleryRepo) ListImages(ctx context.Context, f repository.GalleryFilter) ([]*entity.GalleryImage, int, error) {
	var w where
	if f.Search != "" {
		w.add(folded("filename")+" ILIKE ?", searchPattern(f.Search))
	}
	switch {
	case f.RootOnly:
		w.addRaw("folder_id IS NULL")
	case f.FolderID != "":
		w.add("folder_id::text = ?", f.FolderID)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM gallery_images`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count gallery images: %w", err)
	}

	limit, args := w.page(f.Limit, f.Offset())
	list, err := r.queryImages(ctx, `SELECT `+imageColumns+` FROM gallery_images`+w.String()+
		` ORDER BY created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *GalleryRepo) DeleteImage(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM gallery_images WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete gallery image: %w", err)
	}
	return nil
}

// DeleteImages borra en bloque y devuelve las filas borradas (para limpiar el storage).
func (r *GalleryRepo) DeleteImages(ctx context.Context, ids []string) ([]*entity.GalleryImage, error) {
	if len(ids) == 0 {
		return []*entity.GalleryImage{}, nil
	}
	return r.queryImages(ctx, `DELETE FROM gallery_images WHERE id::text = ANY($1) RETURNING `+imageColumns, ids)
}

// MoveImages cambia la carpeta de las imágenes; folderID nil las lleva a la raíz.
func (r *GalleryRepo) MoveImages(ctx context.Context, ids []string, folderID *string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `UPDATE gallery_images SET folder_id = $2 WHERE id::text = ANY($1)`, ids, folderID)
	if err != nil {
		return 0, fmt.Errorf("move gallery images: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *GalleryRepo) CreateFolder(ctx context.Context, f *entity.GalleryFolder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO gallery_folders (id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		f.ID, f.Name, f.Color, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return classify("insert gallery folder", err)
	}
	return nil
}

// GetFolder obtiene la carpeta con su conteo de imágenes.
func (r *GalleryRepo) GetFolder(ctx context.Context, id string) (*entity.GalleryFolder, error) {
	if !validID(id) {
		return nil, nil
	}
	f, err := scanFolder(r.q.QueryRow(ctx, folderSelect+` WHERE gf.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get gallery folder: %w", err)
	}
	return f, nil
}

func (r *GalleryRepo) UpdateFolder(ctx context.Context, f *entity.GalleryFolder) error {
	_, err := r.q.Exec(ctx, `UPDATE gallery_folders SET name = $2, color = $3, updated_at = $4 WHERE id = $1`,
		f.ID, f.Name, f.Color, f.UpdatedAt)
	if err != nil {
		return classify("update gallery folder", err)
	}
	return nil
}

// ListFolders devuelve todas las carpetas por nombre.
func (r *GalleryRepo) ListFolders(ctx context.Context) ([]*entity.GalleryFolder, error) {
	rows, err := r.q.Query(ctx, folderSelect+` ORDER BY gf.name`)
	if err != nil {
		return nil, fmt.Errorf("list gallery folders: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.GalleryFolder, 0)
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gallery folder: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func (r *GalleryRepo) DetachFolder(ctx context.Context, folderID string) error {
	if _, err := r.q.Exec(ctx, `UPDATE gallery_images SET folder_id = NULL WHERE folder_id = $1`, folderID); err != nil {
		return fmt.Errorf("detach gallery folder: %w", err)
	}
	return nil
}

func (r *GalleryRepo) DeleteFolder(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM gallery_folders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete gallery folder: %w", err)
	}
	return nil
}

func (r *GalleryRepo) queryImages(ctx context.Context, sql string, args ...any) ([]*entity.GalleryImage, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query gallery images: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.GalleryImage, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gallery image: %w", err)
		}
		list = append(list, img)
	}
	return list, rows.Err()
}

func scanImage(row pgx.Row) (*entity.GalleryImage, error) {
	var img entity.GalleryImage
	if err := row.Scan(&img.ID, &img.Filename, &img.URL, &img.ThumbnailURL, &img.MimeType, &img.Size,
		&img.FolderID, &img.CreatedAt); err != nil {
		return nil, err
	}
	return &img, nil
}

func scanFolder(row pgx.Row) (*entity.GalleryFolder, error) {
	var f entity.GalleryFolder
	if err := row.Scan(&f.ID, &f.Name, &f.Color, &f.CreatedAt, &f.UpdatedAt, &f.ImageCount); err != nil {
		return nil, err
	}
	return &f, nil
}
