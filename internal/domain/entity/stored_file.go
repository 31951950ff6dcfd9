package entity

// StoredFile archivo ya persistido en el storage.
type StoredFile struct {
	ID           string // nombre generado: {uuid}{ext}
	OriginalName string
	Folder       string
	Path         string // ruta en disco
	URL          string // URL pública
	MimeType     string
	Size         int64
}
