package entity

import (
	"encoding/json"
	"time"
)

// Tipos de template.
const (
	TemplateHeader = "header"
	TemplateFooter = "footer"
	TemplateFull   = "full"
)

// Template layout reutilizable de cabecera, pie o página completa.
type Template struct {
	ID            string
	Name          string
	Type          string
	ThumbnailURL  string
	IsDefault     bool
	Configuration json.RawMessage
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
