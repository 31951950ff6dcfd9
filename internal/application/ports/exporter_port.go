package ports

import (
	"context"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
)

// Calidades de exportación.
const (
	QualityLow    = "low"
	QualityMedium = "medium"
	QualityHigh   = "high"
)

// ExportOptions opciones de render del encarte.
type ExportOptions struct {
	Quality string
	// ShareURL se codifica como QR en la hoja exportada.
	ShareURL string
}

// FlyerExporter renderiza un encarte a PDF.
type FlyerExporter interface {
	ExportPDF(ctx context.Context, flyer *entity.Flyer, opts ExportOptions) ([]byte, error)
}
