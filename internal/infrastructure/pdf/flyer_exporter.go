// Package pdf renderiza encartes a PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del encarte  │  Cliente + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Produto | Unidade | De | Por                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR al encarte + leyenda                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/encartes-api/internal/application/ports"
	"github.com/jhoicas/encartes-api/internal/domain/entity"
)

var _ ports.FlyerExporter = (*FlyerExporter)(nil)

var (
	colorPrimary = &props.Color{Red: 220, Green: 38, Blue: 38}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var statusLabels = map[string]string{
	entity.FlyerStatusDraft: "Rascunho",
}

// flyerProduct es lo que el exportador lee de configuration.products.
// Los precios aceptan número o string.
type flyerProduct struct {
	Name          string           `json:"name"`
	Unit          string           `json:"unit"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
}

// FlyerExporter implementa ports.FlyerExporter.
type FlyerExporter struct {
	now func() time.Time
}

// NewFlyerExporter construye el exportador.
func NewFlyerExporter() *FlyerExporter { return &FlyerExporter{now: time.Now} }

// ExportPDF genera la hoja del encarte. low y medium comprimen la página; high no.
func (e *FlyerExporter) ExportPDF(ctx context.Context, flyer *entity.Flyer, opts ports.ExportOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithCompression(opts.Quality != ports.QualityHigh).
		WithTitle(flyer.Name, true).
		WithAuthor("Sistema de Encartes", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(flyer, e.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	products := parseProducts(flyer.Configuration)
	if len(products) > 0 {
		m.AddRows(tableHeaderRow())
		m.AddRows(productRows(products)...)
	} else {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Nenhum produto neste encarte.", props.Text{Size: 9, Top: 4, Align: align.Center, Color: colorGray}),
		)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(opts.ShareURL)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(flyer *entity.Flyer, at time.Time) core.Row {
	client := "Sem cliente"
	if flyer.ClientName != nil && *flyer.ClientName != "" {
		client = *flyer.ClientName
	}
	return row.New(18).Add(
		col.New(8).Add(
			text.New(flyer.Name, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New("Status: "+statusLabel(flyer.Status), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(client, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1}),
			text.New("Gerado em "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 6, align.Left),
		h("Unidade", 2, align.Center),
		h("De", 2, align.Right),
		h("Por", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func productRows(products []flyerProduct) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		from := ""
		if p.OriginalPrice != nil {
			from = formatBRL(*p.OriginalPrice)
		}
		to := "-"
		if p.Price != nil {
			to = formatBRL(*p.Price)
		}
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(p.Unit, props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(2).Add(text.New(from, props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1, Color: colorGray})),
			col.New(2).Add(text.New(to, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

func footerRows(shareURL string) []core.Row {
	if shareURL == "" {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sistema de Encartes", props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 2}),
		))}
	}
	return []core.Row{row.New(40).Add(
		col.New(3).Add(code.NewQr(shareURL, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Escaneie o QR code para abrir este encarte.", props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New(shareURL, props.Text{Size: 7, Top: 12, Left: 3, Color: colorPrimary}),
		),
	)}
}

// parseProducts lee configuration.products; una configuración sin productos o con otro formato da lista vacía.
func parseProducts(raw json.RawMessage) []flyerProduct {
	if len(raw) == 0 {
		return nil
	}
	var cfg struct {
		Products []flyerProduct `json:"products"`
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil
	}
	out := cfg.Products[:0]
	for _, p := range cfg.Products {
		if strings.TrimSpace(p.Name) != "" {
			out = append(out, p)
		}
	}
	return out
}

func statusLabel(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return status
}

// formatBRL formatea en reales: 1234.5 -> "R$ 1.234,50".
func formatBRL(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := "R$ " + thousands(intPart) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// thousands inserta puntos de miles: "1000000" -> "1.000.000".
func thousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
