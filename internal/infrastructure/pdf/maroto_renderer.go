// Package pdf genera las representaciones imprimibles con Maroto v2.
//
// Layout común de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del documento  │  N° + Fecha                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: cliente / estado                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Recurso | Unidad | Cantidad                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR (solo despachos) + firmas                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

var _ usecase.DocumentRenderer = (*MarotoRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoRenderer implementa usecase.DocumentRenderer usando Maroto v2.
type MarotoRenderer struct {
	company string
}

// NewMarotoRenderer construye el generador; company se imprime como autor y en la cabecera.
func NewMarotoRenderer(company string) *MarotoRenderer {
	return &MarotoRenderer{company: company}
}

// RenderReceipt PDF de un documento de ingreso.
func (g *MarotoRenderer) RenderReceipt(_ context.Context, doc *dto.ReceiptResponse) ([]byte, error) {
	m := g.newDocument("Documento de ingreso " + doc.Number)

	m.AddRows(headerRow(g.company, "DOCUMENTO DE INGRESO", doc.Number, doc.Date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow("ESTADO", statusLabel(doc.Status), fmt.Sprintf("Líneas: %d", len(doc.Resources))))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(doc.Resources) == 0 {
		m.AddRows(emptyRow("El documento no tiene recursos."))
	}
	m.AddRows(lineRows(doc.Resources)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(signatureRow("Recibido por"))

	return generate(m)
}

// RenderShipment remisión de un documento de despacho, con QR del número para la verificación en portería.
func (g *MarotoRenderer) RenderShipment(_ context.Context, doc *dto.ShipmentResponse) ([]byte, error) {
	m := g.newDocument("Documento de despacho " + doc.Number)

	m.AddRows(headerRow(g.company, "REMISIÓN DE DESPACHO", doc.Number, doc.Date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow("CLIENTE", doc.ClientName, "Estado: "+documentStatusLabel(doc.DocumentStatus)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(lineRows(doc.Resources)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(40).Add(
		col.New(4).Add(code.NewQr(fmt.Sprintf("DESPACHO:%d:%s", doc.ID, doc.Number), props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Escanee el código para verificar el despacho.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
		),
	))
	m.AddRows(signatureRow("Entregado a"))

	return generate(m)
}

// RenderBalance reporte del saldo por recurso y unidad.
func (g *MarotoRenderer) RenderBalance(_ context.Context, items []dto.BalanceResponse, generatedAt time.Time) ([]byte, error) {
	m := g.newDocument("Saldo de bodega")

	m.AddRows(headerRow(g.company, "SALDO DE BODEGA", fmt.Sprintf("%d registros", len(items)), generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(items) == 0 {
		m.AddRows(emptyRow("No hay saldos para los filtros indicados."))
	}
	for _, b := range items {
		m.AddRows(quantityRow(b.ResourceName, b.UnitName, b.Quantity.String()))
	}
	return generate(m)
}

func (g *MarotoRenderer) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.company, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y tipo + número + fecha (der).
func headerRow(company, kind, number string, date time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(kind, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func infoRow(label, value, detail string) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(value, "-"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(detail, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Recurso", 6, align.Left),
		h("Unidad", 3, align.Left),
		h("Cantidad", 3, align.Right),
	)
}

func lineRows(lines []dto.DocumentLineResponse) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, quantityRow(l.ResourceName, l.UnitName, l.Quantity.String()))
	}
	return result
}

func quantityRow(resource, unit, qty string) core.Row {
	return row.New(7).Add(
		col.New(6).Add(text.New(resource, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(3).Add(text.New(unit, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(3).Add(text.New(qty, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func emptyRow(msg string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
	))
}

func signatureRow(label string) core.Row {
	return row.New(20).Add(
		col.New(6),
		col.New(6).Add(
			text.New("______________________________", props.Text{Size: 9, Align: align.Center, Top: 10}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 15, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func statusLabel(s string) string {
	if s == "archived" {
		return "Archivado"
	}
	return "Activo"
}

func documentStatusLabel(s string) string {
	if s == "approved" {
		return "Aprobado"
	}
	return "Borrador"
}
