// Package pdf genera la ficha imprimible de un producto del almacén.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del producto  │  Fecha de emisión           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Stock actual / Precio promedio / Caducidades      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Cant | P.Unit | Total | Caducidad    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/tu-usuario/inventario-hosteria/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ProductSheetGenerator genera la ficha PDF de producto usando Maroto v2.
type ProductSheetGenerator struct{}

// NewProductSheetGenerator construye el generador.
func NewProductSheetGenerator() *ProductSheetGenerator { return &ProductSheetGenerator{} }

// GenerateProductSheet genera el PDF y devuelve sus bytes.
func (g *ProductSheetGenerator) GenerateProductSheet(
	_ context.Context,
	detail *dto.ProductDetail,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de producto", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(detail))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(detail))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableMovementRows(detail.Movements) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ficha: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del producto (izq) y fecha de emisión (der).
func headerRow(detail *dto.ProductDetail) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(detail.ProductName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Ficha de producto del almacén", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Emitida: "+time.Now().Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
		),
	)
}

// summaryRow: stock actual, precio promedio y caducidades registradas.
func summaryRow(detail *dto.ProductDetail) core.Row {
	expiries := "—"
	if len(detail.ExpirationDateHistory) > 0 {
		expiries = strings.Join(detail.ExpirationDateHistory, ", ")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RESUMEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Stock actual: %s   |   Precio unit. promedio: %s   |   Caducidades: %s",
				detail.TotalQuantityInStock.String(),
				detail.AverageUnitPrice.StringFixed(2),
				expiries,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Center),
		h("Cant.", 2, align.Right),
		h("P. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
		h("Caducidad", 2, align.Center),
	)
}

// tableMovementRows: una fila por movimiento, más recientes primero.
func tableMovementRows(movements []dto.MovementItem) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, m := range movements {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				m.Date,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				movementLabel(m.MovementType),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				m.Quantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				decimalOrDash(m.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				m.TotalValue.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				stringOrDash(m.ExpiryDate),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func movementLabel(movementType string) string {
	switch movementType {
	case "load":
		return "Carga"
	case "unload":
		return "Descarga"
	default:
		return movementType
	}
}

func decimalOrDash(d *decimal.Decimal) string {
	if d == nil || d.IsZero() {
		return "—"
	}
	return d.StringFixed(2)
}

func stringOrDash(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return *s
}
