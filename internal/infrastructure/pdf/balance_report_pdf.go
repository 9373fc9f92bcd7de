// Package pdf genera el reporte de saldos por producto y ubicación en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Ubicación | Cantidad                      │
//	│         (subtotal al cerrar cada producto)                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: líneas y productos con saldo                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/stockmaster/internal/application/analytics"
	"github.com/jhoicas/stockmaster/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ analytics.BalanceReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa analytics.BalanceReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	title string
}

// NewMarotoPDFGenerator construye el generador. title va en el encabezado y en los metadatos.
func NewMarotoPDFGenerator(title string) *MarotoPDFGenerator {
	if title == "" {
		title = "Reporte de saldos"
	}
	return &MarotoPDFGenerator{title: title}
}

// GenerateBalanceReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateBalanceReportPDF(ctx context.Context, report *dto.BalanceReportResponse) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(balanceRows(report.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(report.Lines))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoPDFGenerator) headerRow(report *dto.BalanceReportResponse) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Producto", 5, align.Left),
		h("Ubicación", 5, align.Left),
		h("Cantidad", 2, align.Right),
	)
}

// balanceRows una fila por saldo y un subtotal al cambiar de producto (las líneas vienen
// ordenadas por producto).
func balanceRows(lines []dto.BalanceLineDTO) []core.Row {
	if len(lines) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin saldos distintos de cero", props.Text{Size: 9, Align: align.Center, Top: 2, Color: colorGray}),
		))}
	}
	out := make([]core.Row, 0, len(lines)+len(lines)/2)
	subtotal := 0
	for i, l := range lines {
		out = append(out, quantityRow(l.ProductID, l.LocationID, l.Quantity, false))
		subtotal += l.Quantity
		if i == len(lines)-1 || lines[i+1].ProductID != l.ProductID {
			out = append(out, quantityRow("", "Total "+l.ProductID, subtotal, true))
			subtotal = 0
		}
	}
	return out
}

func quantityRow(product, location string, qty int, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	qtyProps := props.Text{Size: 8, Align: align.Right, Top: 1, Style: style}
	if qty < 0 {
		qtyProps.Color = colorRed
	}
	return row.New(6).Add(
		col.New(5).Add(text.New(product, props.Text{Size: 8, Top: 1, Style: style})),
		col.New(5).Add(text.New(location, props.Text{Size: 8, Top: 1, Style: style})),
		col.New(2).Add(text.New(strconv.Itoa(qty), qtyProps)),
	)
}

func summaryRow(lines []dto.BalanceLineDTO) core.Row {
	products := 0
	for i, l := range lines {
		if i == 0 || lines[i-1].ProductID != l.ProductID {
			products++
		}
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d saldos · %d productos con existencias registradas", len(lines), products), props.Text{
			Size: 8, Top: 2, Color: colorGray,
		}),
	))
}
