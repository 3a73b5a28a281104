// Package pdf genera el plan de reposición en PDF con Maroto v2.
//
// Layout de la página A4 apaisada:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período          │  Fecha de generación     │
//	│  ──────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / críticos / a reponer                    │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: # | Código | Producto | Disp. | Punto | Cobertura ... │
//	│  ──────────────────────────────────────────────────────────  │
//	│  FOOTER: página y total de filas                              │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Tablero-api/internal/application/dto"
	"github.com/jhoicas/Tablero-api/internal/application/inventory"
	"github.com/jhoicas/Tablero-api/pkg/format"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorReorder  = &props.Color{Red: 200, Green: 120, Blue: 0}
)

var _ inventory.ReorderPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa inventory.ReorderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{now: time.Now}
}

// GenerateReorderPlan genera el PDF de una página del plan y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReorderPlan(plan *dto.ReorderPlanDTO) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("pdf: plan vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Plan de reposición", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(plan, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(plan))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(plan.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(plan))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(plan *dto.ReorderPlanDTO, now time.Time) core.Row {
	period := "Consumo: todo el historial"
	if plan.Period.StartDate != nil {
		period = fmt.Sprintf("Consumo: %s a %s", *plan.Period.StartDate, plan.Period.EndDate)
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New("PLAN DE REPOSICIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+now.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func summaryRow(plan *dto.ReorderPlanDTO) core.Row {
	var critical, reorder int
	for _, it := range plan.Rows {
		switch it.Status {
		case dto.ReorderStatusCritical:
			critical++
		case dto.ReorderStatusReorder:
			reorder++
		}
	}
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: c, Top: 5}),
		)
	}
	return row.New(13).Add(
		cell("Productos en el plan", format.Number(plan.TotalCount, 0), colorPrimary),
		cell("Sin existencia", format.Number(critical, 0), colorCritical),
		cell("Bajo punto de reorden", format.Number(reorder, 0), colorReorder),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Código", 1, align.Left),
		h("Producto", 3, align.Left),
		h("Disponible", 1, align.Right),
		h("Punto", 1, align.Right),
		h("Uso/día", 1, align.Right),
		h("Cobertura", 1, align.Right),
		h("Pedir", 1, align.Right),
		h("Estado", 2, align.Center),
	)
}

func tableDetailRows(items []dto.ReorderItemDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		cover := format.NotAvailable
		if it.DaysOfCover != nil {
			cover = format.Number(*it.DaysOfCover, 1) + " d"
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		result = append(result, row.New(7).Add(
			cell(fmt.Sprint(it.Priority), 1, align.Center),
			cell(it.ProductCode, 1, align.Left),
			cell(it.ProductName, 3, align.Left),
			cell(format.Number(it.Available, 0), 1, align.Right),
			cell(format.Number(it.ReorderPoint, 0), 1, align.Right),
			cell(format.Number(it.AvgDailyUsage, 2), 1, align.Right),
			cell(cover, 1, align.Right),
			cell(format.Number(it.SuggestedOrderQty, 0), 1, align.Right),
			col.New(2).Add(text.New(it.Status, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: statusColor(it.Status),
			})),
		))
	}
	return result
}

func footerRow(plan *dto.ReorderPlanDTO) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Página %d · %d filas por página · %d productos en total",
				plan.Page, plan.PageSize, plan.TotalCount),
			props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 2},
		)),
	)
}

func statusColor(status string) *props.Color {
	switch status {
	case dto.ReorderStatusCritical:
		return colorCritical
	case dto.ReorderStatusReorder:
		return colorReorder
	default:
		return colorGray
	}
}
