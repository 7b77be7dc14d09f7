// Package pdf genera el reporte imprimible del kardex de una variante:
// encabezado con producto y período, tabla de movimientos con saldo corrido,
// resumen valorizado y el resultado de validación del libro.
package pdf

import (
	"fmt"
	"time"

	"github.com/google/uuid"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// es-CO: separador de miles con punto, decimales con coma.
var amountPrinter = message.NewPrinter(language.MustParse("es-CO"))

// ── Generator ─────────────────────────────────────────────────────────────────

// KardexReportGenerator genera el PDF del kardex de una variante con Maroto v2.
type KardexReportGenerator struct{}

// NewKardexReportGenerator construye el generador.
func NewKardexReportGenerator() *KardexReportGenerator { return &KardexReportGenerator{} }

// GenerateVariantReport genera el PDF y devuelve sus bytes. La vista ya viene
// derivada por el caso de uso; aquí solo se diagrama.
func (g *KardexReportGenerator) GenerateVariantReport(view dto.VariantViewDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(view))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(view))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range movementRows(view.Movements) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(valuationRows(view)...)

	if !view.ValidationSkipped {
		m.AddRows(line.NewRow(3))
		m.AddRows(validationRows(view)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(view dto.VariantViewDTO) core.Row {
	title := view.Name
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("SKU: "+view.SKU, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("KARDEX DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(time.Now().Format("02/01/2006"), props.Text{Size: 9, Align: align.Right, Top: 8}),
		),
	)
}

func summaryRow(view dto.VariantViewDTO) core.Row {
	s := view.Summary
	initialLabel := "Stock inicial"
	if view.PeriodAdjusted {
		initialLabel = "Stock inicial del período"
	}
	return row.New(12).Add(
		summaryCell(3, initialLabel, amountPrinter.Sprintf("%d", view.EffectiveInitialStock)),
		summaryCell(2, "Entradas", amountPrinter.Sprintf("%d", s.TotalIn)),
		summaryCell(2, "Salidas", amountPrinter.Sprintf("%d", s.TotalOut)),
		summaryCell(2, "Stock final", amountPrinter.Sprintf("%d", s.FinalStock)),
		summaryCell(3, "Costo promedio", formatAmount(s.AvgUnitCost)),
	)
}

func summaryCell(size int, label, value string) core.Col {
	return col.New(size).Add(
		text.New(label, props.Text{Size: 7, Color: colorGray}),
		text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 4}),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, al align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: al, Color: colorPrimary,
		}))
	}
	return row.New(7).Add(
		header(2, "Fecha", align.Left),
		header(2, "Tipo", align.Left),
		header(2, "Entrada", align.Right),
		header(2, "Salida", align.Right),
		header(2, "Saldo", align.Right),
		header(2, "Valor", align.Right),
	)
}

func movementRows(movements []entity.KardexMovement) []core.Row {
	rows := make([]core.Row, 0, len(movements))
	for _, m := range movements {
		value := "—"
		if m.TotalCost != nil {
			value = formatAmount(*m.TotalCost)
		}
		cell := func(size int, s string, al align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: al}))
		}
		rows = append(rows, row.New(6).Add(
			cell(2, m.Date.Format("02/01/2006"), align.Left),
			cell(2, m.Type, align.Left),
			cell(2, amountPrinter.Sprintf("%d", m.In), align.Right),
			cell(2, amountPrinter.Sprintf("%d", m.Out), align.Right),
			cell(2, amountPrinter.Sprintf("%d", m.FinalStock), align.Right),
			cell(2, value, align.Right),
		))
	}
	return rows
}

func valuationRows(view dto.VariantViewDTO) []core.Row {
	label := "Valorización"
	if view.ValueIsOnTheFly {
		label = "Valorización (calculada al vuelo, no validada contra el libro)"
	}
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary}),
		)),
	}
	if view.ResolvedValue != nil && view.ResolvedValue.TotalValue != nil {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(
				fmt.Sprintf("%s %s (%s)", view.CurrencySymbol,
					formatAmount(*view.ResolvedValue.TotalValue), view.ResolvedValue.Currency.Code),
				props.Text{Size: 10, Align: align.Right, Style: fontstyle.Bold},
			),
		)))
	}
	rows = append(rows, row.New(6).Add(col.New(12).Add(
		text.New("Ventas netas del período: "+view.CurrencySymbol+" "+formatAmount(view.NetSales),
			props.Text{Size: 9, Align: align.Right}),
	)))
	return rows
}

func validationRows(view dto.VariantViewDTO) []core.Row {
	v := view.Validation
	status := "Kardex consistente"
	color := colorPrimary
	if !v.IsValid {
		status = fmt.Sprintf("Kardex con %d inconsistencia(s)", len(v.Issues))
		color = colorAlert
	}
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(status, props.Text{Style: fontstyle.Bold, Size: 9, Color: color}),
		)),
	}
	for _, issue := range v.Issues {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("[%s] %s", issue.Code, issue.Message),
				props.Text{Size: 8, Color: colorAlert}),
		)))
	}
	for _, w := range v.Warnings {
		msg := w.Message
		if w.Suggestion != "" {
			msg += " — " + w.Suggestion
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(msg, props.Text{Size: 8, Color: colorGray}),
		)))
	}
	return rows
}

func footerRow() core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Reporte "+uuid.New().String()+" · generado "+time.Now().Format(time.RFC3339),
			props.Text{Size: 7, Color: colorGray, Align: align.Center}),
	))
}

// formatAmount formatea un monto para el reporte con convenciones es-CO.
// Solo presentación: el redondeo a dos decimales no toca los valores del motor.
func formatAmount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return amountPrinter.Sprintf("%.2f", f)
}
