// Package pdf implementa la generación del reporte de gastos en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + moneda  │  Solicitante + fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Título | Categoría | Estado | Monto          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: total / aprobado / pendientes / rechazados         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/exesman-api/internal/application/report"
	"github.com/jhoicas/exesman-api/internal/domain/entity"
	"github.com/jhoicas/exesman-api/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.ExpenseReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.ExpenseReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateExpenseReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateExpenseReport(
	_ context.Context,
	requester *entity.User,
	company *entity.Company,
	expenses []*entity.Expense,
	stats *repository.ExpenseStats,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de gastos", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(requester, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, e := range expenses {
		m.AddRows(expenseRow(e))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(company, stats)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF del reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(requester *entity.User, company *entity.Company) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
			text.New("Moneda: "+company.Currency, props.Text{
				Top: 7, Size: 8, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Reporte de gastos", props.Text{
				Size: 11, Style: fontstyle.Bold, Align: align.Right,
			}),
			text.New(requester.FullName+" · "+time.Now().Format("2006-01-02"), props.Text{
				Top: 6, Size: 8, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary}
	return row.New(6).Add(
		text.NewCol(2, "Fecha", header),
		text.NewCol(4, "Título", header),
		text.NewCol(2, "Categoría", header),
		text.NewCol(2, "Estado", header),
		text.NewCol(2, "Monto", props.Text{
			Size: 8, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right,
		}),
	)
}

func expenseRow(e *entity.Expense) core.Row {
	cell := props.Text{Size: 8}
	return row.New(5).Add(
		text.NewCol(2, e.SubmittedAt.Format("2006-01-02"), cell),
		text.NewCol(4, e.Title, cell),
		text.NewCol(2, e.Category, cell),
		text.NewCol(2, e.Status, cell),
		text.NewCol(2, e.Amount.StringFixed(2), props.Text{Size: 8, Align: align.Right}),
	)
}

func totalsRows(company *entity.Company, stats *repository.ExpenseStats) []core.Row {
	label := props.Text{Size: 9, Align: align.Right}
	value := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	return []core.Row{
		row.New(6).Add(
			text.NewCol(8, fmt.Sprintf("Gastos: %d (pendientes %d · aprobados %d · rechazados %d)",
				stats.TotalExpenses, stats.PendingCount, stats.ApprovedCount, stats.RejectedCount),
				props.Text{Size: 8, Color: colorGray}),
			text.NewCol(2, "Total "+company.Currency, label),
			text.NewCol(2, stats.TotalAmount.StringFixed(2), value),
		),
		row.New(6).Add(
			col.New(8),
			text.NewCol(2, "Aprobado "+company.Currency, label),
			text.NewCol(2, stats.ApprovedAmount.StringFixed(2), value),
		),
	}
}
