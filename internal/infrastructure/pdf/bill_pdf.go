// Package pdf genera la exportación imprimible de una nota de frais.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────┐
//	│  HEADER: Note de frais + estado             │
//	│  ─────────────────────────────────────────  │
//	│  EMISOR: email del empleado + fecha         │
//	│  ─────────────────────────────────────────  │
//	│  TABLA: Type | Nom | Montant | TVA | %      │
//	│  ─────────────────────────────────────────  │
//	│  COMENTARIO + justificante adjunto          │
//	└─────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/billed-app/billed-api/internal/application/bills"
	"github.com/billed-app/billed-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ bills.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa bills.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateBillPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateBillPDF(_ context.Context, bill *entity.Bill) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Note de frais", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emitterRow(bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRow(bill))
	if bill.Commentary != "" {
		m.AddRows(commentaryRow(bill))
	}
	if bill.HasReceipt() {
		m.AddRows(receiptRow(bill))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("maroto generate: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(bill *entity.Bill) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("Note de frais", props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
			text.New(bill.Name, props.Text{Size: 10, Top: 6}),
		),
		col.New(4).Add(
			text.New(bill.Status.StatusLabel(), props.Text{
				Size: 11, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary,
			}),
		),
	)
}

func emitterRow(bill *entity.Bill) core.Row {
	date := bill.Date
	if formatted, err := bills.FormatDate(bill.Date); err == nil {
		date = formatted
	}
	return row.New(8).Add(
		col.New(8).Add(
			text.New("Employé : "+bill.Email, props.Text{Size: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Date : "+date, props.Text{Size: 9, Align: align.Right, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Size: 9, Style: fontstyle.Bold, Color: colorPrimary,
		}))
	}
	return row.New(7).Add(
		header("Type", 3),
		header("Nom", 4),
		header("Montant", 2),
		header("TVA", 2),
		header("%", 1),
	)
}

func tableRow(bill *entity.Bill) core.Row {
	vat := "-"
	if bill.VAT.Valid {
		vat = bill.VAT.Decimal.StringFixed(2) + " €"
	}
	cell := func(value string, size int) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 9}))
	}
	return row.New(7).Add(
		cell(bill.Type, 3),
		cell(bill.Name, 4),
		cell(bill.Amount.StringFixed(2)+" €", 2),
		cell(vat, 2),
		cell(bill.Pct.String(), 1),
	)
}

func commentaryRow(bill *entity.Bill) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("Commentaire : "+bill.Commentary, props.Text{Size: 8, Color: colorGray, Top: 3}),
		),
	)
}

func receiptRow(bill *entity.Bill) core.Row {
	return row.New(6).Add(
		col.New(12).Add(
			text.New("Justificatif : "+bill.FileName, props.Text{Size: 8, Color: colorGray}),
		),
	)
}
