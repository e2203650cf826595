// Package pdf genera el comprobante de pago en PDF.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────┐
//	│  HEADER: sitio        │  N° pago + fecha  │
//	│  ───────────────────────────────────────  │
//	│  DETALLE: cliente / empleado / alquiler   │
//	│  ───────────────────────────────────────  │
//	│  TOTAL PAGADO                             │
//	│  QR de verificación + leyenda             │
//	└───────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/dvdrental-api/internal/application/ports"
	"github.com/jhoicas/dvdrental-api/internal/domain/entity"
)

var _ ports.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator implementa ports.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// PaymentReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) PaymentReceipt(_ context.Context, p *entity.Payment, siteName string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de pago", true).
		WithAuthor(siteName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p, siteName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	for _, r := range detailRows(p) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(p))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(p, siteName))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(p *entity.Payment, siteName string) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(siteName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Alquiler de películas", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+strconv.FormatInt(p.ID, 10), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+p.PaymentDate.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// detailRows una fila etiqueta/valor por dato del pago.
func detailRows(p *entity.Payment) []core.Row {
	rental := "-"
	if p.RentalID != nil {
		rental = strconv.FormatInt(*p.RentalID, 10)
	}
	pairs := [][2]string{
		{"Cliente", strconv.FormatInt(p.CustomerID, 10)},
		{"Atendido por (empleado)", strconv.FormatInt(p.StaffID, 10)},
		{"Alquiler", rental},
	}
	rows := make([]core.Row, 0, len(pairs))
	for _, kv := range pairs {
		rows = append(rows, row.New(7).Add(
			col.New(6).Add(text.New(kv[0], props.Text{Style: fontstyle.Bold, Size: 9, Top: 1})),
			col.New(6).Add(text.New(kv[1], props.Text{Size: 9, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

func totalRow(p *entity.Payment) core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New("TOTAL PAGADO:", props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
		})),
		col.New(6).Add(text.New("$"+formatAmount(p.Amount), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
	)
}

// footerRow QR con la referencia del pago y leyenda.
func footerRow(p *entity.Payment, siteName string) core.Row {
	ref := fmt.Sprintf("%s|payment:%d|amount:%s|date:%s",
		siteName, p.ID, p.Amount.StringFixed(2), p.PaymentDate.Format("2006-01-02T15:04:05Z07:00"))
	return row.New(35).Add(
		col.New(4).Add(code.NewQr(ref, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Conserve este comprobante como soporte del pago.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Gracias por elegir "+siteName+".", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 14, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatAmount separa miles con punto y usa coma decimal: 1234.5 → "1.234,50".
func formatAmount(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	out := groupThousands(intPart) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
func groupThousands(s string) string {
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
