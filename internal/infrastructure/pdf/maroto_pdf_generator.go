// Package pdf genera el PDF de una factura con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor              │  N° Factura + Fechas + Estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto + líneas de dirección            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Cant | P.Unit | Total                  │
//	│  GASTOS: Fecha | Descripción | Monto                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto / Redondeo / TOTAL             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: instrucciones de pago + notas                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/invoicething/internal/application/billing"
	"github.com/jhoicas/invoicething/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateLayout = "02 Jan 2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador. Los montos se agrupan por miles
// según language.English (1,234.50).
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(language.English)}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	if doc == nil || doc.Invoice == nil {
		return nil, fmt.Errorf("pdf: documento sin factura")
	}
	issuerName := "InvoiceThing"
	if doc.Issuer != nil && doc.Issuer.Name != "" {
		issuerName = doc.Issuer.Name
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+doc.Invoice.InvoiceNumber, true).
		WithAuthor(issuerName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc.Invoice, doc.Issuer, issuerName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRows(doc.Client)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(doc.LineItems) > 0 {
		m.AddRows(sectionTitle("LINE ITEMS"))
		m.AddRows(lineItemHeaderRow())
		m.AddRows(g.lineItemRows(doc.LineItems)...)
	}
	if len(doc.Claims) > 0 {
		m.AddRows(row.New(3))
		m.AddRows(sectionTitle("CLAIMS"))
		m.AddRows(claimHeaderRow())
		m.AddRows(g.claimRows(doc.Claims)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRows(doc.Invoice)...)

	m.AddRows(row.New(3))
	m.AddRows(footerRows(doc.PaymentInstructions, doc.Invoice.Notes)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(inv *entity.Invoice, issuer *entity.User, issuerName string) core.Row {
	email := ""
	if issuer != nil {
		email = issuer.Email
	}
	return row.New(24).Add(
		col.New(7).Add(
			text.New(issuerName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(email, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Issued: "+inv.IssueDate.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Due: "+inv.DueDate.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
			text.New(strings.ToUpper(string(inv.Status)), props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Right, Top: 21, Color: colorPrimary,
			}),
		),
	)
}

// clientRows: bloque "Bill to" con el nombre, contacto y dirección del cliente.
func clientRows(client *entity.Client) []core.Row {
	rows := []core.Row{sectionTitle("BILL TO")}
	if client == nil {
		return append(rows, textRow("Unknown client", fontstyle.Bold, 10))
	}
	rows = append(rows, textRow(client.Name, fontstyle.Bold, 10))
	if client.ContactPerson != "" {
		rows = append(rows, textRow("Attn: "+client.ContactPerson, fontstyle.Normal, 8))
	}
	for _, l := range client.Address.Lines() {
		rows = append(rows, textRow(l, fontstyle.Normal, 8))
	}
	if client.Email != "" {
		rows = append(rows, textRow(client.Email, fontstyle.Normal, 8))
	}
	return rows
}

func lineItemHeaderRow() core.Row {
	return row.New(7).Add(
		headerCol("Description", 6, align.Left),
		headerCol("Qty", 2, align.Right),
		headerCol("Unit price", 2, align.Right),
		headerCol("Total", 2, align.Right),
	)
}

func (g *MarotoPDFGenerator) lineItemRows(items []*entity.LineItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, li := range items {
		rows = append(rows, row.New(7).Add(
			cellCol(li.Description, 6, align.Left),
			cellCol(li.Quantity.String(), 2, align.Right),
			cellCol(g.money(li.UnitPrice), 2, align.Right),
			cellCol(g.money(li.Total), 2, align.Right),
		))
	}
	return rows
}

func claimHeaderRow() core.Row {
	return row.New(7).Add(
		headerCol("Date", 2, align.Left),
		headerCol("Description", 7, align.Left),
		headerCol("Amount", 3, align.Right),
	)
}

func (g *MarotoPDFGenerator) claimRows(claims []*entity.Claim) []core.Row {
	rows := make([]core.Row, 0, len(claims))
	for _, c := range claims {
		desc := c.Description
		if c.AttachmentID != "" {
			desc += " (receipt attached)"
		}
		rows = append(rows, row.New(7).Add(
			cellCol(c.Date.Format(dateLayout), 2, align.Left),
			cellCol(desc, 7, align.Left),
			cellCol(g.money(c.Amount), 3, align.Right),
		))
	}
	return rows
}

// totalsRows: bloque de totales alineado a la derecha. El redondeo solo aparece si no es cero.
func (g *MarotoPDFGenerator) totalsRows(inv *entity.Invoice) []core.Row {
	rows := []core.Row{
		totalRow("Subtotal:", g.money(inv.Subtotal), false),
		totalRow(fmt.Sprintf("Tax (%s%%):", inv.TaxRate.Mul(decimal.NewFromInt(100)).String()), g.money(inv.Tax), false),
	}
	if !inv.RoundingAdjustment.IsZero() {
		rows = append(rows, totalRow("Rounding:", g.money(inv.RoundingAdjustment), false))
	}
	return append(rows, totalRow("TOTAL:", g.money(inv.Total), true))
}

func footerRows(instructions, notes string) []core.Row {
	var rows []core.Row
	if s := strings.TrimSpace(instructions); s != "" {
		rows = append(rows, sectionTitle("PAYMENT INSTRUCTIONS"))
		for _, l := range strings.Split(s, "\n") {
			rows = append(rows, textRow(l, fontstyle.Normal, 8))
		}
	}
	if s := strings.TrimSpace(notes); s != "" {
		rows = append(rows, sectionTitle("NOTES"))
		for _, l := range strings.Split(s, "\n") {
			rows = append(rows, textRow(l, fontstyle.Normal, 8))
		}
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func textRow(s string, style fontstyle.Type, size float64) core.Row {
	return row.New(5).Add(col.New(12).Add(
		text.New(s, props.Text{Style: style, Size: size, Top: 0.5}),
	))
}

func headerCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 2, Left: 1, Right: 1,
	}))
}

func cellCol(s string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func totalRow(label, value string, grand bool) core.Row {
	p := props.Text{Size: 9, Align: align.Right, Right: 1}
	if grand {
		p.Style = fontstyle.Bold
		p.Size = 10
		p.Color = colorPrimary
	}
	lp := p
	lp.Style = fontstyle.Bold
	return row.New(6).Add(
		col.New(6),
		col.New(3).Add(text.New(label, lp)),
		col.New(3).Add(text.New(value, p)),
	)
}

// money formatea con dos decimales y separador de miles.
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}
