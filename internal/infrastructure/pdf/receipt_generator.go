// Package pdf implementa la representación impresa local de un CFDI timbrado
// (Anexo 20 del SAT). No sustituye al PDF del PAC; es la plantilla propia de
// la app para mostrar el comprobante al usuario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + RFC emisor  │  Folio + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECEPTOR: Razón social + RFC                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Concepto | P.Unit | Total                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER SAT: Folio fiscal (UUID) + sellos + cadena original │
//	└─────────────────────────────────────────────────────────────┘
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

	appbilling "github.com/synaptica/aurea-api/internal/application/billing"
	"github.com/synaptica/aurea-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 94, Green: 53, Blue: 177}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Verificación en tiempo de compilación del puerto.
var _ appbilling.ReceiptGenerator = (*CFDIReceiptGenerator)(nil)

// CFDIReceiptGenerator implementa billing.ReceiptGenerator usando Maroto v2.
type CFDIReceiptGenerator struct{}

// NewCFDIReceiptGenerator construye el generador.
func NewCFDIReceiptGenerator() *CFDIReceiptGenerator { return &CFDIReceiptGenerator{} }

// GenerateReceipt genera el PDF y devuelve sus bytes.
func (g *CFDIReceiptGenerator) GenerateReceipt(
	_ context.Context,
	record *entity.InvoiceRecord,
	issuer *entity.FiscalLink,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("CFDI "+record.Folio, true).
		WithAuthor(issuer.LegalName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(record, issuer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(receptorRow(record))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(conceptRow(record))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(record))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range satFooterRows(record) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + RFC del emisor (izq) y folio + fecha (der).
func headerRow(record *entity.InvoiceRecord, issuer *entity.FiscalLink) core.Row {
	fecha := record.IssuedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(issuer.LegalName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RFC: "+issuer.RFC, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA (CFDI 4.0)", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Folio "+record.Folio, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// receptorRow: datos del receptor.
func receptorRow(record *entity.InvoiceRecord) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RECEPTOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(record.ReceiverLegalName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("RFC: "+record.ReceiverRFC, props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla del concepto.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Concepto", 6, align.Left),
		h("P. Unitario", 2, align.Right),
		h("Importe", 3, align.Right),
	)
}

// conceptRow: la única línea del comprobante.
func conceptRow(record *entity.InvoiceRecord) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(
			record.Quantity.StringFixed(0),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(6).Add(text.New(
			record.Description,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			"$"+record.UnitValue.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(3).Add(text.New(
			"$"+record.Quantity.Mul(record.UnitValue).StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// totalRow: total timbrado, alineado a la derecha.
func totalRow(record *entity.InvoiceRecord) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})),
		col.New(3).Add(text.New("$"+record.Total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})),
	)
}

// satFooterRows: folio fiscal + sellos partidos + cadena original + leyenda.
func satFooterRows(record *entity.InvoiceRecord) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("INFORMACIÓN FISCAL SAT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New("Folio fiscal (UUID): "+record.UUID, props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 1,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New("No. certificado SAT: "+record.CertificateNumber, props.Text{
				Size: 7, Top: 1,
			}),
		)),
	}

	rows = append(rows, sealRows("Sello digital del CFDI:", record.SelloCFDI)...)
	rows = append(rows, sealRows("Sello del SAT:", record.SelloSAT)...)
	rows = append(rows, sealRows("Cadena original del complemento de certificación:", record.OriginalChain)...)

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Este documento es una representación impresa de un CFDI (Anexo 20, versión 4.0). "+
				"Conserve el XML como soporte fiscal.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// sealRows imprime una etiqueta y el valor partido en fragmentos de 90 caracteres.
func sealRows(label, value string) []core.Row {
	if value == "" {
		return nil
	}
	rows := []core.Row{
		row.New(4).Add(col.New(12).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 6.5, Top: 0.5}),
		)),
	}
	for _, chunk := range splitEvery(value, 90) {
		rows = append(rows, row.New(3).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 6, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// splitEvery divide s en trozos de max n caracteres.
func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
