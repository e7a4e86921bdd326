package invoice

import (
	"context"
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"serviq/internal/domain"
)

// PDFRenderer renders the printable invoice layout.
type PDFRenderer struct{}

func (PDFRenderer) Format() Format { return FormatPDF }

// Render lays out header, bill-to, items, totals and notes on an A4 page.
func (PDFRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return guardRender("layout", doc, func() ([]byte, error) {
		cfg := config.NewBuilder().
			WithLeftMargin(12).
			WithTopMargin(15).
			WithRightMargin(12).
			Build()

		m := maroto.New(cfg)
		p := pdfPalette(doc.Settings)

		addPDFHeader(m, doc, p)
		addPDFBillTo(m, doc, p)
		addPDFItems(m, doc, p)
		addPDFTotals(m, doc, p)
		addPDFFooter(m, doc, p)

		pdfDoc, err := m.Generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate PDF: %w", err)
		}
		return pdfDoc.GetBytes(), nil
	})
}

type pdfStyle struct {
	family string
	accent *props.Color
}

func pdfPalette(s domain.InvoiceSettings) pdfStyle {
	c := accentOf(s.Theme)
	family := fontfamily.Arial
	switch s.FontFamily {
	case domain.FontSerif:
		family = "times" // gofpdf core font
	case domain.FontMono:
		family = fontfamily.Courier
	}
	return pdfStyle{
		family: family,
		accent: &props.Color{Red: int(c.R), Green: int(c.G), Blue: int(c.B)},
	}
}

func (p pdfStyle) text(size float64, a align.Type) props.Text {
	return props.Text{Family: p.family, Size: size, Align: a}
}

func (p pdfStyle) bold(size float64, a align.Type) props.Text {
	t := p.text(size, a)
	t.Style = fontstyle.Bold
	return t
}

func addPDFHeader(m core.Maroto, doc Document, p pdfStyle) {
	title := p.bold(18, align.Left)
	title.Color = p.accent
	number := p.bold(16, align.Right)
	number.Color = p.accent
	address := p.text(9, align.Left)
	address.Top = 9

	m.AddRow(28,
		col.New(7).Add(
			text.New(doc.Title(), title),
			text.New(doc.Settings.CompanyAddress, address),
		),
		col.New(5).Add(
			text.New(doc.Settings.InvoiceTitle, number),
			text.New("# "+doc.Order.OrderNumber, withTop(p.text(10, align.Right), 9)),
			text.New(FormatDate(doc.Order.OrderDate), withTop(p.text(9, align.Right), 15)),
		),
	)
	m.AddRow(5, line.NewCol(12))
}

func addPDFBillTo(m core.Maroto, doc Document, p pdfStyle) {
	c := doc.Order.Customer
	phones := c.Phone1
	if c.Phone2 != "" {
		phones += " / " + c.Phone2
	}
	m.AddRow(26,
		col.New(8).Add(
			text.New("BILL TO", p.bold(9, align.Left)),
			text.New(c.Name, withTop(p.text(10, align.Left), 5)),
			text.New(phones, withTop(p.text(9, align.Left), 10)),
			text.New(c.Address+", "+c.Governorate, withTop(p.text(9, align.Left), 15)),
		),
		col.New(4).Add(
			text.New("Status: "+string(doc.Order.Status), p.text(9, align.Right)),
			text.New("From: "+doc.Settings.CompanyContact, withTop(p.text(9, align.Right), 5)),
		),
	)
}

func addPDFItems(m core.Maroto, doc Document, p pdfStyle) {
	head := p.bold(9, align.Left)
	headRight := p.bold(9, align.Right)
	m.AddRow(8,
		col.New(6).Add(text.New("Item", head)),
		col.New(2).Add(text.New("Qty", headRight)),
		col.New(2).Add(text.New("Price", headRight)),
		col.New(2).Add(text.New("Total", headRight)),
	)
	m.AddRow(2, line.NewCol(12))

	for _, it := range doc.Order.Items {
		name := it.Name
		if it.IsGift {
			name += " (gift)"
		}
		m.AddRow(7,
			col.New(6).Add(text.New(name, p.text(9, align.Left))),
			col.New(2).Add(text.New(strconv.Itoa(it.Quantity), p.text(9, align.Right))),
			col.New(2).Add(text.New(itemUnitPrice(it), p.text(9, align.Right))),
			col.New(2).Add(text.New(itemAmount(it), p.text(9, align.Right))),
		)
	}
	m.AddRow(3, line.NewCol(12))
}

func addPDFTotals(m core.Maroto, doc Document, p pdfStyle) {
	lines := doc.totalsLines()
	for i, l := range lines {
		label, value := p.text(9, align.Right), p.text(9, align.Right)
		if i == len(lines)-1 {
			label, value = p.bold(11, align.Right), p.bold(11, align.Right)
			value.Color = p.accent
		}
		m.AddRow(6,
			col.New(7),
			col.New(2).Add(text.New(l[0]+":", label)),
			col.New(3).Add(text.New(l[1], value)),
		)
	}
}

func addPDFFooter(m core.Maroto, doc Document, p pdfStyle) {
	if doc.Settings.FooterNotes == "" {
		return
	}
	m.AddRow(5, line.NewCol(12))
	m.AddRow(15,
		col.New(12).Add(
			text.New("Notes", p.bold(9, align.Left)),
			text.New(doc.Settings.FooterNotes, withTop(p.text(8, align.Left), 5)),
		),
	)
}

func withTop(t props.Text, top float64) props.Text {
	t.Top = top
	return t
}
