package invoice

import (
	"context"
	"fmt"

	"serviq/internal/domain"
)

// Format формат экспортируемого файла
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// guardRender runs fn and returns a panic inside it as an error.
func guardRender(stage string, doc Document, fn func() ([]byte, error)) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("%s invoice %s: %v", stage, doc.Order.OrderNumber, rec)
		}
	}()
	return fn()
}

// Document is everything a renderer needs; building it is deterministic.
type Document struct {
	Settings  domain.InvoiceSettings
	Order     domain.Order
	Totals    Totals
	PhoneQR   string
	SummaryQR string
}

// NewDocument computes totals and QR links for o.
func NewDocument(o domain.Order, settings domain.InvoiceSettings) (Document, error) {
	t := Calculate(o, settings)
	summaryQR, err := SummaryQRURL(o, t)
	if err != nil {
		return Document{}, fmt.Errorf("summary qr: %w", err)
	}
	return Document{
		Settings:  settings,
		Order:     o,
		Totals:    t,
		PhoneQR:   PhoneQRURL(o),
		SummaryQR: summaryQR,
	}, nil
}

// Title is the header line: the company name, or the invoice title when unset.
func (d Document) Title() string {
	if d.Settings.CompanyName != "" {
		return d.Settings.CompanyName
	}
	return d.Settings.InvoiceTitle
}

// Filename returns invoice-<orderNumber>.<ext>.
func Filename(o domain.Order, f Format) string {
	return fmt.Sprintf("invoice-%s.%s", o.OrderNumber, f)
}

// Renderer turns a document into file bytes.
type Renderer interface {
	Format() Format
	Render(ctx context.Context, doc Document) ([]byte, error)
}

type rgb struct{ R, G, B uint8 }

// accent colors per theme
var themeAccent = map[domain.ThemeColor]rgb{
	domain.ThemePurple:  {0x7c, 0x3a, 0xed},
	domain.ThemeBlue:    {0x25, 0x63, 0xeb},
	domain.ThemeGreen:   {0x05, 0x96, 0x69},
	domain.ThemeClassic: {0x37, 0x41, 0x51},
}

func accentOf(t domain.ThemeColor) rgb {
	if c, ok := themeAccent[t]; ok {
		return c
	}
	return themeAccent[domain.ThemePurple]
}

func itemAmount(it domain.OrderItem) string {
	if it.IsGift {
		return "FREE"
	}
	return FormatCurrency(LineTotal(it))
}

func itemUnitPrice(it domain.OrderItem) string {
	if it.IsGift {
		return "FREE"
	}
	return FormatCurrency(it.Price)
}

// totalsLines returns the label/value rows of the totals block in display order.
func (d Document) totalsLines() [][2]string {
	lines := [][2]string{{"Subtotal", FormatCurrency(d.Totals.Subtotal)}}
	if d.Totals.DiscountAmount > 0 {
		lines = append(lines, [2]string{
			fmt.Sprintf("Discount (%g%%)", d.Totals.DiscountPercent),
			"-" + FormatCurrency(d.Totals.DiscountAmount),
		})
	}
	if d.Settings.ShowTax {
		lines = append(lines, [2]string{
			fmt.Sprintf("Tax (%g%%)", d.Totals.TaxRate*100),
			FormatCurrency(d.Totals.Tax),
		})
	}
	return append(lines, [2]string{"Total", FormatCurrency(d.Totals.Total)})
}
