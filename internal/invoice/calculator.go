// Package invoice computes invoice totals and renders invoices to PDF and PNG.
package invoice

import (
	"github.com/shopspring/decimal"

	"serviq/internal/domain"
)

// TaxRate is the fixed sales tax applied when settings.ShowTax is on.
const TaxRate = 0.10

var (
	taxRate = decimal.NewFromFloat(TaxRate)
	hundred = decimal.NewFromInt(100)
)

// Totals денежные итоги счёта
type Totals struct {
	Subtotal              float64 `json:"subtotal"`
	DiscountPercent       float64 `json:"discountPercent"`
	DiscountAmount        float64 `json:"discountAmount"`
	SubtotalAfterDiscount float64 `json:"subtotalAfterDiscount"`
	TaxRate               float64 `json:"taxRate"`
	Tax                   float64 `json:"tax"`
	Total                 float64 `json:"total"`
}

// Calculate derives the totals of o under settings. All intermediate values
// are exact decimals; rounding only happens when formatting for display.
func Calculate(o domain.Order, settings domain.InvoiceSettings) Totals {
	subtotal := subtotalOf(o.Items)

	discountPct := decimal.Zero
	discount := decimal.Zero
	if settings.ShowDiscount && o.DiscountPercent() > 0 {
		discountPct = decimal.NewFromFloat(o.DiscountPercent())
		discount = subtotal.Mul(discountPct).Div(hundred)
	}
	afterDiscount := subtotal.Sub(discount)

	tax := decimal.Zero
	rate := 0.0
	if settings.ShowTax {
		tax = afterDiscount.Mul(taxRate)
		rate = TaxRate
	}

	return Totals{
		Subtotal:              subtotal.InexactFloat64(),
		DiscountPercent:       discountPct.InexactFloat64(),
		DiscountAmount:        discount.InexactFloat64(),
		SubtotalAfterDiscount: afterDiscount.InexactFloat64(),
		TaxRate:               rate,
		Tax:                   tax.InexactFloat64(),
		Total:                 afterDiscount.Add(tax).InexactFloat64(),
	}
}

// LineTotal returns price × quantity, or 0 for a gift line.
func LineTotal(it domain.OrderItem) float64 {
	return lineTotal(it).InexactFloat64()
}

// NetRevenue is the subtotal minus the order discount, regardless of display
// settings. Used for dashboard revenue.
func NetRevenue(o domain.Order) float64 {
	subtotal := subtotalOf(o.Items)
	if o.DiscountPercent() <= 0 {
		return subtotal.InexactFloat64()
	}
	discount := subtotal.Mul(decimal.NewFromFloat(o.DiscountPercent())).Div(hundred)
	return subtotal.Sub(discount).InexactFloat64()
}

func lineTotal(it domain.OrderItem) decimal.Decimal {
	if it.IsGift {
		return decimal.Zero
	}
	return decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
}

func subtotalOf(items []domain.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(lineTotal(it))
	}
	return sum
}
