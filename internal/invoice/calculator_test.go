package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"serviq/internal/domain"
)

func discount(v float64) *float64 { return &v }

func exampleOrder() domain.Order {
	return domain.Order{
		OrderNumber: "SRV-000001",
		Items: []domain.OrderItem{
			{ID: "1", ProductID: "a", Name: "A", Price: 100, Quantity: 2},
			{ID: "2", ProductID: "b", Name: "B", Price: 50, Quantity: 1, IsGift: true},
		},
		Discount: discount(10),
	}
}

func TestCalculate_DiscountAndTax(t *testing.T) {
	got := Calculate(exampleOrder(), domain.InvoiceSettings{ShowDiscount: true, ShowTax: true})
	assert.Equal(t, 200.0, got.Subtotal)
	assert.Equal(t, 20.0, got.DiscountAmount)
	assert.Equal(t, 180.0, got.SubtotalAfterDiscount)
	assert.Equal(t, 18.0, got.Tax)
	assert.Equal(t, 198.0, got.Total)
	assert.Equal(t, 10.0, got.DiscountPercent)
	assert.Equal(t, TaxRate, got.TaxRate)
}

func TestCalculate_TogglesOff(t *testing.T) {
	got := Calculate(exampleOrder(), domain.InvoiceSettings{})
	assert.Equal(t, 200.0, got.Subtotal)
	assert.Zero(t, got.DiscountAmount)
	assert.Zero(t, got.Tax)
	assert.Equal(t, got.Subtotal, got.Total)
}

func TestCalculate_NoIntermediateRounding(t *testing.T) {
	o := domain.Order{
		Items:    []domain.OrderItem{{Price: 0.1, Quantity: 3}, {Price: 0.2, Quantity: 1}},
		Discount: discount(33),
	}
	got := Calculate(o, domain.InvoiceSettings{ShowDiscount: true, ShowTax: true})
	assert.Equal(t, 0.5, got.Subtotal)
	assert.Equal(t, 0.165, got.DiscountAmount)
	assert.Equal(t, 0.335, got.SubtotalAfterDiscount)
	assert.Equal(t, 0.0335, got.Tax)
	assert.Equal(t, 0.3685, got.Total)
}

func TestCalculate_EmptyOrder(t *testing.T) {
	got := Calculate(domain.Order{}, domain.InvoiceSettings{ShowDiscount: true, ShowTax: true})
	assert.Equal(t, Totals{TaxRate: TaxRate}, got)
}

func TestLineTotalAndNetRevenue(t *testing.T) {
	o := exampleOrder()
	assert.Equal(t, 200.0, LineTotal(o.Items[0]))
	assert.Zero(t, LineTotal(o.Items[1]))
	assert.Equal(t, 180.0, NetRevenue(o))

	o.Discount = nil
	assert.Equal(t, 200.0, NetRevenue(o))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "1,234.50 EGP", FormatCurrency(1234.5))
	assert.Equal(t, "0.00 EGP", FormatCurrency(0))
	assert.Equal(t, "0.37 EGP", FormatCurrency(0.3685))
}
