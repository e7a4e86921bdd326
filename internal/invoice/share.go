package invoice

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"serviq/internal/domain"
)

// Platform социальная сеть для кнопки "поделиться"
type Platform string

const (
	PlatformWhatsApp Platform = "whatsapp"
	PlatformFacebook Platform = "facebook"
)

// ErrUnknownPlatform is returned by ShareURL for an unsupported platform.
var ErrUnknownPlatform = errors.New("unknown share platform")

const qrEndpoint = "https://api.qrserver.com/v1/create-qr-code/"

// ShareMessage builds the plain text summary shared to social platforms.
func ShareMessage(o domain.Order, settings domain.InvoiceSettings) string {
	t := Calculate(o, settings)
	company := settings.CompanyName
	if company == "" {
		company = settings.InvoiceTitle
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Invoice %s from %s\n", o.OrderNumber, company)
	fmt.Fprintf(&b, "Customer: %s\n", o.Customer.Name)
	fmt.Fprintf(&b, "Total: %s", FormatCurrency(t.SubtotalAfterDiscount))
	return b.String()
}

// ShareURL returns a pre-filled share link. appURL is only used by Facebook,
// which requires a page to attach the quote to.
func ShareURL(p Platform, msg, appURL string) (string, error) {
	switch p {
	case PlatformWhatsApp:
		return "https://wa.me/?text=" + url.QueryEscape(msg), nil
	case PlatformFacebook:
		q := url.Values{}
		q.Set("u", appURL)
		q.Set("quote", msg)
		return "https://www.facebook.com/sharer/sharer.php?" + q.Encode(), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, p)
}

func qrURL(data string) string {
	q := url.Values{}
	q.Set("size", "80x80")
	q.Set("data", data)
	q.Set("qzone", "1")
	return qrEndpoint + "?" + q.Encode()
}

// PhoneQRURL encodes the customer's primary phone.
func PhoneQRURL(o domain.Order) string {
	return qrURL(o.Customer.Phone1)
}

type summaryItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type summary struct {
	InvoiceNumber string        `json:"invoiceNumber"`
	Customer      string        `json:"customer"`
	Date          string        `json:"date"`
	TotalAmount   float64       `json:"totalAmount"`
	Items         []summaryItem `json:"items"`
}

// SummaryQRURL encodes a JSON summary of the invoice; gift items are priced 0.
func SummaryQRURL(o domain.Order, t Totals) (string, error) {
	s := summary{
		InvoiceNumber: o.OrderNumber,
		Customer:      o.Customer.Name,
		Date:          FormatDate(o.OrderDate),
		TotalAmount:   t.Total,
		Items:         make([]summaryItem, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		price := it.Price
		if it.IsGift {
			price = 0
		}
		s.Items = append(s.Items, summaryItem{Name: it.Name, Quantity: it.Quantity, Price: price})
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return qrURL(string(raw)), nil
}
