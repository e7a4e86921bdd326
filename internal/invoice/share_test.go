package invoice

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serviq/internal/domain"
)

func sharedOrder() domain.Order {
	o := exampleOrder()
	o.OrderNumber = "SRV-123456"
	o.Customer = domain.Customer{Name: "Mona Ali", Phone1: "+20 100 000 0000", Address: "Street 1", Governorate: "Giza"}
	o.OrderDate = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	return o
}

func TestShareMessage(t *testing.T) {
	msg := ShareMessage(sharedOrder(), domain.InvoiceSettings{CompanyName: "Serviq", ShowDiscount: true, ShowTax: true})
	assert.Contains(t, msg, "SRV-123456")
	assert.Contains(t, msg, "Mona Ali")
	// total after discount, before tax
	assert.Contains(t, msg, "180.00 EGP")
}

func TestShareURL(t *testing.T) {
	msg := "Invoice SRV-1 & more"

	wa, err := ShareURL(PlatformWhatsApp, msg, "")
	require.NoError(t, err)
	u, err := url.Parse(wa)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, msg, u.Query().Get("text"))

	fb, err := ShareURL(PlatformFacebook, msg, "https://serviq.example")
	require.NoError(t, err)
	u, err = url.Parse(fb)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fb, "https://www.facebook.com/sharer/sharer.php?"))
	assert.Equal(t, "https://serviq.example", u.Query().Get("u"))
	assert.Equal(t, msg, u.Query().Get("quote"))

	_, err = ShareURL("myspace", msg, "")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestQRURLs(t *testing.T) {
	o := sharedOrder()
	phone, err := url.Parse(PhoneQRURL(o))
	require.NoError(t, err)
	assert.Equal(t, "api.qrserver.com", phone.Host)
	assert.Equal(t, "+20 100 000 0000", phone.Query().Get("data"))
	assert.Equal(t, "80x80", phone.Query().Get("size"))
	assert.Equal(t, "1", phone.Query().Get("qzone"))

	totals := Calculate(o, domain.InvoiceSettings{ShowDiscount: true, ShowTax: true})
	raw, err := SummaryQRURL(o, totals)
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)

	var payload struct {
		InvoiceNumber string  `json:"invoiceNumber"`
		Customer      string  `json:"customer"`
		TotalAmount   float64 `json:"totalAmount"`
		Items         []struct {
			Name     string  `json:"name"`
			Quantity int     `json:"quantity"`
			Price    float64 `json:"price"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(u.Query().Get("data")), &payload))
	assert.Equal(t, "SRV-123456", payload.InvoiceNumber)
	assert.Equal(t, "Mona Ali", payload.Customer)
	assert.Equal(t, 198.0, payload.TotalAmount)
	require.Len(t, payload.Items, 2)
	assert.Equal(t, 100.0, payload.Items[0].Price)
	assert.Zero(t, payload.Items[1].Price, "gift priced at zero")
}
