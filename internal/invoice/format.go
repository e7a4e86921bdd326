package invoice

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is appended to every formatted amount.
const Currency = "EGP"

var printer = message.NewPrinter(language.English)

// FormatCurrency rounds to two decimals and groups thousands: "1,234.50 EGP".
func FormatCurrency(v float64) string {
	return printer.Sprintf("%.2f %s", v, Currency)
}

// FormatDate renders an order date for the invoice header.
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
