package service

import (
	"time"

	"serviq/internal/domain"
)

// Template готовый набор оформления счёта
type Template struct {
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Theme       domain.ThemeColor `json:"theme"`
	FontFamily  domain.FontFamily `json:"fontFamily"`
	Company     Branding          `json:"company"`
	Display     Display           `json:"display"`
}

func (t Template) apply(s *domain.InvoiceSettings) {
	s.Theme = t.Theme
	s.FontFamily = t.FontFamily
	s.CompanyName = t.Company.CompanyName
	s.CompanyAddress = t.Company.CompanyAddress
	s.CompanyContact = t.Company.CompanyContact
	s.InvoiceTitle = t.Display.InvoiceTitle
	s.FooterNotes = t.Display.FooterNotes
}

var templates = []Template{
	{
		Name:        "modern-tech",
		Title:       "Modern tech",
		Description: "Clean, modern look for technology companies.",
		Theme:       domain.ThemePurple,
		FontFamily:  domain.FontSans,
		Company: Branding{
			CompanyName:    "Tech Solutions",
			CompanyAddress: "123 Innovation St\nFuture City, 11511",
			CompanyContact: "info@techsolutions.eg",
		},
		Display: Display{InvoiceTitle: "Tech invoice", FooterNotes: "All rights reserved, Tech Solutions © 2024."},
	},
	{
		Name:        "creative-studio",
		Title:       "Creative studio",
		Description: "Artistic design for designers and freelancers.",
		Theme:       domain.ThemeBlue,
		FontFamily:  domain.FontSans,
		Company: Branding{
			CompanyName:    "Creative Studio",
			CompanyAddress: "456 Art St\nCreative District, 34567",
			CompanyContact: "hello@creativestudio.art",
		},
		Display: Display{InvoiceTitle: "Work invoice", FooterNotes: "Thank you for choosing creativity."},
	},
	{
		Name:        "eco-friendly",
		Title:       "Eco friendly",
		Description: "Calm design inspired by nature.",
		Theme:       domain.ThemeGreen,
		FontFamily:  domain.FontSerif,
		Company: Branding{
			CompanyName:    "Eco World",
			CompanyAddress: "789 Nature St\nGreen Oasis, 89012",
			CompanyContact: "contact@ecoworld.com",
		},
		Display: Display{InvoiceTitle: "Eco invoice", FooterNotes: "Towards a greener future."},
	},
	{
		Name:        "classic-corporate",
		Title:       "Classic corporate",
		Description: "Formal, elegant design for traditional companies.",
		Theme:       domain.ThemeClassic,
		FontFamily:  domain.FontSerif,
		Company: Branding{
			CompanyName:    "The Foundation Inc.",
			CompanyAddress: "1 Business St\nFinancial Center, 10101",
			CompanyContact: "support@foundation.corp",
		},
		Display: Display{InvoiceTitle: "Official invoice", FooterNotes: "Quality and trust are the foundation of our work."},
	},
}

// Templates returns the available presets.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// FindTemplate looks a preset up by name.
func FindTemplate(name string) (Template, bool) {
	for _, t := range templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// PreviewOrder is a fixed order used to preview settings before saving them.
func PreviewOrder(now time.Time) domain.Order {
	discount := 15.0
	return domain.Order{
		ID:          "preview-123",
		OrderNumber: "SRV-DEMO",
		Customer: domain.Customer{
			Name:        "Sample customer",
			Phone1:      "01012345678",
			Governorate: "Sample governorate",
			Address:     "Sample customer address",
		},
		OrderDate: now.UTC(),
		Items: []domain.OrderItem{
			{ID: "item-prev-1", ProductID: "prod-sample-1", Name: "First product", Quantity: 2, Price: 150},
			{ID: "item-prev-2", ProductID: "prod-sample-2", Name: "Second product", Quantity: 1, Price: 300},
			{ID: "item-prev-3", ProductID: "prod-sample-3", Name: "Free product", Quantity: 1, Price: 50, IsGift: true},
		},
		Status:   domain.OrderStatusCompleted,
		Discount: &discount,
	}
}
