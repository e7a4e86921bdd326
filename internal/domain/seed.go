package domain

import "time"

// Governorates список допустимых значений customerGovernorate; первый используется по умолчанию
var Governorates = []string{
	"Cairo", "Giza", "Alexandria", "Dakahlia", "Sharqia", "Monufia", "Qalyubia",
	"Beheira", "Gharbia", "Port Said", "Damietta", "Ismailia", "Suez", "Kafr El Sheikh",
	"Faiyum", "Beni Suef", "Minya", "Asyut", "Sohag", "Qena", "Luxor", "Aswan",
	"Red Sea", "New Valley", "Matrouh", "North Sinai", "South Sinai",
}

// IsGovernorate reports whether name is in Governorates.
func IsGovernorate(name string) bool {
	for _, g := range Governorates {
		if g == name {
			return true
		}
	}
	return false
}

// SeedProducts каталог по умолчанию; id стабильны, чтобы образцы заказов ссылались на них
func SeedProducts() []Product {
	return []Product{
		{ID: "prod-logo", Name: "Logo design", Price: 1500},
		{ID: "prod-website", Name: "Website design", Price: 5000},
		{ID: "prod-hosting", Name: "Website hosting (1 year)", Price: 1000},
		{ID: "prod-seo", Name: "SEO package", Price: 750},
		{ID: "prod-social", Name: "Social media management (1 month)", Price: 2000},
		{ID: "prod-ads", Name: "Paid ad campaign", Price: 3000},
	}
}

// SampleOrders заказы, которыми заполняется хранилище при первом запуске
func SampleOrders() []Order {
	discount := 10.0
	return []Order{
		{
			ID:          "d9a8f7c6b5e4d3c2b1a0",
			OrderNumber: "SRV-8431",
			Customer: Customer{
				Name:        "Ahmed Abdullah",
				Phone1:      "01234567890",
				Governorate: "Cairo",
				Address:     "15 Talaat Harb St, Downtown",
			},
			OrderDate: time.Date(2023, 10, 26, 10, 0, 0, 0, time.UTC),
			Items: []OrderItem{
				{ID: "item-1", ProductID: "prod-website", Name: "Website design", Quantity: 1, Price: 5000},
				{ID: "item-2", ProductID: "prod-seo", Name: "SEO package", Quantity: 1, Price: 750},
			},
			Status:   OrderStatusCompleted,
			Discount: &discount,
		},
		{
			ID:          "f8e7d6c5b4a3d2c1b0a9",
			OrderNumber: "SRV-8430",
			Customer: Customer{
				Name:        "Fatma Mohamed",
				Phone1:      "01098765432",
				Governorate: "Alexandria",
				Address:     "22 Corniche Rd, Sidi Gaber",
			},
			OrderDate: time.Date(2023, 10, 28, 12, 30, 0, 0, time.UTC),
			Items: []OrderItem{
				{ID: "item-3", ProductID: "prod-logo", Name: "Logo design", Quantity: 1, Price: 1500},
				{ID: "item-4", ProductID: "prod-hosting", Name: "Website hosting (1 year)", Quantity: 1, Price: 1000, IsGift: true},
			},
			Status: OrderStatusInProgress,
		},
	}
}

// DefaultSettings настройки счёта для новой установки
func DefaultSettings() InvoiceSettings {
	return InvoiceSettings{
		CompanyName:    "Serviq",
		CompanyAddress: "123 Tech Street\nSilicon Valley, CA 94043",
		CompanyContact: "support@serviq.com",
		ShowTax:        true,
		ShowDiscount:   true,
		Theme:          ThemePurple,
		FontFamily:     FontSans,
		InvoiceTitle:   "Invoice",
		FooterNotes:    "Payment terms: within 30 days of the invoice date.",
	}
}
