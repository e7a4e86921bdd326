package domain

import "time"

// Product позиция каталога
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusInProgress OrderStatus = "in-progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid сообщает, является ли статус одним из известных
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem позиция в заказе; name и price снимаются с каталога в момент добавления
type OrderItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	IsGift    bool    `json:"isGift,omitempty"`
}

// Customer данные клиента, денормализованные в заказ
type Customer struct {
	Name        string `json:"customerName"`
	Phone1      string `json:"customerPhone1"`
	Phone2      string `json:"customerPhone2,omitempty"`
	Governorate string `json:"customerGovernorate"`
	Address     string `json:"customerAddress"`
}

// Order сущность заказа
type Order struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Customer
	OrderDate time.Time   `json:"orderDate"`
	Items     []OrderItem `json:"items"`
	Status    OrderStatus `json:"status"`
	Discount  *float64    `json:"discount,omitempty"`
}

// DiscountPercent returns the discount or 0 when none is set.
func (o Order) DiscountPercent() float64 {
	if o.Discount == nil {
		return 0
	}
	return *o.Discount
}

// Clone returns a deep copy so callers never share item slices with the store.
func (o Order) Clone() Order {
	cp := o
	if o.Items != nil {
		cp.Items = make([]OrderItem, len(o.Items))
		copy(cp.Items, o.Items)
	}
	if o.Discount != nil {
		d := *o.Discount
		cp.Discount = &d
	}
	return cp
}

// ThemeColor цветовая схема счёта
type ThemeColor string

const (
	ThemePurple  ThemeColor = "purple"
	ThemeBlue    ThemeColor = "blue"
	ThemeGreen   ThemeColor = "green"
	ThemeClassic ThemeColor = "classic"
)

// Valid сообщает, является ли тема одной из известных
func (t ThemeColor) Valid() bool {
	switch t {
	case ThemePurple, ThemeBlue, ThemeGreen, ThemeClassic:
		return true
	}
	return false
}

// FontFamily шрифт счёта
type FontFamily string

const (
	FontSans  FontFamily = "sans"
	FontSerif FontFamily = "serif"
	FontMono  FontFamily = "mono"
)

// Valid сообщает, является ли шрифт одним из известных
func (f FontFamily) Valid() bool {
	switch f {
	case FontSans, FontSerif, FontMono:
		return true
	}
	return false
}

// PromotionSetting правило "товар-триггер -> подарок"
type PromotionSetting struct {
	Enabled          bool    `json:"enabled"`
	TriggerProductID *string `json:"triggerProductId"`
	GiftProductID    *string `json:"giftProductId"`
}

// Trigger returns the trigger product id or "".
func (p PromotionSetting) Trigger() string {
	if p.TriggerProductID == nil {
		return ""
	}
	return *p.TriggerProductID
}

// Gift returns the gift product id or "".
func (p PromotionSetting) Gift() string {
	if p.GiftProductID == nil {
		return ""
	}
	return *p.GiftProductID
}

// Active reports whether the rule is enabled and well formed.
func (p PromotionSetting) Active() bool {
	t, g := p.Trigger(), p.Gift()
	return p.Enabled && t != "" && g != "" && t != g
}

// InvoiceSettings единственный объект настроек оформления счёта
type InvoiceSettings struct {
	Logo           string           `json:"logo,omitempty"`
	CompanyName    string           `json:"companyName,omitempty"`
	CompanyAddress string           `json:"companyAddress,omitempty"`
	CompanyContact string           `json:"companyContact,omitempty"`
	ShowTax        bool             `json:"showTax"`
	ShowDiscount   bool             `json:"showDiscount"`
	Theme          ThemeColor       `json:"theme"`
	FontFamily     FontFamily       `json:"fontFamily"`
	InvoiceTitle   string           `json:"invoiceTitle"`
	FooterNotes    string           `json:"footerNotes"`
	Promotion      PromotionSetting `json:"promotion"`
}

// Clone copies the promotion pointers as well.
func (s InvoiceSettings) Clone() InvoiceSettings {
	cp := s
	if s.Promotion.TriggerProductID != nil {
		v := *s.Promotion.TriggerProductID
		cp.Promotion.TriggerProductID = &v
	}
	if s.Promotion.GiftProductID != nil {
		v := *s.Promotion.GiftProductID
		cp.Promotion.GiftProductID = &v
	}
	return cp
}

// FindProduct ищет товар по id в срезе каталога
func FindProduct(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
