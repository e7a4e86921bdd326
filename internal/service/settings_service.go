package service

import (
	"context"
	"fmt"
	"strings"

	"serviq/internal/domain"
	"serviq/internal/store"
)

// Branding реквизиты компании
type Branding struct {
	Logo           string `json:"logo"`
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	CompanyContact string `json:"companyContact"`
}

// Display переключатели и тексты счёта
type Display struct {
	ShowTax      bool   `json:"showTax"`
	ShowDiscount bool   `json:"showDiscount"`
	InvoiceTitle string `json:"invoiceTitle"`
	FooterNotes  string `json:"footerNotes"`
}

// Appearance оформление счёта
type Appearance struct {
	Theme      domain.ThemeColor `json:"theme"`
	FontFamily domain.FontFamily `json:"fontFamily"`
}

// SettingsService обновляет настройки счёта по группам полей
type SettingsService struct {
	store *store.Store
}

func NewSettingsService(s *store.Store) *SettingsService {
	return &SettingsService{store: s}
}

func (s *SettingsService) Get(ctx context.Context) domain.InvoiceSettings {
	return s.store.Settings()
}

func (s *SettingsService) update(ctx context.Context, fn func(*domain.InvoiceSettings) error) (domain.InvoiceSettings, error) {
	next := s.store.Settings()
	if err := fn(&next); err != nil {
		return domain.InvoiceSettings{}, err
	}
	if err := s.store.SetSettings(ctx, next); err != nil {
		return domain.InvoiceSettings{}, err
	}
	return next, nil
}

func (s *SettingsService) UpdateBranding(ctx context.Context, b Branding) (domain.InvoiceSettings, error) {
	if b.Logo != "" && !strings.HasPrefix(b.Logo, "data:image/") {
		return domain.InvoiceSettings{}, invalid("logo", "must be an image data URL")
	}
	return s.update(ctx, func(st *domain.InvoiceSettings) error {
		st.Logo = b.Logo
		st.CompanyName = strings.TrimSpace(b.CompanyName)
		st.CompanyAddress = strings.TrimSpace(b.CompanyAddress)
		st.CompanyContact = strings.TrimSpace(b.CompanyContact)
		return nil
	})
}

func (s *SettingsService) UpdateDisplay(ctx context.Context, d Display) (domain.InvoiceSettings, error) {
	return s.update(ctx, func(st *domain.InvoiceSettings) error {
		st.ShowTax = d.ShowTax
		st.ShowDiscount = d.ShowDiscount
		st.InvoiceTitle = d.InvoiceTitle
		st.FooterNotes = d.FooterNotes
		return nil
	})
}

func (s *SettingsService) UpdateAppearance(ctx context.Context, a Appearance) (domain.InvoiceSettings, error) {
	if !a.Theme.Valid() {
		return domain.InvoiceSettings{}, invalid("theme", fmt.Sprintf("unknown theme %q", a.Theme))
	}
	if !a.FontFamily.Valid() {
		return domain.InvoiceSettings{}, invalid("fontFamily", fmt.Sprintf("unknown font family %q", a.FontFamily))
	}
	return s.update(ctx, func(st *domain.InvoiceSettings) error {
		st.Theme = a.Theme
		st.FontFamily = a.FontFamily
		return nil
	})
}

// validatePromotion: включённое правило требует два разных существующих товара
func (s *SettingsService) validatePromotion(p domain.PromotionSetting) error {
	if !p.Enabled {
		return nil
	}
	t, g := p.Trigger(), p.Gift()
	if t == "" || g == "" {
		return invalid("promotion", "trigger and gift products are required when enabled")
	}
	if t == g {
		return invalid("promotion", "trigger and gift must be different products")
	}
	catalog := s.store.Products()
	if _, ok := domain.FindProduct(catalog, t); !ok {
		return invalid("promotion.triggerProductId", fmt.Sprintf("unknown product %q", t))
	}
	if _, ok := domain.FindProduct(catalog, g); !ok {
		return invalid("promotion.giftProductId", fmt.Sprintf("unknown product %q", g))
	}
	return nil
}

func (s *SettingsService) UpdatePromotion(ctx context.Context, p domain.PromotionSetting) (domain.InvoiceSettings, error) {
	if err := s.validatePromotion(p); err != nil {
		return domain.InvoiceSettings{}, err
	}
	return s.update(ctx, func(st *domain.InvoiceSettings) error {
		st.Promotion = p
		return nil
	})
}

// ApplyTemplate overlays a named preset on the current settings.
func (s *SettingsService) ApplyTemplate(ctx context.Context, name string) (domain.InvoiceSettings, error) {
	t, ok := FindTemplate(name)
	if !ok {
		return domain.InvoiceSettings{}, invalid("template", fmt.Sprintf("unknown template %q", name))
	}
	return s.update(ctx, func(st *domain.InvoiceSettings) error {
		t.apply(st)
		return nil
	})
}

// Replace validates and stores a whole settings object.
func (s *SettingsService) Replace(ctx context.Context, next domain.InvoiceSettings) (domain.InvoiceSettings, error) {
	if !next.Theme.Valid() {
		return domain.InvoiceSettings{}, invalid("theme", fmt.Sprintf("unknown theme %q", next.Theme))
	}
	if !next.FontFamily.Valid() {
		return domain.InvoiceSettings{}, invalid("fontFamily", fmt.Sprintf("unknown font family %q", next.FontFamily))
	}
	if err := s.validatePromotion(next.Promotion); err != nil {
		return domain.InvoiceSettings{}, err
	}
	if err := s.store.SetSettings(ctx, next); err != nil {
		return domain.InvoiceSettings{}, err
	}
	return next, nil
}
