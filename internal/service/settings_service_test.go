package service

import (
	"context"
	"errors"
	"testing"

	"serviq/internal/domain"
)

func TestSettingsTypedUpdates(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	ss := NewSettingsService(s)

	got, err := ss.UpdateBranding(ctx, Branding{CompanyName: " Acme ", CompanyContact: "hi@acme.io"})
	if err != nil {
		t.Fatalf("update branding: %v", err)
	}
	if got.CompanyName != "Acme" || got.Theme != domain.ThemePurple {
		t.Fatalf("unexpected settings: %+v", got)
	}
	if _, err := ss.UpdateBranding(ctx, Branding{Logo: "http://x/logo.png"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid logo, got %v", err)
	}

	if _, err := ss.UpdateDisplay(ctx, Display{ShowTax: false, ShowDiscount: true, InvoiceTitle: "Bill"}); err != nil {
		t.Fatalf("update display: %v", err)
	}
	if st := ss.Get(ctx); st.ShowTax || st.InvoiceTitle != "Bill" || st.CompanyName != "Acme" {
		t.Fatalf("display update lost fields: %+v", st)
	}

	if _, err := ss.UpdateAppearance(ctx, Appearance{Theme: "pink", FontFamily: domain.FontSans}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid theme, got %v", err)
	}
	if _, err := ss.UpdateAppearance(ctx, Appearance{Theme: domain.ThemeGreen, FontFamily: domain.FontMono}); err != nil {
		t.Fatalf("update appearance: %v", err)
	}
	if st := s.Settings(); st.Theme != domain.ThemeGreen || st.FontFamily != domain.FontMono {
		t.Fatalf("appearance not stored: %+v", st)
	}
}

func TestSettingsPromotionValidation(t *testing.T) {
	ctx := context.Background()
	ss := NewSettingsService(newStore(t))
	ptr := func(s string) *string { return &s }

	cases := []domain.PromotionSetting{
		{Enabled: true, TriggerProductID: ptr("prod-logo")},
		{Enabled: true, TriggerProductID: ptr("prod-logo"), GiftProductID: ptr("prod-logo")},
		{Enabled: true, TriggerProductID: ptr("prod-logo"), GiftProductID: ptr("prod-missing")},
	}
	for i, p := range cases {
		if _, err := ss.UpdatePromotion(ctx, p); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected invalid input, got %v", i, err)
		}
	}

	if _, err := ss.UpdatePromotion(ctx, domain.PromotionSetting{Enabled: false, TriggerProductID: ptr("x")}); err != nil {
		t.Fatalf("disabled rule should not be validated: %v", err)
	}
	got, err := ss.UpdatePromotion(ctx, domain.PromotionSetting{Enabled: true, TriggerProductID: ptr("prod-logo"), GiftProductID: ptr("prod-seo")})
	if err != nil {
		t.Fatalf("update promotion: %v", err)
	}
	if !got.Promotion.Active() {
		t.Fatalf("expected active promotion")
	}
}

func TestApplyTemplate(t *testing.T) {
	ctx := context.Background()
	ss := NewSettingsService(newStore(t))
	before := ss.Get(ctx)

	got, err := ss.ApplyTemplate(ctx, "classic-corporate")
	if err != nil {
		t.Fatalf("apply template: %v", err)
	}
	if got.Theme != domain.ThemeClassic || got.FontFamily != domain.FontSerif || got.CompanyName != "The Foundation Inc." {
		t.Fatalf("template not applied: %+v", got)
	}
	if got.ShowTax != before.ShowTax || got.ShowDiscount != before.ShowDiscount {
		t.Fatalf("template must not touch toggles")
	}
	if _, err := ss.ApplyTemplate(ctx, "neon"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected unknown template, got %v", err)
	}
	if n := len(Templates()); n != 4 {
		t.Fatalf("expected 4 templates, got %d", n)
	}
}

func TestReplaceSettings(t *testing.T) {
	ctx := context.Background()
	ss := NewSettingsService(newStore(t))

	next := domain.DefaultSettings()
	next.FontFamily = "comic"
	if _, err := ss.Replace(ctx, next); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid font, got %v", err)
	}
	next.FontFamily = domain.FontSerif
	next.CompanyName = "Replaced"
	if _, err := ss.Replace(ctx, next); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if ss.Get(ctx).CompanyName != "Replaced" {
		t.Fatalf("settings not replaced")
	}
}
