package service

import (
	"context"
	"errors"
	"testing"

	"serviq/internal/domain"
	"serviq/internal/repository"
	"serviq/internal/store"
)

func TestProductCRUD(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	ps := NewProductService(s)

	p, err := ps.Create(ctx, domain.Product{Name: "  Branding kit ", Price: 900})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" || p.Name != "Branding kit" {
		t.Fatalf("unexpected product: %+v", p)
	}

	got, err := ps.GetByID(ctx, p.ID)
	if err != nil || got.Price != 900 {
		t.Fatalf("get: %v %+v", err, got)
	}

	p.Price = 950
	if _, err := ps.Update(ctx, *p); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = ps.GetByID(ctx, p.ID)
	if got.Price != 950 {
		t.Fatalf("price not updated: %v", got.Price)
	}

	if err := ps.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := ps.GetByID(ctx, p.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProductValidation(t *testing.T) {
	ctx := context.Background()
	ps := NewProductService(newStore(t))

	if _, err := ps.Create(ctx, domain.Product{Name: " ", Price: 1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid name, got %v", err)
	}
	if _, err := ps.Create(ctx, domain.Product{Name: "X", Price: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid price, got %v", err)
	}
	if _, err := ps.Update(ctx, domain.Product{Name: "X"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input without id, got %v", err)
	}
	if _, err := ps.Update(ctx, domain.Product{ID: "missing", Name: "X"}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProductUpdate_KeepsOrderSnapshots(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	ps := NewProductService(s)

	if _, err := ps.Update(ctx, domain.Product{ID: "prod-seo", Name: "SEO pro", Price: 900}); err != nil {
		t.Fatalf("update: %v", err)
	}
	o, _ := s.Order(seededCompletedID)
	if o.Items[1].Name != "SEO package" || o.Items[1].Price != 750 {
		t.Fatalf("order snapshot changed: %+v", o.Items[1])
	}
}

func TestProductList(t *testing.T) {
	ctx := context.Background()
	ps := NewProductService(newStore(t))

	lo, hi := 1000.0, 2000.0
	got, err := ps.List(ctx, store.ProductFilter{MinPrice: &lo, MaxPrice: &hi})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 products, got %d", len(got))
	}
	if _, err := ps.List(ctx, store.ProductFilter{MinPrice: &hi, MaxPrice: &lo}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid range, got %v", err)
	}
}
