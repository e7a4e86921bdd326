package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"serviq/internal/domain"
	"serviq/internal/store"
)

// ProductService инкапсулирует бизнес-логику вокруг каталога
type ProductService struct {
	store *store.Store
}

func NewProductService(s *store.Store) *ProductService {
	return &ProductService{store: s}
}

func validateProduct(p domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name", "is required")
	}
	if p.Price < 0 {
		return invalid("price", "must not be negative")
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	cp := p
	cp.ID = uuid.NewString()
	cp.Name = strings.TrimSpace(cp.Name)
	if err := s.store.AddProduct(ctx, cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	p, err := s.store.Product(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update меняет имя и цену; заказы хранят свои снимки и не затрагиваются
func (s *ProductService) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		return nil, ErrInvalidInput
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	cp := p
	cp.Name = strings.TrimSpace(cp.Name)
	if err := s.store.ReplaceProduct(ctx, cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.store.DeleteProduct(ctx, id)
}

func (s *ProductService) List(ctx context.Context, f store.ProductFilter) ([]domain.Product, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, invalid("price", "min is greater than max")
	}
	return s.store.ListProducts(f), nil
}
