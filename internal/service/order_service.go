package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"serviq/internal/domain"
	"serviq/internal/extract"
	"serviq/internal/store"
)

// OrderInput поля заказа, которые задаёт пользователь
type OrderInput struct {
	Customer domain.Customer    `json:"customer"`
	Items    []domain.OrderItem `json:"items"`
	Status   domain.OrderStatus `json:"status,omitempty"`
	Discount *float64           `json:"discount,omitempty"`
}

// OrderService реализует логику заказов: создание, правка, отмена, пакетный ввод
type OrderService struct {
	store     *store.Store
	extractor *extract.Extractor
	gate      *Gate
	log       *zap.Logger
	now       func() time.Time
}

func NewOrderService(s *store.Store, extractor *extract.Extractor, gate *Gate, log *zap.Logger) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	if gate == nil {
		gate = NewGate()
	}
	return &OrderService{store: s, extractor: extractor, gate: gate, log: log, now: time.Now}
}

// orderNumber: "SRV-" + last six digits of the unix millis. Not unique.
func orderNumber(t time.Time) string {
	return fmt.Sprintf("SRV-%06d", t.UnixMilli()%1_000_000)
}

// validateOrder проверяет ввод и возвращает очищенные позиции; ничего не сохраняет
func (s *OrderService) validateOrder(in OrderInput, requireContact bool) (OrderInput, error) {
	out := in
	out.Customer.Name = strings.TrimSpace(in.Customer.Name)
	out.Customer.Phone1 = strings.TrimSpace(in.Customer.Phone1)
	out.Customer.Phone2 = strings.TrimSpace(in.Customer.Phone2)
	out.Customer.Address = strings.TrimSpace(in.Customer.Address)
	if requireContact {
		if out.Customer.Phone1 == "" {
			return OrderInput{}, invalid("customerPhone1", "is required")
		}
		if out.Customer.Address == "" {
			return OrderInput{}, invalid("customerAddress", "is required")
		}
	}

	catalog := s.store.Products()
	out.Items = make([]domain.OrderItem, 0, len(in.Items))
	seen := make(map[string]bool, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			continue
		}
		if it.Price < 0 {
			return OrderInput{}, invalid("items.price", "must not be negative")
		}
		// id уникален в пределах заказа
		if it.ID == "" || seen[it.ID] {
			it.ID = uuid.NewString()
		}
		seen[it.ID] = true
		if it.Name == "" {
			if p, ok := domain.FindProduct(catalog, it.ProductID); ok {
				it.Name = p.Name
			}
		}
		out.Items = append(out.Items, it)
	}
	if len(out.Items) == 0 {
		return OrderInput{}, invalid("items", "at least one item with a product and a positive quantity is required")
	}

	if out.Status == "" {
		out.Status = domain.OrderStatusInProgress
	}
	if !out.Status.Valid() {
		return OrderInput{}, invalid("status", fmt.Sprintf("unknown status %q", out.Status))
	}

	out.Discount = nil
	if in.Discount != nil && s.store.Settings().ShowDiscount {
		d := *in.Discount
		if d < 0 || d > 100 {
			return OrderInput{}, invalid("discount", "must be between 0 and 100")
		}
		out.Discount = &d
	}
	return out, nil
}

func (s *OrderService) newOrder(in OrderInput, at time.Time) domain.Order {
	return domain.Order{
		ID:          uuid.NewString(),
		OrderNumber: orderNumber(at),
		Customer:    in.Customer,
		OrderDate:   at.UTC(),
		Items:       in.Items,
		Status:      in.Status,
		Discount:    in.Discount,
	}
}

// CreateOrder валидирует ввод, присваивает id, номер и дату
func (s *OrderService) CreateOrder(ctx context.Context, in OrderInput) (*domain.Order, error) {
	clean, err := s.validateOrder(in, true)
	if err != nil {
		return nil, err
	}
	o := s.newOrder(clean, s.now())
	if err := s.store.AddOrder(ctx, o); err != nil {
		return nil, err
	}
	s.log.Info("order created", zap.String("order_id", o.ID), zap.String("order_number", o.OrderNumber))
	return &o, nil
}

// UpdateOrder перезаписывает поля заказа, сохраняя id, номер и дату
func (s *OrderService) UpdateOrder(ctx context.Context, id string, in OrderInput) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	existing, err := s.store.Order(id)
	if err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = existing.Status
	}
	clean, err := s.validateOrder(in, true)
	if err != nil {
		return nil, err
	}
	existing.Customer = clean.Customer
	existing.Items = clean.Items
	existing.Status = clean.Status
	existing.Discount = clean.Discount
	if err := s.store.ReplaceOrder(ctx, existing); err != nil {
		return nil, err
	}
	return &existing, nil
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	o, err := s.store.Order(id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderFilter фильтр списка заказов
type OrderFilter struct {
	Status domain.OrderStatus
	Query  string
}

// List returns orders newest first, optionally filtered by status and a
// case-insensitive match on number, customer name or phone.
func (s *OrderService) List(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, invalid("status", fmt.Sprintf("unknown status %q", f.Status))
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	all := s.store.Orders()
	out := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(o.OrderNumber), q) &&
			!strings.Contains(strings.ToLower(o.Customer.Name), q) &&
			!strings.Contains(o.Customer.Phone1, q) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.store.DeleteOrder(ctx, id)
}

// CancelOrder отменяет только заказ в работе; иначе ErrInvalidState
func (s *OrderService) CancelOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	o, err := s.store.Order(id)
	if err != nil {
		return nil, err
	}
	if o.Status != domain.OrderStatusInProgress {
		return nil, fmt.Errorf("%w: cannot cancel a %s order", ErrInvalidState, o.Status)
	}
	updated, err := s.store.SetOrderStatus(ctx, id, domain.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	s.log.Info("order cancelled", zap.String("order_id", id))
	return &updated, nil
}

// SetStatus выставляет статус без проверки перехода
func (s *OrderService) SetStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if id == "" || !status.Valid() {
		return nil, ErrInvalidInput
	}
	updated, err := s.store.SetOrderStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CreateBatch adds several in-progress orders at once. Customer contact fields
// are taken as given; every order still needs one valid item.
func (s *OrderService) CreateBatch(ctx context.Context, inputs []OrderInput) ([]domain.Order, error) {
	if len(inputs) == 0 {
		return nil, invalid("orders", "at least one order is required")
	}
	now := s.now()
	orders := make([]domain.Order, 0, len(inputs))
	for i, in := range inputs {
		in.Status = domain.OrderStatusInProgress
		clean, err := s.validateOrder(in, false)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", i+1, err)
		}
		// distinct numbers within one batch
		orders = append(orders, s.newOrder(clean, now.Add(time.Duration(i)*time.Millisecond)))
	}
	if err := s.store.AddOrders(ctx, orders); err != nil {
		return nil, err
	}
	s.log.Info("batch created", zap.Int("orders", len(orders)))
	return orders, nil
}

// ImportText extracts orders from free text and adds them as a batch.
func (s *OrderService) ImportText(ctx context.Context, text string) ([]domain.Order, error) {
	if s.extractor == nil {
		return nil, fmt.Errorf("%w: extraction is not configured", ErrInvalidState)
	}
	var created []domain.Order
	err := s.gate.Do("extract:batch", func() error {
		results, err := s.extractor.ExtractBatch(ctx, text, s.store.Products())
		if err != nil {
			return err
		}
		inputs := make([]OrderInput, 0, len(results))
		for _, r := range results {
			inputs = append(inputs, OrderInput{Customer: r.Customer, Items: r.Items})
		}
		created, err = s.CreateBatch(ctx, inputs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
