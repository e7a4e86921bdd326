package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"serviq/internal/domain"
	"serviq/internal/extract"
	"serviq/internal/invoice"
	"serviq/internal/promotion"
	"serviq/internal/repository"
	"serviq/internal/store"
)

// Draft незавершённая форма заказа: новый заказ или правка существующего
type Draft struct {
	ID        string             `json:"id"`
	OrderID   string             `json:"orderId,omitempty"`
	Customer  domain.Customer    `json:"customer"`
	Items     []domain.OrderItem `json:"items"`
	Status    domain.OrderStatus `json:"status"`
	Discount  float64            `json:"discount"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// IsNew reports whether the draft composes a new order.
func (d Draft) IsNew() bool { return d.OrderID == "" }

func (d Draft) clone() Draft {
	cp := d
	cp.Items = make([]domain.OrderItem, len(d.Items))
	copy(cp.Items, d.Items)
	return cp
}

func (d Draft) input() OrderInput {
	discount := d.Discount
	return OrderInput{Customer: d.Customer, Items: d.Items, Status: d.Status, Discount: &discount}
}

// ItemPatch изменения одной строки; nil поля не трогаются
type ItemPatch struct {
	ProductID *string  `json:"productId,omitempty"`
	Quantity  *int     `json:"quantity,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	IsGift    *bool    `json:"isGift,omitempty"`
}

// DraftService держит формы заказов на сервере и согласует подарочную строку после каждого изменения
type DraftService struct {
	mu        sync.Mutex
	drafts    map[string]*Draft
	store     *store.Store
	orders    *OrderService
	extractor *extract.Extractor
	gate      *Gate
	log       *zap.Logger
}

func NewDraftService(s *store.Store, orders *OrderService, extractor *extract.Extractor, gate *Gate, log *zap.Logger) *DraftService {
	if log == nil {
		log = zap.NewNop()
	}
	if gate == nil {
		gate = NewGate()
	}
	return &DraftService{
		drafts:    make(map[string]*Draft),
		store:     s,
		orders:    orders,
		extractor: extractor,
		gate:      gate,
		log:       log,
	}
}

func blankItem() domain.OrderItem {
	return domain.OrderItem{ID: uuid.NewString(), Quantity: 1}
}

// NewDraft starts a new order form with one empty row.
func (s *DraftService) NewDraft(ctx context.Context) (Draft, error) {
	d := &Draft{
		ID:        uuid.NewString(),
		Customer:  domain.Customer{Governorate: domain.Governorates[0]},
		Items:     []domain.OrderItem{blankItem()},
		Status:    domain.OrderStatusInProgress,
		UpdatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.drafts[d.ID] = d
	s.mu.Unlock()
	return d.clone(), nil
}

// EditDraft opens an existing order for editing. Rows without a product id
// are matched to the catalog by name.
func (s *DraftService) EditDraft(ctx context.Context, orderID string) (Draft, error) {
	o, err := s.store.Order(orderID)
	if err != nil {
		return Draft{}, err
	}
	catalog := s.store.Products()
	items := make([]domain.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		if it.ProductID == "" {
			for _, p := range catalog {
				if p.Name == it.Name {
					it.ProductID = p.ID
					break
				}
			}
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		items = append(items, blankItem())
	}
	d := &Draft{
		ID:        uuid.NewString(),
		OrderID:   o.ID,
		Customer:  o.Customer,
		Items:     items,
		Status:    o.Status,
		Discount:  o.DiscountPercent(),
		UpdatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.drafts[d.ID] = d
	s.mu.Unlock()
	return d.clone(), nil
}

// Get returns a copy of the draft.
func (s *DraftService) Get(ctx context.Context, id string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return Draft{}, repository.ErrNotFound
	}
	return d.clone(), nil
}

// Discard drops a draft without saving.
func (s *DraftService) Discard(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.drafts, id)
	return nil
}

// mutate applies fn to the live draft under the lock and then reconciles the
// gift line against the current items, rule and catalog.
func (s *DraftService) mutate(id string, fn func(d *Draft, catalog []domain.Product) error) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return Draft{}, repository.ErrNotFound
	}
	catalog := s.store.Products()
	next := d.clone()
	if err := fn(&next, catalog); err != nil {
		return Draft{}, err
	}
	if items, changed := promotion.Reconcile(next.Items, s.store.Settings().Promotion, catalog, next.IsNew()); changed {
		s.log.Debug("gift line reconciled", zap.String("draft_id", id), zap.Int("items", len(items)))
		next.Items = items
	}
	next.UpdatedAt = time.Now().UTC()
	*d = next
	return next.clone(), nil
}

func itemIndex(items []domain.OrderItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// AddItem appends an empty row.
func (s *DraftService) AddItem(ctx context.Context, id string) (Draft, error) {
	return s.mutate(id, func(d *Draft, _ []domain.Product) error {
		d.Items = append(d.Items, blankItem())
		return nil
	})
}

// RemoveItem removes a row; the last remaining row cannot be removed.
func (s *DraftService) RemoveItem(ctx context.Context, id, itemID string) (Draft, error) {
	return s.mutate(id, func(d *Draft, _ []domain.Product) error {
		i := itemIndex(d.Items, itemID)
		if i < 0 {
			return repository.ErrNotFound
		}
		if len(d.Items) <= 1 {
			return fmt.Errorf("%w: an order needs at least one row", ErrInvalidState)
		}
		d.Items = append(d.Items[:i], d.Items[i+1:]...)
		return nil
	})
}

// UpdateItem applies a patch to one row: product first, then quantity,
// price and gift flag.
func (s *DraftService) UpdateItem(ctx context.Context, id, itemID string, patch ItemPatch) (Draft, error) {
	return s.mutate(id, func(d *Draft, catalog []domain.Product) error {
		i := itemIndex(d.Items, itemID)
		if i < 0 {
			return repository.ErrNotFound
		}
		it := d.Items[i]
		if patch.ProductID != nil {
			setProduct(&it, *patch.ProductID, catalog)
		}
		if patch.Quantity != nil {
			if *patch.Quantity < 0 {
				return invalid("quantity", "must not be negative")
			}
			it.Quantity = *patch.Quantity
		}
		if patch.Price != nil {
			if *patch.Price < 0 {
				return invalid("price", "must not be negative")
			}
			setPrice(&it, *patch.Price, catalog)
		}
		if patch.IsGift != nil {
			it.IsGift = *patch.IsGift
		}
		d.Items[i] = it
		return nil
	})
}

// setProduct snapshots name and price; an unknown product blanks both.
func setProduct(it *domain.OrderItem, productID string, catalog []domain.Product) {
	it.ProductID = productID
	if p, ok := domain.FindProduct(catalog, productID); ok {
		it.Name, it.Price = p.Name, p.Price
		return
	}
	it.Name, it.Price = "", 0
}

// setPrice selects the product when exactly one catalog entry has that price.
func setPrice(it *domain.OrderItem, price float64, catalog []domain.Product) {
	it.Price = price
	var match *domain.Product
	for i := range catalog {
		if catalog[i].Price == price {
			if match != nil {
				return
			}
			match = &catalog[i]
		}
	}
	if match != nil {
		it.ProductID, it.Name = match.ID, match.Name
	}
}

// SetCustomer replaces the customer block.
func (s *DraftService) SetCustomer(ctx context.Context, id string, c domain.Customer) (Draft, error) {
	return s.mutate(id, func(d *Draft, _ []domain.Product) error {
		if c.Governorate != "" && !domain.IsGovernorate(c.Governorate) {
			return invalid("customerGovernorate", fmt.Sprintf("unknown governorate %q", c.Governorate))
		}
		d.Customer = c
		return nil
	})
}

// SetStatus sets the status the order will be saved with.
func (s *DraftService) SetStatus(ctx context.Context, id string, status domain.OrderStatus) (Draft, error) {
	return s.mutate(id, func(d *Draft, _ []domain.Product) error {
		if !status.Valid() {
			return invalid("status", fmt.Sprintf("unknown status %q", status))
		}
		d.Status = status
		return nil
	})
}

// SetDiscount sets the discount percentage.
func (s *DraftService) SetDiscount(ctx context.Context, id string, pct float64) (Draft, error) {
	return s.mutate(id, func(d *Draft, _ []domain.Product) error {
		if pct < 0 || pct > 100 {
			return invalid("discount", "must be between 0 and 100")
		}
		d.Discount = pct
		return nil
	})
}

// ApplyExtraction fills the draft from free text. The model call runs outside
// the draft lock; a second call for the same draft meanwhile gets ErrBusy.
// On failure the draft is left as it was.
func (s *DraftService) ApplyExtraction(ctx context.Context, id, text string) (Draft, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	if !d.IsNew() {
		return Draft{}, fmt.Errorf("%w: extraction is only available for new orders", ErrInvalidState)
	}
	if s.extractor == nil {
		return Draft{}, fmt.Errorf("%w: extraction is not configured", ErrInvalidState)
	}

	var out Draft
	err = s.gate.Do("extract:draft:"+id, func() error {
		res, err := s.extractor.ExtractOrder(ctx, text, s.store.Products())
		if err != nil {
			s.log.Warn("extraction failed", zap.String("draft_id", id), zap.Error(err))
			return err
		}
		out, err = s.mutate(id, func(d *Draft, _ []domain.Product) error {
			c := res.Customer
			if c.Name != "" {
				d.Customer.Name = c.Name
			}
			if c.Phone1 != "" {
				d.Customer.Phone1 = c.Phone1
			}
			if c.Phone2 != "" {
				d.Customer.Phone2 = c.Phone2
			}
			if c.Governorate != "" {
				d.Customer.Governorate = c.Governorate
			}
			if c.Address != "" {
				d.Customer.Address = c.Address
			}
			d.Items = res.Items
			return nil
		})
		return err
	})
	if err != nil {
		return Draft{}, err
	}
	return out, nil
}

// Preview returns the order the draft would produce and its totals.
func (s *DraftService) Preview(ctx context.Context, id string) (domain.Order, invoice.Totals, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return domain.Order{}, invoice.Totals{}, err
	}
	o := domain.Order{
		ID:          d.OrderID,
		OrderNumber: "SRV-DRAFT",
		Customer:    d.Customer,
		OrderDate:   d.UpdatedAt,
		Items:       d.Items,
		Status:      d.Status,
	}
	if d.Discount > 0 {
		discount := d.Discount
		o.Discount = &discount
	}
	if !d.IsNew() {
		if existing, err := s.store.Order(d.OrderID); err == nil {
			o.OrderNumber = existing.OrderNumber
			o.OrderDate = existing.OrderDate
		}
	}
	return o, invoice.Calculate(o, s.store.Settings()), nil
}

// Submit validates and saves the draft. The draft is removed only on success;
// created reports whether a new order was added.
func (s *DraftService) Submit(ctx context.Context, id string) (order *domain.Order, created bool, err error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if d.IsNew() {
		order, err = s.orders.CreateOrder(ctx, d.input())
	} else {
		order, err = s.orders.UpdateOrder(ctx, d.OrderID, d.input())
	}
	if err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()
	return order, d.IsNew(), nil
}

func (s *DraftService) SetProduct(ctx context.Context, id, itemID, productID string) (Draft, error) {
	return s.UpdateItem(ctx, id, itemID, ItemPatch{ProductID: &productID})
}

func (s *DraftService) SetQuantity(ctx context.Context, id, itemID string, qty int) (Draft, error) {
	return s.UpdateItem(ctx, id, itemID, ItemPatch{Quantity: &qty})
}

func (s *DraftService) SetPrice(ctx context.Context, id, itemID string, price float64) (Draft, error) {
	return s.UpdateItem(ctx, id, itemID, ItemPatch{Price: &price})
}

func (s *DraftService) SetGift(ctx context.Context, id, itemID string, gift bool) (Draft, error) {
	return s.UpdateItem(ctx, id, itemID, ItemPatch{IsGift: &gift})
}
