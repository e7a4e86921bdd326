// Package store holds the application state (orders, products, invoice
// settings) and mirrors every mutation to the persistent slots.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"serviq/internal/domain"
	"serviq/internal/repository"
)

// Slice names a part of the state observers can subscribe to.
type Slice string

const (
	SliceOrders   Slice = "orders"
	SliceProducts Slice = "products"
	SliceSettings Slice = "settings"
)

// Listener is called after a mutation of a subscribed slice has been persisted.
type Listener func(Slice)

type subscription struct {
	slices map[Slice]bool
	fn     Listener
}

// Store is the single source of truth. Mutations persist first and only then
// replace the in-memory state, so a failed write leaves both sides unchanged.
type Store struct {
	mu       sync.RWMutex
	slots    repository.Slots
	log      *zap.Logger
	orders   []domain.Order
	products []domain.Product
	settings domain.InvoiceSettings

	subMu   sync.Mutex
	subs    map[int]subscription
	nextSub int
}

// ProductFilter фильтр списка товаров
type ProductFilter struct {
	NameSubstring string
	MinPrice      *float64
	MaxPrice      *float64
}

// Open loads all slots and seeds the missing ones. Orders are seeded only when
// the initialization sentinel is absent.
func Open(ctx context.Context, slots repository.Slots, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{slots: slots, log: log, subs: make(map[int]subscription)}
	seed := make(map[string][]byte)

	found, err := repository.LoadJSON(ctx, slots, repository.SlotProducts, &s.products)
	if err != nil {
		return nil, err
	}
	if !found {
		s.products = domain.SeedProducts()
		if seed[repository.SlotProducts], err = json.Marshal(s.products); err != nil {
			return nil, err
		}
	}

	found, err = repository.LoadJSON(ctx, slots, repository.SlotSettings, &s.settings)
	if err != nil {
		return nil, err
	}
	if !found {
		s.settings = domain.DefaultSettings()
		if seed[repository.SlotSettings], err = json.Marshal(s.settings); err != nil {
			return nil, err
		}
	}

	initialized, err := repository.HasFlag(ctx, slots, repository.FlagOrdersInitialized)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", repository.FlagOrdersInitialized, err)
	}
	if initialized {
		if _, err := repository.LoadJSON(ctx, slots, repository.SlotOrders, &s.orders); err != nil {
			return nil, err
		}
	} else {
		s.orders = domain.SampleOrders()
		if seed[repository.SlotOrders], err = json.Marshal(s.orders); err != nil {
			return nil, err
		}
		seed[repository.FlagOrdersInitialized] = []byte("true")
	}

	if len(seed) > 0 {
		if err := slots.PutMany(ctx, seed); err != nil {
			return nil, fmt.Errorf("seed slots: %w", err)
		}
		keys := make([]string, 0, len(seed))
		for k := range seed {
			keys = append(keys, k)
		}
		log.Info("seeded slots", zap.Strings("slots", keys))
	}
	if s.orders == nil {
		s.orders = []domain.Order{}
	}
	return s, nil
}

// Subscribe registers fn for the given slices (all slices when none given).
// The returned func removes the subscription.
func (s *Store) Subscribe(fn Listener, slices ...Slice) func() {
	sub := subscription{slices: make(map[Slice]bool), fn: fn}
	if len(slices) == 0 {
		slices = []Slice{SliceOrders, SliceProducts, SliceSettings}
	}
	for _, sl := range slices {
		sub.slices[sl] = true
	}
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(sl Slice) {
	s.subMu.Lock()
	fns := make([]Listener, 0, len(s.subs))
	for _, sub := range s.subs {
		if sub.slices[sl] {
			fns = append(fns, sub.fn)
		}
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(sl)
	}
}

// Orders returns a copy of all orders, newest first.
func (s *Store) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	return out
}

// Order returns one order by id.
func (s *Store) Order(id string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.orders, id)
	if i < 0 {
		return domain.Order{}, repository.ErrNotFound
	}
	return s.orders[i].Clone(), nil
}

// FindByNumber returns the first order with the given display number.
func (s *Store) FindByNumber(number string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.OrderNumber == number {
			return o.Clone(), nil
		}
	}
	return domain.Order{}, repository.ErrNotFound
}

// AddOrder prepends o.
func (s *Store) AddOrder(ctx context.Context, o domain.Order) error {
	return s.AddOrders(ctx, []domain.Order{o})
}

// AddOrders prepends orders keeping their relative order.
func (s *Store) AddOrders(ctx context.Context, orders []domain.Order) error {
	return s.mutateOrders(ctx, func(cur []domain.Order) ([]domain.Order, error) {
		next := make([]domain.Order, 0, len(cur)+len(orders))
		for _, o := range orders {
			next = append(next, o.Clone())
		}
		return append(next, cur...), nil
	})
}

// ReplaceOrder overwrites the order with the same id.
func (s *Store) ReplaceOrder(ctx context.Context, o domain.Order) error {
	return s.mutateOrders(ctx, func(cur []domain.Order) ([]domain.Order, error) {
		i := indexOf(cur, o.ID)
		if i < 0 {
			return nil, repository.ErrNotFound
		}
		next := copyOrders(cur)
		next[i] = o.Clone()
		return next, nil
	})
}

// DeleteOrder removes the order with id.
func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	return s.mutateOrders(ctx, func(cur []domain.Order) ([]domain.Order, error) {
		i := indexOf(cur, id)
		if i < 0 {
			return nil, repository.ErrNotFound
		}
		next := make([]domain.Order, 0, len(cur)-1)
		next = append(next, cur[:i]...)
		return append(next, cur[i+1:]...), nil
	})
}

// SetOrderStatus sets the status without checking the current one; callers
// decide which transitions are allowed.
func (s *Store) SetOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	var updated domain.Order
	err := s.mutateOrders(ctx, func(cur []domain.Order) ([]domain.Order, error) {
		i := indexOf(cur, id)
		if i < 0 {
			return nil, repository.ErrNotFound
		}
		next := copyOrders(cur)
		next[i] = next[i].Clone()
		next[i].Status = status
		updated = next[i].Clone()
		return next, nil
	})
	return updated, err
}

func (s *Store) mutateOrders(ctx context.Context, fn func([]domain.Order) ([]domain.Order, error)) error {
	s.mu.Lock()
	next, err := fn(s.orders)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := repository.SaveJSON(ctx, s.slots, repository.SlotOrders, next); err != nil {
		s.mu.Unlock()
		s.log.Error("persist orders", zap.Error(err))
		return err
	}
	s.orders = next
	s.mu.Unlock()
	s.notify(SliceOrders)
	return nil
}

func indexOf(orders []domain.Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}

func copyOrders(in []domain.Order) []domain.Order {
	out := make([]domain.Order, len(in))
	copy(out, in)
	return out
}

// Products returns a copy of the catalog.
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Product returns one catalog entry.
func (s *Store) Product(id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := domain.FindProduct(s.products, id)
	if !ok {
		return domain.Product{}, repository.ErrNotFound
	}
	return p, nil
}

// ListProducts фильтрует каталог по подстроке имени и диапазону цены
func (s *Store) ListProducts(f ProductFilter) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if !containsIgnoreCase(p.Name, f.NameSubstring) {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}

// AddProduct appends p.
func (s *Store) AddProduct(ctx context.Context, p domain.Product) error {
	return s.mutateProducts(ctx, func(cur []domain.Product) ([]domain.Product, error) {
		next := make([]domain.Product, 0, len(cur)+1)
		next = append(next, cur...)
		return append(next, p), nil
	})
}

// ReplaceProduct overwrites the product with the same id.
func (s *Store) ReplaceProduct(ctx context.Context, p domain.Product) error {
	return s.mutateProducts(ctx, func(cur []domain.Product) ([]domain.Product, error) {
		next := make([]domain.Product, len(cur))
		copy(next, cur)
		for i := range next {
			if next[i].ID == p.ID {
				next[i] = p
				return next, nil
			}
		}
		return nil, repository.ErrNotFound
	})
}

// DeleteProduct removes a product. Orders referencing it keep their snapshots.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.mutateProducts(ctx, func(cur []domain.Product) ([]domain.Product, error) {
		next := make([]domain.Product, 0, len(cur))
		for _, p := range cur {
			if p.ID != id {
				next = append(next, p)
			}
		}
		if len(next) == len(cur) {
			return nil, repository.ErrNotFound
		}
		return next, nil
	})
}

func (s *Store) mutateProducts(ctx context.Context, fn func([]domain.Product) ([]domain.Product, error)) error {
	s.mu.Lock()
	next, err := fn(s.products)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := repository.SaveJSON(ctx, s.slots, repository.SlotProducts, next); err != nil {
		s.mu.Unlock()
		s.log.Error("persist products", zap.Error(err))
		return err
	}
	s.products = next
	s.mu.Unlock()
	s.notify(SliceProducts)
	return nil
}

// Settings returns the current invoice settings.
func (s *Store) Settings() domain.InvoiceSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// SetSettings replaces the settings singleton.
func (s *Store) SetSettings(ctx context.Context, settings domain.InvoiceSettings) error {
	s.mu.Lock()
	next := settings.Clone()
	if err := repository.SaveJSON(ctx, s.slots, repository.SlotSettings, next); err != nil {
		s.mu.Unlock()
		s.log.Error("persist settings", zap.Error(err))
		return err
	}
	s.settings = next
	s.mu.Unlock()
	s.notify(SliceSettings)
	return nil
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
