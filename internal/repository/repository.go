package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound возвращается, когда слот не записан
var ErrNotFound = errors.New("not found")

// Имена слотов постоянного хранилища
const (
	SlotOrders   = "orders"
	SlotProducts = "products"
	SlotSettings = "invoiceSettings"

	// FlagOrdersInitialized выставляется после однократного заполнения заказов образцами
	FlagOrdersInitialized = "orders_initialized"
)

// Slots именованное key-value хранилище; каждое значение хранится как JSON документ
type Slots interface {
	Get(ctx context.Context, slot string) ([]byte, error)
	Put(ctx context.Context, slot string, value []byte) error
	// PutMany записывает все значения атомарно
	PutMany(ctx context.Context, values map[string][]byte) error
	Close() error
}

// LoadJSON reads slot into v. It reports false when the slot has never been written.
func LoadJSON(ctx context.Context, s Slots, slot string, v any) (bool, error) {
	raw, err := s.Get(ctx, slot)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read slot %s: %w", slot, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode slot %s: %w", slot, err)
	}
	return true, nil
}

// SaveJSON encodes v and writes it to slot.
func SaveJSON(ctx context.Context, s Slots, slot string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", slot, err)
	}
	if err := s.Put(ctx, slot, raw); err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	return nil
}

// HasFlag reports whether a sentinel slot exists.
func HasFlag(ctx context.Context, s Slots, flag string) (bool, error) {
	_, err := s.Get(ctx, flag)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
