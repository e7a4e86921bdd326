package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const slotKeyPrefix = "slot/"

// BadgerSlots хранит слоты во встроенной базе Badger
type BadgerSlots struct {
	db *badger.DB
}

var _ Slots = (*BadgerSlots)(nil)

// OpenBadger opens (or creates) a Badger database in dir. An empty dir opens an
// in-memory database.
func OpenBadger(dir string, logger *zap.Logger) (*BadgerSlots, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(badgerLogger{logger.Sugar()})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %q: %w", dir, err)
	}
	return &BadgerSlots{db: db}, nil
}

func slotKey(slot string) []byte {
	return []byte(slotKeyPrefix + slot)
}

func (b *BadgerSlots) Get(ctx context.Context, slot string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(slotKey(slot))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BadgerSlots) Put(ctx context.Context, slot string, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(slotKey(slot), value)
	})
}

func (b *BadgerSlots) PutMany(ctx context.Context, values map[string][]byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for slot, v := range values {
			if err := txn.Set(slotKey(slot), v); err != nil {
				return fmt.Errorf("set %s: %w", slot, err)
			}
		}
		return nil
	})
}

func (b *BadgerSlots) Close() error {
	return b.db.Close()
}

// badgerLogger adapts zap to badger.Logger.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(f string, v ...interface{})   { l.s.Errorf(f, v...) }
func (l badgerLogger) Warningf(f string, v ...interface{}) { l.s.Warnf(f, v...) }
func (l badgerLogger) Infof(f string, v ...interface{})    { l.s.Debugf(f, v...) }
func (l badgerLogger) Debugf(f string, v ...interface{})   { l.s.Debugf(f, v...) }
