package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createSlotsTable = `CREATE TABLE IF NOT EXISTS serviq_slots (
	slot       TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const upsertSlot = `INSERT INTO serviq_slots (slot, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (slot) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

// PostgresSlots хранит слоты в одной таблице PostgreSQL
type PostgresSlots struct {
	pool *pgxpool.Pool
}

var _ Slots = (*PostgresSlots)(nil)

// OpenPostgres connects to dsn and makes sure the slots table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresSlots, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createSlotsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &PostgresSlots{pool: pool}, nil
}

func (p *PostgresSlots) Get(ctx context.Context, slot string) ([]byte, error) {
	var raw []byte
	err := p.pool.QueryRow(ctx, `SELECT value FROM serviq_slots WHERE slot = $1`, slot).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (p *PostgresSlots) Put(ctx context.Context, slot string, value []byte) error {
	_, err := p.pool.Exec(ctx, upsertSlot, slot, value)
	return err
}

func (p *PostgresSlots) PutMany(ctx context.Context, values map[string][]byte) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	for slot, v := range values {
		if _, err := tx.Exec(ctx, upsertSlot, slot, v); err != nil {
			return fmt.Errorf("upsert %s: %w", slot, err)
		}
	}
	return tx.Commit(ctx)
}

func (p *PostgresSlots) Close() error {
	p.pool.Close()
	return nil
}
