package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serviq/internal/config"
	"serviq/internal/service"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Storage: config.Storage{Backend: config.BackendBadger, DataDir: t.TempDir()},
		Export:  config.Export{Dir: t.TempDir(), Format: "png"},
		AI:      config.AI{Model: "gemini-2.5-flash"},
		Share:   config.Share{AppURL: "http://localhost:9091"},
	}
}

func TestNewWithoutAI(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	a, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.Len(t, a.Store.Orders(), 2)
	_, err = a.Orders.ImportText(ctx, "anything")
	require.ErrorIs(t, err, service.ErrInvalidState)

	files, err := a.Invoices.ExportByNumbers(ctx, []string{"SRV-8431"})
	require.NoError(t, err)
	assert.Equal(t, []string{"invoice-SRV-8431.png"}, files)
}

func TestDataSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Export.SettleDelay = 0

	a, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	ws := a.Workspace()
	o, _ := a.Store.FindByNumber("SRV-8430")
	_, err = ws.Cancel(ctx, o.ID)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := New(ctx, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	got, err := b.Store.Order(o.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", string(got.Status))
}

func TestOpenSlotsUnknown(t *testing.T) {
	_, err := OpenSlots(context.Background(), config.Storage{Backend: "floppy"}, nil)
	assert.Error(t, err)
}
