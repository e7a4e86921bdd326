// Package app wires storage, services and renderers from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"serviq/internal/config"
	"serviq/internal/extract"
	"serviq/internal/invoice"
	"serviq/internal/repository"
	"serviq/internal/service"
	"serviq/internal/store"
	"serviq/internal/workspace"
)

// App holds the long lived components of a serviq process.
type App struct {
	Config   *config.Config
	Log      *zap.Logger
	Slots    repository.Slots
	Store    *store.Store
	Products *service.ProductService
	Orders   *service.OrderService
	Drafts   *service.DraftService
	Settings *service.SettingsService
	Invoices *service.InvoiceService
}

// OpenSlots opens the configured storage backend.
func OpenSlots(ctx context.Context, cfg config.Storage, log *zap.Logger) (repository.Slots, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return repository.NewMemorySlots(), nil
	case config.BackendBadger:
		s, err := repository.OpenBadger(cfg.DataDir, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendPostgres:
		s, err := repository.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// New builds the application. Extraction is disabled when no API key is set.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	slots, err := OpenSlots(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	st, err := store.Open(ctx, slots, log.Named("store"))
	if err != nil {
		_ = slots.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	var ex *extract.Extractor
	gen, err := extract.NewGemini(ctx, cfg.AI.APIKey, cfg.AI.Model)
	switch {
	case errors.Is(err, extract.ErrMissingAPIKey):
		log.Warn("ai.api_key not set, text extraction disabled")
	case err != nil:
		_ = slots.Close()
		return nil, fmt.Errorf("ai client: %w", err)
	default:
		ex = extract.New(gen, log.Named("extract"))
	}

	renderers := []invoice.Renderer{invoice.PNGRenderer{Scale: 2}, invoice.PDFRenderer{}}
	exportRenderer := renderers[0]
	if cfg.Export.Format == string(invoice.FormatPDF) {
		exportRenderer = renderers[1]
	}
	exporter := invoice.NewExporter(exportRenderer, invoice.DirSink{Dir: cfg.Export.Dir}, cfg.Export.SettleDelay, log.Named("export"))

	gate := service.NewGate()
	orders := service.NewOrderService(st, ex, gate, log.Named("orders"))
	return &App{
		Config:   cfg,
		Log:      log,
		Slots:    slots,
		Store:    st,
		Products: service.NewProductService(st),
		Orders:   orders,
		Drafts:   service.NewDraftService(st, orders, ex, gate, log.Named("drafts")),
		Settings: service.NewSettingsService(st),
		Invoices: service.NewInvoiceService(st, exporter, gate, cfg.Share.AppURL, log.Named("invoices"), renderers...),
	}, nil
}

// Workspace returns a fresh interactive session over the app services.
func (a *App) Workspace() *workspace.App {
	return workspace.New(a.Orders, a.Drafts, a.Settings, a.Log.Named("workspace"))
}

func (a *App) Close() error {
	return a.Slots.Close()
}
