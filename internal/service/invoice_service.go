package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"serviq/internal/domain"
	"serviq/internal/invoice"
	"serviq/internal/store"
)

// InvoiceView данные счёта для клиента API: суммы, QR и ссылки "поделиться"
type InvoiceView struct {
	Order      domain.Order                `json:"order"`
	Settings   domain.InvoiceSettings      `json:"settings"`
	Totals     invoice.Totals              `json:"totals"`
	Title      string                      `json:"title"`
	Date       string                      `json:"date"`
	PhoneQR    string                      `json:"phoneQr"`
	SummaryQR  string                      `json:"summaryQr"`
	Message    string                      `json:"message"`
	ShareLinks map[invoice.Platform]string `json:"shareLinks"`
}

// InvoiceService рендерит и экспортирует счета
type InvoiceService struct {
	store    *store.Store
	gate     *Gate
	renders  map[invoice.Format]invoice.Renderer
	exporter *invoice.Exporter
	appURL   string
	log      *zap.Logger
	now      func() time.Time
}

// NewInvoiceService wires the renderers; exporter is used for batch export
// and may be nil when the process never exports to disk.
func NewInvoiceService(s *store.Store, exporter *invoice.Exporter, gate *Gate, appURL string, log *zap.Logger, renderers ...invoice.Renderer) *InvoiceService {
	if log == nil {
		log = zap.NewNop()
	}
	if gate == nil {
		gate = NewGate()
	}
	rs := make(map[invoice.Format]invoice.Renderer, len(renderers))
	for _, r := range renderers {
		rs[r.Format()] = r
	}
	return &InvoiceService{store: s, gate: gate, renders: rs, exporter: exporter, appURL: appURL, log: log, now: time.Now}
}

// View builds the invoice view of an order.
func (s *InvoiceService) View(ctx context.Context, orderID string) (*InvoiceView, error) {
	o, err := s.store.Order(orderID)
	if err != nil {
		return nil, err
	}
	return s.view(o, s.store.Settings())
}

// PreviewView renders the fixed sample order against candidate settings.
func (s *InvoiceService) PreviewView(ctx context.Context, settings domain.InvoiceSettings) (*InvoiceView, error) {
	return s.view(PreviewOrder(s.now()), settings)
}

func (s *InvoiceService) view(o domain.Order, settings domain.InvoiceSettings) (*InvoiceView, error) {
	doc, err := invoice.NewDocument(o, settings)
	if err != nil {
		return nil, err
	}
	msg := invoice.ShareMessage(o, settings)
	links := make(map[invoice.Platform]string, 2)
	for _, p := range []invoice.Platform{invoice.PlatformWhatsApp, invoice.PlatformFacebook} {
		u, err := invoice.ShareURL(p, msg, s.appURL)
		if err != nil {
			return nil, err
		}
		links[p] = u
	}
	return &InvoiceView{
		Order:      o,
		Settings:   settings,
		Totals:     doc.Totals,
		Title:      doc.Title(),
		Date:       invoice.FormatDate(o.OrderDate),
		PhoneQR:    doc.PhoneQR,
		SummaryQR:  doc.SummaryQR,
		Message:    msg,
		ShareLinks: links,
	}, nil
}

// Render returns the rendered file and its name.
func (s *InvoiceService) Render(ctx context.Context, orderID string, f invoice.Format) ([]byte, string, error) {
	r, ok := s.renders[f]
	if !ok {
		return nil, "", invalid("format", fmt.Sprintf("unsupported format %q", f))
	}
	o, err := s.store.Order(orderID)
	if err != nil {
		return nil, "", err
	}
	doc, err := invoice.NewDocument(o, s.store.Settings())
	if err != nil {
		return nil, "", err
	}
	data, err := r.Render(ctx, doc)
	if err != nil {
		s.log.Error("render invoice", zap.String("order_id", orderID), zap.Error(err))
		return nil, "", &invoice.ExportError{OrderNumber: o.OrderNumber, Err: err}
	}
	return data, invoice.Filename(o, f), nil
}

// ExportBatch writes the invoices of the given orders, all orders when ids is
// empty. Only one batch export runs at a time.
func (s *InvoiceService) ExportBatch(ctx context.Context, ids []string) ([]string, error) {
	var orders []domain.Order
	if len(ids) == 0 {
		orders = s.store.Orders()
	} else {
		orders = make([]domain.Order, 0, len(ids))
		for _, id := range ids {
			o, err := s.store.Order(id)
			if err != nil {
				return nil, fmt.Errorf("order %s: %w", id, err)
			}
			orders = append(orders, o)
		}
	}
	return s.export(ctx, orders)
}

// ExportByNumbers resolves order numbers and exports them in the given order.
func (s *InvoiceService) ExportByNumbers(ctx context.Context, numbers []string) ([]string, error) {
	if len(numbers) == 0 {
		return s.ExportBatch(ctx, nil)
	}
	ids := make([]string, 0, len(numbers))
	for _, n := range numbers {
		o, err := s.store.FindByNumber(n)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", n, err)
		}
		ids = append(ids, o.ID)
	}
	return s.ExportBatch(ctx, ids)
}

func (s *InvoiceService) export(ctx context.Context, orders []domain.Order) ([]string, error) {
	if s.exporter == nil {
		return nil, fmt.Errorf("%w: export is not configured", ErrInvalidState)
	}
	var written []string
	err := s.gate.Do("export:batch", func() error {
		var err error
		written, err = s.exporter.ExportBatch(ctx, orders, s.store.Settings())
		return err
	})
	return written, err
}
