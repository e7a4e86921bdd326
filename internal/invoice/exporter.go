package invoice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"serviq/internal/domain"
)

// DefaultSettleDelay is the pause before each render in a batch.
const DefaultSettleDelay = 500 * time.Millisecond

// Sink receives rendered files.
type Sink interface {
	Write(ctx context.Context, name string, data []byte) error
}

// DirSink writes files into a directory, creating it on first use.
type DirSink struct {
	Dir string
}

func (s DirSink) Write(ctx context.Context, name string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	return os.WriteFile(filepath.Join(s.Dir, name), data, 0o644)
}

// ExportError identifies the order a batch stopped at.
type ExportError struct {
	OrderNumber string
	Err         error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export invoice %s: %v", e.OrderNumber, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Exporter renders orders one at a time and hands the files to a sink.
type Exporter struct {
	renderer Renderer
	sink     Sink
	settle   time.Duration
	log      *zap.Logger
}

func NewExporter(r Renderer, sink Sink, settle time.Duration, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{renderer: r, sink: sink, settle: settle, log: log}
}

// Render renders a single order without writing it anywhere.
func (e *Exporter) Render(ctx context.Context, o domain.Order, settings domain.InvoiceSettings) ([]byte, string, error) {
	doc, err := NewDocument(o, settings)
	if err != nil {
		return nil, "", err
	}
	data, err := e.renderer.Render(ctx, doc)
	if err != nil {
		return nil, "", &ExportError{OrderNumber: o.OrderNumber, Err: err}
	}
	return data, Filename(o, e.renderer.Format()), nil
}

// ExportBatch exports orders strictly in sequence. Each order waits for the
// settle delay, is rendered and written before the next one starts. The first
// failure stops the batch; the names of the files written so far are returned.
func (e *Exporter) ExportBatch(ctx context.Context, orders []domain.Order, settings domain.InvoiceSettings) ([]string, error) {
	written := make([]string, 0, len(orders))
	for _, o := range orders {
		if e.settle > 0 {
			t := time.NewTimer(e.settle)
			select {
			case <-ctx.Done():
				t.Stop()
				return written, ctx.Err()
			case <-t.C:
			}
		}
		data, name, err := e.Render(ctx, o, settings)
		if err != nil {
			e.log.Error("render invoice", zap.String("order_number", o.OrderNumber), zap.Error(err))
			return written, err
		}
		if err := e.sink.Write(ctx, name, data); err != nil {
			e.log.Error("write invoice", zap.String("file", name), zap.Error(err))
			return written, &ExportError{OrderNumber: o.OrderNumber, Err: err}
		}
		e.log.Info("invoice exported", zap.String("file", name), zap.Int("bytes", len(data)))
		written = append(written, name)
	}
	return written, nil
}
