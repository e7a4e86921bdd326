// Package extract turns free text into structured orders with the help of a
// generative model.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"serviq/internal/domain"
)

var (
	ErrEmptyPrompt       = errors.New("empty prompt")
	ErrNoMatchingItems   = errors.New("no items match the product catalog")
	ErrMalformedResponse = errors.New("malformed model response")
	ErrNoValidOrders     = errors.New("no valid orders found in text")
	ErrGeneratorFailure  = errors.New("generator request failed")
)

// maxQuantity bounds model quantities; larger values fall back to 1.
const maxQuantity = math.MaxInt32

// Request is a single structured-generation call.
type Request struct {
	Prompt            string
	SystemInstruction string
	// Batch asks for a JSON array of orders instead of a single object.
	Batch       bool
	Temperature *float32
}

// Generator returns the raw JSON text produced for req.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Result is one extracted order. Customer fields the model left out are empty.
type Result struct {
	Customer domain.Customer    `json:"customer"`
	Items    []domain.OrderItem `json:"items"`
}

type rawItem struct {
	ProductID string   `json:"productId"`
	Quantity  *float64 `json:"quantity"`
	IsGift    bool     `json:"isGift"`
}

type rawOrder struct {
	CustomerName        string    `json:"customerName"`
	CustomerPhone1      string    `json:"customerPhone1"`
	CustomerPhone2      string    `json:"customerPhone2"`
	CustomerGovernorate string    `json:"customerGovernorate"`
	CustomerAddress     string    `json:"customerAddress"`
	Items               []rawItem `json:"items"`
}

// Extractor maps model output onto the catalog.
type Extractor struct {
	gen Generator
	log *zap.Logger
}

func New(gen Generator, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{gen: gen, log: log}
}

// ExtractOrder extracts one order from text.
func (e *Extractor) ExtractOrder(ctx context.Context, text string, catalog []domain.Product) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyPrompt
	}
	out, err := e.gen.Generate(ctx, Request{Prompt: singlePrompt(text, catalog)})
	if err != nil {
		e.log.Warn("extraction request failed", zap.Error(err))
		return Result{}, fmt.Errorf("%w: %v", ErrGeneratorFailure, err)
	}
	var raw rawOrder
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &raw); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	res := mapOrder(raw, catalog)
	if len(res.Items) == 0 {
		return Result{}, ErrNoMatchingItems
	}
	e.log.Debug("order extracted", zap.Int("items", len(res.Items)), zap.Int("dropped", len(raw.Items)-len(res.Items)))
	return res, nil
}

// ExtractBatch extracts several orders. Orders without a single valid item are
// dropped; if none remain ErrNoValidOrders is returned.
func (e *Extractor) ExtractBatch(ctx context.Context, text string, catalog []domain.Product) ([]Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyPrompt
	}
	var zero float32
	out, err := e.gen.Generate(ctx, Request{
		Prompt:            batchPrompt(text, catalog),
		SystemInstruction: batchSystemInstruction,
		Batch:             true,
		Temperature:       &zero,
	})
	if err != nil {
		e.log.Warn("batch extraction request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGeneratorFailure, err)
	}
	var raws []rawOrder
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	results := make([]Result, 0, len(raws))
	for _, raw := range raws {
		res := mapOrder(raw, catalog)
		if len(res.Items) == 0 {
			continue
		}
		results = append(results, res)
	}
	if len(results) == 0 {
		return nil, ErrNoValidOrders
	}
	e.log.Info("batch extracted", zap.Int("orders", len(results)), zap.Int("dropped", len(raws)-len(results)))
	return results, nil
}

func mapOrder(raw rawOrder, catalog []domain.Product) Result {
	res := Result{
		Customer: domain.Customer{
			Name:    strings.TrimSpace(raw.CustomerName),
			Phone1:  strings.TrimSpace(raw.CustomerPhone1),
			Phone2:  strings.TrimSpace(raw.CustomerPhone2),
			Address: strings.TrimSpace(raw.CustomerAddress),
		},
		Items: make([]domain.OrderItem, 0, len(raw.Items)),
	}
	if domain.IsGovernorate(raw.CustomerGovernorate) {
		res.Customer.Governorate = raw.CustomerGovernorate
	}
	for _, it := range raw.Items {
		if it.ProductID == "" {
			continue
		}
		p, ok := domain.FindProduct(catalog, it.ProductID)
		if !ok {
			continue
		}
		qty := 1
		if it.Quantity != nil && *it.Quantity >= 1 && *it.Quantity <= maxQuantity {
			qty = int(*it.Quantity)
		}
		res.Items = append(res.Items, domain.OrderItem{
			ID:        uuid.NewString(),
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  qty,
			Price:     p.Price,
			IsGift:    it.IsGift,
		})
	}
	return res
}
