package extract

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrMissingAPIKey is returned by NewGemini without a key.
var ErrMissingAPIKey = errors.New("gemini api key is not configured")

// Gemini is a Generator backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a client for the Gemini developer API.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	schema := orderSchema()
	if req.Batch {
		schema = &genai.Schema{
			Type:        genai.TypeArray,
			Description: "All orders found in the text.",
			Items:       orderSchema(),
		}
	}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      req.Temperature,
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.SystemInstruction}}}
	}
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

func orderSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"customerName":        str("Full customer name"),
			"customerPhone1":      str("Primary customer phone"),
			"customerPhone2":      str("Secondary customer phone, if any"),
			"customerGovernorate": str("Customer governorate"),
			"customerAddress":     str("Detailed customer address"),
			"items": {
				Type:        genai.TypeArray,
				Description: "Order items. Match each mentioned item to the best available product and return its ID.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"productId": str("ID of the matching available product"),
						"quantity":  {Type: genai.TypeNumber, Description: "Item quantity, defaults to 1"},
						"isGift":    {Type: genai.TypeBoolean, Description: "Whether the item is a free gift, defaults to false"},
					},
					Required: []string{"productId"},
				},
			},
		},
		Required: []string{"customerName", "customerPhone1", "customerGovernorate", "customerAddress", "items"},
	}
}
