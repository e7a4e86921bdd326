package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serviq/internal/domain"
)

type fakeGenerator struct {
	out  string
	err  error
	reqs []Request
}

func (f *fakeGenerator) Generate(ctx context.Context, req Request) (string, error) {
	f.reqs = append(f.reqs, req)
	return f.out, f.err
}

var catalog = domain.SeedProducts()

func TestExtractOrder_MapsCatalog(t *testing.T) {
	gen := &fakeGenerator{out: ` {
		"customerName": "Omar Adel",
		"customerPhone1": "0111",
		"customerGovernorate": "Giza",
		"customerAddress": "Dokki",
		"items": [
			{"productId": "prod-logo", "quantity": 2},
			{"productId": "prod-unknown", "quantity": 1},
			{"productId": ""},
			{"productId": "prod-seo", "isGift": true}
		]
	} `}
	e := New(gen, nil)

	res, err := e.ExtractOrder(context.Background(), "Omar wants two logos and a free SEO package", catalog)
	require.NoError(t, err)
	assert.Equal(t, "Omar Adel", res.Customer.Name)
	assert.Equal(t, "Giza", res.Customer.Governorate)
	require.Len(t, res.Items, 2)

	assert.Equal(t, "prod-logo", res.Items[0].ProductID)
	assert.Equal(t, "Logo design", res.Items[0].Name)
	assert.Equal(t, 1500.0, res.Items[0].Price)
	assert.Equal(t, 2, res.Items[0].Quantity)
	assert.NotEmpty(t, res.Items[0].ID)

	assert.Equal(t, 1, res.Items[1].Quantity, "quantity defaults to 1")
	assert.True(t, res.Items[1].IsGift)
	assert.NotEqual(t, res.Items[0].ID, res.Items[1].ID)

	require.Len(t, gen.reqs, 1)
	assert.False(t, gen.reqs[0].Batch)
	assert.Contains(t, gen.reqs[0].Prompt, `"prod-logo"`)
}

func TestExtractOrder_QuantityOutOfRange(t *testing.T) {
	gen := &fakeGenerator{out: `{"items": [
		{"productId": "prod-logo", "quantity": 1e20},
		{"productId": "prod-seo", "quantity": 0.5},
		{"productId": "prod-ads", "quantity": 3}
	]}`}
	res, err := New(gen, nil).ExtractOrder(context.Background(), "lots of logos", catalog)
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, 1, res.Items[0].Quantity)
	assert.Equal(t, 1, res.Items[1].Quantity)
	assert.Equal(t, 3, res.Items[2].Quantity)
}

func TestExtractOrder_UnknownGovernorateIgnored(t *testing.T) {
	gen := &fakeGenerator{out: `{"customerGovernorate": "Atlantis", "items": [{"productId": "prod-ads"}]}`}
	res, err := New(gen, nil).ExtractOrder(context.Background(), "ads please", catalog)
	require.NoError(t, err)
	assert.Empty(t, res.Customer.Governorate)
}

func TestExtractOrder_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := New(&fakeGenerator{}, nil).ExtractOrder(ctx, "   ", catalog)
	assert.ErrorIs(t, err, ErrEmptyPrompt)

	_, err = New(&fakeGenerator{out: `{"items": [{"productId": "nope"}]}`}, nil).ExtractOrder(ctx, "x", catalog)
	assert.ErrorIs(t, err, ErrNoMatchingItems)

	_, err = New(&fakeGenerator{out: `not json`}, nil).ExtractOrder(ctx, "x", catalog)
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = New(&fakeGenerator{err: errors.New("quota exceeded")}, nil).ExtractOrder(ctx, "x", catalog)
	assert.ErrorIs(t, err, ErrGeneratorFailure)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestExtractBatch(t *testing.T) {
	gen := &fakeGenerator{out: `[
		{"customerName": "A", "items": [{"productId": "prod-website"}]},
		{"customerName": "B", "items": [{"productId": "missing"}]},
		{"customerName": "C", "items": [{"productId": "prod-ads", "quantity": 3}]}
	]`}
	results, err := New(gen, nil).ExtractBatch(context.Background(), "three orders", catalog)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].Customer.Name)
	assert.Equal(t, "C", results[1].Customer.Name)
	assert.Equal(t, 3, results[1].Items[0].Quantity)

	require.Len(t, gen.reqs, 1)
	req := gen.reqs[0]
	assert.True(t, req.Batch)
	assert.NotEmpty(t, req.SystemInstruction)
	require.NotNil(t, req.Temperature)
	assert.Zero(t, *req.Temperature)
}

func TestExtractBatch_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := New(&fakeGenerator{out: `[{"items": []}]`}, nil).ExtractBatch(ctx, "x", catalog)
	assert.ErrorIs(t, err, ErrNoValidOrders)

	_, err = New(&fakeGenerator{out: `{"items": []}`}, nil).ExtractBatch(ctx, "x", catalog)
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = New(&fakeGenerator{}, nil).ExtractBatch(ctx, "", catalog)
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestSchemaShape(t *testing.T) {
	s := orderSchema()
	assert.Contains(t, s.Required, "items")
	require.Contains(t, s.Properties, "items")
	assert.Equal(t, []string{"productId"}, s.Properties["items"].Items.Required)
}
