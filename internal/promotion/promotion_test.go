package promotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serviq/internal/domain"
)

func ptr(s string) *string { return &s }

var catalog = []domain.Product{
	{ID: "T", Name: "Trigger", Price: 100},
	{ID: "G", Name: "Gift", Price: 40},
	{ID: "O", Name: "Other", Price: 10},
}

func rule(enabled bool, t, g *string) domain.PromotionSetting {
	return domain.PromotionSetting{Enabled: enabled, TriggerProductID: t, GiftProductID: g}
}

func countGifts(items []domain.OrderItem) int {
	n := 0
	for _, it := range items {
		if it.ID == GiftLineID("G") {
			n++
		}
	}
	return n
}

func TestReconcile_AddsGiftOnTrigger(t *testing.T) {
	items := []domain.OrderItem{
		{ID: "1", ProductID: "O", Quantity: 1, Price: 10},
		{ID: "2", ProductID: "T", Quantity: 2, Price: 100},
	}
	out, changed := Reconcile(items, rule(true, ptr("T"), ptr("G")), catalog, true)
	require.True(t, changed)
	require.Len(t, out, 3)
	assert.Equal(t, "1", out[0].ID, "existing order preserved")
	assert.Equal(t, domain.OrderItem{ID: "promo-G", ProductID: "G", Name: "Gift", Quantity: 1, Price: 40, IsGift: true}, out[2])
	assert.Len(t, items, 2, "input not mutated")
}

func TestReconcile_RemovesGiftWhenTriggerGone(t *testing.T) {
	items := []domain.OrderItem{
		{ID: "1", ProductID: "O", Quantity: 1, Price: 10},
		{ID: "promo-G", ProductID: "G", Quantity: 1, Price: 40, IsGift: true},
		{ID: "3", ProductID: "", Quantity: 1},
	}
	out, changed := Reconcile(items, rule(true, ptr("T"), ptr("G")), catalog, true)
	require.True(t, changed)
	assert.Equal(t, []domain.OrderItem{items[0], items[2]}, out)
	assert.Len(t, items, 3)
	assert.Equal(t, "promo-G", items[1].ID)
}

func TestReconcile_Idempotent(t *testing.T) {
	r := rule(true, ptr("T"), ptr("G"))
	items := []domain.OrderItem{{ID: "1", ProductID: "T", Quantity: 1, Price: 100}}
	for i := 0; i < 5; i++ {
		var changed bool
		items, changed = Reconcile(items, r, catalog, true)
		assert.Equal(t, i == 0, changed)
		assert.Equal(t, 1, countGifts(items))
	}
}

func TestReconcile_NoOpRules(t *testing.T) {
	items := []domain.OrderItem{{ID: "1", ProductID: "T", Quantity: 1, Price: 100}}
	cases := map[string]struct {
		rule  domain.PromotionSetting
		isNew bool
		cat   []domain.Product
	}{
		"disabled":          {rule(false, ptr("T"), ptr("G")), true, catalog},
		"trigger missing":   {rule(true, nil, ptr("G")), true, catalog},
		"gift missing":      {rule(true, ptr("T"), nil), true, catalog},
		"empty trigger":     {rule(true, ptr(""), ptr("G")), true, catalog},
		"same product":      {rule(true, ptr("T"), ptr("T")), true, catalog},
		"editing existing":  {rule(true, ptr("T"), ptr("G")), false, catalog},
		"gift not in stock": {rule(true, ptr("T"), ptr("G")), true, catalog[:1]},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			out, changed := Reconcile(items, tc.rule, tc.cat, tc.isNew)
			assert.False(t, changed)
			assert.Equal(t, items, out)
		})
	}
}

func TestReconcile_GiftFlaggedTriggerDoesNotCount(t *testing.T) {
	items := []domain.OrderItem{{ID: "1", ProductID: "T", Quantity: 1, Price: 0, IsGift: true}}
	out, changed := Reconcile(items, rule(true, ptr("T"), ptr("G")), catalog, true)
	assert.False(t, changed)
	assert.Equal(t, items, out)
}

func TestReconcile_KeepsManualGiftEdits(t *testing.T) {
	items := []domain.OrderItem{
		{ID: "1", ProductID: "T", Quantity: 1, Price: 100},
		{ID: "promo-G", ProductID: "G", Name: "Gift", Quantity: 3, Price: 5, IsGift: true},
	}
	out, changed := Reconcile(items, rule(true, ptr("T"), ptr("G")), catalog, true)
	assert.False(t, changed)
	assert.Equal(t, 3, out[1].Quantity)
	assert.Equal(t, 5.0, out[1].Price)
}
