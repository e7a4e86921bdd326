// Package promotion keeps the single "buy X, get Y free" gift line of a cart
// in sync with the cart contents.
package promotion

import "serviq/internal/domain"

// GiftLinePrefix prefixes the derived id of the synthetic gift line.
const GiftLinePrefix = "promo-"

// GiftLineID returns the id of the gift line for gift product g.
func GiftLineID(g string) string {
	return GiftLinePrefix + g
}

// Reconcile adds the gift line when a non-gift item references the trigger
// product and removes it when none does. It returns the resulting items and
// whether they differ from the input; the input slice is never modified.
//
// Nothing happens for edits of existing orders (isNew false), for an inactive
// rule, or when the gift product is missing from the catalog. A present gift
// line is never rewritten, so manual quantity or price edits survive.
func Reconcile(items []domain.OrderItem, rule domain.PromotionSetting, catalog []domain.Product, isNew bool) ([]domain.OrderItem, bool) {
	if !isNew || !rule.Active() {
		return items, false
	}
	gift, ok := domain.FindProduct(catalog, rule.Gift())
	if !ok {
		return items, false
	}

	giftID := GiftLineID(gift.ID)
	trigger := rule.Trigger()
	hasTrigger := false
	giftAt := -1
	for i, it := range items {
		if it.ID == giftID {
			giftAt = i
			continue
		}
		if !it.IsGift && it.ProductID == trigger {
			hasTrigger = true
		}
	}

	switch {
	case hasTrigger && giftAt < 0:
		out := make([]domain.OrderItem, 0, len(items)+1)
		out = append(out, items...)
		out = append(out, domain.OrderItem{
			ID:        giftID,
			ProductID: gift.ID,
			Name:      gift.Name,
			Quantity:  1,
			Price:     gift.Price,
			IsGift:    true,
		})
		return out, true
	case !hasTrigger && giftAt >= 0:
		out := make([]domain.OrderItem, 0, len(items)-1)
		out = append(out, items[:giftAt]...)
		out = append(out, items[giftAt+1:]...)
		return out, true
	}
	return items, false
}
