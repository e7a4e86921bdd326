package promotion_test

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/cucumber/godog"

	"serviq/internal/domain"
	"serviq/internal/promotion"
)

type cartTestContext struct {
	catalog []domain.Product
	rule    domain.PromotionSetting
	isNew   bool
	items   []domain.OrderItem
	nextID  int
}

func (c *cartTestContext) reset() {
	c.catalog = nil
	c.rule = domain.PromotionSetting{}
	c.isNew = true
	c.items = nil
	c.nextID = 0
}

func (c *cartTestContext) reconcile() {
	c.items, _ = promotion.Reconcile(c.items, c.rule, c.catalog, c.isNew)
}

func (c *cartTestContext) theCatalogContains(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		price, err := strconv.ParseFloat(row.Cells[2].Value, 64)
		if err != nil {
			return err
		}
		c.catalog = append(c.catalog, domain.Product{ID: row.Cells[0].Value, Name: row.Cells[1].Value, Price: price})
	}
	return nil
}

func (c *cartTestContext) aPromotionWithTriggerAndGift(trigger, gift string) error {
	c.rule = domain.PromotionSetting{Enabled: true, TriggerProductID: &trigger, GiftProductID: &gift}
	return nil
}

func (c *cartTestContext) aDisabledPromotionWithTriggerAndGift(trigger, gift string) error {
	c.rule = domain.PromotionSetting{Enabled: false, TriggerProductID: &trigger, GiftProductID: &gift}
	return nil
}

func (c *cartTestContext) aNewOrderCart() error {
	c.isNew = true
	return nil
}

func (c *cartTestContext) anExistingOrderCart() error {
	c.isNew = false
	return nil
}

func (c *cartTestContext) iAddOf(qty int, productID string) error {
	p, ok := domain.FindProduct(c.catalog, productID)
	if !ok {
		return fmt.Errorf("unknown product %q", productID)
	}
	c.nextID++
	c.items = append(c.items, domain.OrderItem{
		ID:        strconv.Itoa(c.nextID),
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  qty,
		Price:     p.Price,
	})
	c.reconcile()
	return nil
}

func (c *cartTestContext) iRemove(productID string) error {
	out := c.items[:0:0]
	for _, it := range c.items {
		if it.ProductID == productID && !it.IsGift {
			continue
		}
		out = append(out, it)
	}
	c.items = out
	c.reconcile()
	return nil
}

func (c *cartTestContext) iReconcileMoreTimes(n int) error {
	for i := 0; i < n; i++ {
		c.reconcile()
	}
	return nil
}

func (c *cartTestContext) theCartHasGiftLinesFor(n int, gift string) error {
	got := 0
	for _, it := range c.items {
		if it.ID == promotion.GiftLineID(gift) {
			got++
		}
	}
	if got != n {
		return fmt.Errorf("expected %d gift lines, got %d (%+v)", n, got, c.items)
	}
	return nil
}

func (c *cartTestContext) theGiftLineIsPricedWithQuantity(price float64, qty int) error {
	for _, it := range c.items {
		if it.IsGift {
			if it.Price != price || it.Quantity != qty {
				return fmt.Errorf("gift line %+v", it)
			}
			return nil
		}
	}
	return fmt.Errorf("no gift line")
}

func (c *cartTestContext) theCartHasLines(n int) error {
	if len(c.items) != n {
		return fmt.Errorf("expected %d lines, got %d", n, len(c.items))
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the catalog contains:$`, tc.theCatalogContains)
	ctx.Step(`^a promotion with trigger "([^"]*)" and gift "([^"]*)"$`, tc.aPromotionWithTriggerAndGift)
	ctx.Step(`^a disabled promotion with trigger "([^"]*)" and gift "([^"]*)"$`, tc.aDisabledPromotionWithTriggerAndGift)
	ctx.Step(`^a new order cart$`, tc.aNewOrderCart)
	ctx.Step(`^an existing order cart$`, tc.anExistingOrderCart)

	ctx.Step(`^I add (\d+) of "([^"]*)"$`, tc.iAddOf)
	ctx.Step(`^I remove "([^"]*)"$`, tc.iRemove)
	ctx.Step(`^I reconcile (\d+) more times$`, tc.iReconcileMoreTimes)

	ctx.Step(`^the cart has (\d+) gift lines? for "([^"]*)"$`, tc.theCartHasGiftLinesFor)
	ctx.Step(`^the gift line is priced (\d+(?:\.\d+)?) with quantity (\d+)$`, tc.theGiftLineIsPricedWithQuantity)
	ctx.Step(`^the cart has (\d+) lines$`, tc.theCartHasLines)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/gift_promotion.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
