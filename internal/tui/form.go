package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"serviq/internal/domain"
	"serviq/internal/service"
	"serviq/internal/store"
)

var customerFields = []struct {
	label string
	get   func(*domain.Customer) *string
}{
	{"Name", func(c *domain.Customer) *string { return &c.Name }},
	{"Phone 1", func(c *domain.Customer) *string { return &c.Phone1 }},
	{"Phone 2", func(c *domain.Customer) *string { return &c.Phone2 }},
	{"Governorate", func(c *domain.Customer) *string { return &c.Governorate }},
	{"Address", func(c *domain.Customer) *string { return &c.Address }},
}

// customerText renders c as the editable "Label: value" block.
func customerText(c domain.Customer) string {
	lines := make([]string, len(customerFields))
	for i, f := range customerFields {
		lines[i] = f.label + ": " + *f.get(&c)
	}
	return strings.Join(lines, "\n")
}

// parseCustomer reads the "Label: value" block back. Unknown labels and lines
// without a colon are ignored; missing labels keep the value from base.
func parseCustomer(text string, base domain.Customer) domain.Customer {
	c := base
	for _, line := range strings.Split(text, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		label = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(label), " ", ""))
		for _, f := range customerFields {
			if strings.ToLower(strings.ReplaceAll(f.label, " ", "")) == label {
				*f.get(&c) = strings.TrimSpace(value)
			}
		}
	}
	return c
}

func (m *Model) loadDraft(d service.Draft) {
	m.draft = &d
	if m.row >= len(d.Items) {
		m.row = len(d.Items) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	m.customer.SetValue(customerText(d.Customer))
	m.customer.Blur()
	m.focusCustomer = false
}

func (m *Model) apply(d service.Draft, err error) {
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.draft = &d
	if m.row >= len(d.Items) {
		m.row = len(d.Items) - 1
	}
}

func (m *Model) currentItem() (domain.OrderItem, bool) {
	if m.draft == nil || m.row < 0 || m.row >= len(m.draft.Items) {
		return domain.OrderItem{}, false
	}
	return m.draft.Items[m.row], true
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.draft == nil {
		return m, nil
	}
	id := m.draft.ID
	it, hasItem := m.currentItem()

	switch msg.String() {
	case "tab":
		m.focusCustomer = true
		return m, m.customer.Focus()
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		if m.row < len(m.draft.Items)-1 {
			m.row++
		}
	case "a":
		m.apply(m.svc.Drafts.AddItem(m.ctx, id))
		m.row = len(m.draft.Items) - 1
	case "r":
		if hasItem {
			m.apply(m.svc.Drafts.RemoveItem(m.ctx, id, it.ID))
		}
	case "left", "h":
		if hasItem {
			m.cycleProduct(it, -1)
		}
	case "right", "l":
		if hasItem {
			m.cycleProduct(it, 1)
		}
	case "+", "=":
		if hasItem {
			m.apply(m.svc.Drafts.SetQuantity(m.ctx, id, it.ID, it.Quantity+1))
		}
	case "-":
		if hasItem && it.Quantity > 1 {
			m.apply(m.svc.Drafts.SetQuantity(m.ctx, id, it.ID, it.Quantity-1))
		}
	case "g":
		if hasItem {
			m.apply(m.svc.Drafts.SetGift(m.ctx, id, it.ID, !it.IsGift))
		}
	case "[":
		m.apply(m.svc.Drafts.SetDiscount(m.ctx, id, max(m.draft.Discount-5, 0)))
	case "]":
		m.apply(m.svc.Drafts.SetDiscount(m.ctx, id, min(m.draft.Discount+5, 100)))
	case "s":
		m.apply(m.svc.Drafts.SetStatus(m.ctx, id, nextStatus(m.draft.Status)))
	case "d":
		if !m.draft.IsNew() {
			m.ws.RequestDelete(m.draft.OrderID)
		}
	case "ctrl+s":
		return m, m.submit()
	case "ctrl+e":
		return m, m.extract()
	}
	return m, nil
}

var statusCycle = []domain.OrderStatus{
	domain.OrderStatusInProgress,
	domain.OrderStatusCompleted,
	domain.OrderStatusCancelled,
}

func nextStatus(s domain.OrderStatus) domain.OrderStatus {
	for i, st := range statusCycle {
		if st == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return statusCycle[0]
}

func (m *Model) cycleProduct(it domain.OrderItem, delta int) {
	catalog, err := m.svc.Products.List(m.ctx, store.ProductFilter{})
	if err != nil || len(catalog) == 0 {
		m.err = err
		return
	}
	i := -1
	for j, p := range catalog {
		if p.ID == it.ProductID {
			i = j
			break
		}
	}
	next := (i + delta + len(catalog)) % len(catalog)
	if i < 0 && delta > 0 {
		next = 0
	}
	m.apply(m.svc.Drafts.SetProduct(m.ctx, m.draft.ID, it.ID, catalog[next].ID))
}

// syncCustomer stores the contact block into the draft.
func (m *Model) syncCustomer() bool {
	c := parseCustomer(m.customer.Value(), m.draft.Customer)
	d, err := m.svc.Drafts.SetCustomer(m.ctx, m.draft.ID, c)
	if err != nil {
		m.err = err
		return false
	}
	m.draft = &d
	return true
}

func (m *Model) submit() tea.Cmd {
	if m.draft == nil || !m.syncCustomer() {
		return nil
	}
	o, err := m.ws.SubmitDraft(m.ctx, m.draft.ID)
	if err != nil {
		m.err = err
		return nil
	}
	m.draft = nil
	m.focusCustomer = false
	m.customer.Blur()
	m.setStatus(fmt.Sprintf("Saved %s", o.OrderNumber))
	m.refresh()
	return nil
}

// extract fills a new draft from the free text in the contact box.
func (m *Model) extract() tea.Cmd {
	if m.draft == nil {
		return nil
	}
	text := m.customer.Value()
	if strings.TrimSpace(text) == "" {
		m.err = fmt.Errorf("paste the customer message into the contact box first")
		return nil
	}
	m.busy = "Reading text..."
	ctx, drafts, id := m.ctx, m.svc.Drafts, m.draft.ID
	return func() tea.Msg {
		d, err := drafts.ApplyExtraction(ctx, id, text)
		return extractedMsg{draft: d, err: err}
	}
}
