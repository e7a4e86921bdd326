// Package tui is the terminal front end. Screen changes go through the
// workspace so the breadcrumb trail matches what the user did.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"serviq/internal/domain"
	"serviq/internal/navigator"
	"serviq/internal/service"
	"serviq/internal/store"
	"serviq/internal/workspace"
)

// Services are the components the screens read from.
type Services struct {
	Orders   *service.OrderService
	Products *service.ProductService
	Drafts   *service.DraftService
	Settings *service.SettingsService
	Invoices *service.InvoiceService
}

type importedMsg struct {
	orders []domain.Order
	err    error
}

type extractedMsg struct {
	draft service.Draft
	err   error
}

type exportedMsg struct {
	files []string
	err   error
}

// Model is the root bubbletea model.
type Model struct {
	ctx context.Context
	ws  *workspace.App
	svc Services

	menu      list.Model
	orders    list.Model
	products  list.Model
	templates list.Model

	// customer holds the contact block on the form, text the batch input.
	customer      textarea.Model
	text          textarea.Model
	focusCustomer bool

	draft *service.Draft
	row   int

	busy   string
	status string
	err    error

	width, height int
}

func New(ctx context.Context, ws *workspace.App, svc Services) *Model {
	customer := textarea.New()
	customer.Placeholder = "Name: ...\nPhone 1: ...\nPhone 2: ...\nGovernorate: ...\nAddress: ..."
	customer.SetHeight(6)

	text := textarea.New()
	text.Placeholder = "Paste chat messages or notes describing one or more orders"
	text.SetHeight(10)

	tpls := service.Templates()
	items := make([]list.Item, len(tpls))
	for i, t := range tpls {
		items[i] = templateItem{t}
	}

	m := &Model{
		ctx:       ctx,
		ws:        ws,
		svc:       svc,
		menu:      newList("Serviq", menu),
		orders:    newList("Orders", nil),
		products:  newList("Products", nil),
		templates: newList("Invoice templates", items),
		customer:  customer,
		text:      text,
	}
	m.resize(80, 24)
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	listH := h - 6
	if listH < 4 {
		listH = 4
	}
	for _, l := range []*list.Model{&m.menu, &m.orders, &m.products, &m.templates} {
		l.SetSize(w, listH)
	}
	m.customer.SetWidth(w - 4)
	m.text.SetWidth(w - 4)
}

// refresh reloads the data of the current screen.
func (m *Model) refresh() {
	switch m.ws.Current() {
	case navigator.ViewList:
		orders, err := m.svc.Orders.List(m.ctx, service.OrderFilter{})
		if err != nil {
			m.err = err
			return
		}
		items := make([]list.Item, len(orders))
		for i, o := range orders {
			items[i] = orderItem{o}
		}
		m.orders.SetItems(items)
	case navigator.ViewProducts:
		ps, err := m.svc.Products.List(m.ctx, store.ProductFilter{})
		if err != nil {
			m.err = err
			return
		}
		items := make([]list.Item, len(ps))
		for i, p := range ps {
			items[i] = productItem{p}
		}
		m.products.SetItems(items)
	case navigator.ViewBatchForm:
		m.text.Focus()
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case importedMsg:
		m.busy = ""
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.text.Reset()
		m.text.Blur()
		m.setStatus(fmt.Sprintf("Imported %d orders", len(msg.orders)))
		m.refresh()
		return m, nil
	case extractedMsg:
		m.busy = ""
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.loadDraft(msg.draft)
		m.setStatus("Filled from text")
		return m, nil
	case exportedMsg:
		m.busy = ""
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Exported %s", strings.Join(msg.files, ", ")))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.err = nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		return m, tea.Quit
	}
	if m.ws.PendingDelete() != "" {
		return m.confirmDelete(k)
	}
	if m.typing() {
		return m.handleTyping(msg)
	}

	switch k {
	case "esc":
		m.back()
		return m, nil
	case "1", "2", "3", "4", "5":
		item := menu[k[0]-'1'].(menuItem)
		m.open(item.view)
		return m, nil
	}

	switch m.ws.Current() {
	case navigator.ViewHome:
		return m.updateHome(msg)
	case navigator.ViewList:
		return m.updateList(msg)
	case navigator.ViewInvoice:
		return m.updateInvoice(msg)
	case navigator.ViewForm:
		return m.updateForm(msg)
	case navigator.ViewPostCreation:
		return m.updatePostCreation(msg)
	case navigator.ViewSettings:
		return m.updateSettings(msg)
	case navigator.ViewProducts:
		var cmd tea.Cmd
		m.products, cmd = m.products.Update(msg)
		return m, cmd
	}
	return m, nil
}

// typing reports whether keys go to a text area.
func (m *Model) typing() bool {
	switch m.ws.Current() {
	case navigator.ViewForm:
		return m.focusCustomer
	case navigator.ViewBatchForm:
		return true
	}
	return false
}

func (m *Model) handleTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.ws.Current() == navigator.ViewBatchForm {
		switch msg.String() {
		case "esc":
			m.text.Blur()
			m.back()
			return m, nil
		case "ctrl+s":
			return m, m.importBatch()
		}
		m.text, cmd = m.text.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "tab", "esc":
		m.focusCustomer = false
		m.customer.Blur()
		return m, nil
	case "ctrl+s":
		return m, m.submit()
	case "ctrl+e":
		return m, m.extract()
	}
	m.customer, cmd = m.customer.Update(msg)
	return m, cmd
}

func (m *Model) open(v navigator.View) {
	if m.ws.Current() == navigator.ViewForm && m.draft != nil {
		m.ws.LeaveForm(m.ctx, m.draft.ID)
		m.draft = nil
	}
	m.ws.Sidebar(v)
	m.err = nil
	m.refresh()
}

func (m *Model) back() {
	if m.ws.Current() == navigator.ViewForm && m.draft != nil {
		m.ws.LeaveForm(m.ctx, m.draft.ID)
		m.draft = nil
	} else {
		m.ws.Back()
	}
	m.err = nil
	m.refresh()
}

func (m *Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		if it, ok := m.menu.SelectedItem().(menuItem); ok {
			m.open(it.view)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *Model) selectedOrder() (domain.Order, bool) {
	it, ok := m.orders.SelectedItem().(orderItem)
	if !ok {
		return domain.Order{}, false
	}
	return it.order, true
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "n" {
		d, err := m.ws.StartNewOrder(m.ctx)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.loadDraft(d)
		return m, nil
	}

	o, ok := m.selectedOrder()
	switch k {
	case "enter":
		if ok {
			m.ws.ViewInvoice(o.ID)
		}
		return m, nil
	case "e":
		if ok {
			m.editOrder(o.ID)
		}
		return m, nil
	case "d":
		if ok {
			m.ws.RequestDelete(o.ID)
		}
		return m, nil
	case "c":
		if ok {
			m.cancelOrder(o)
		}
		return m, nil
	case "x":
		if ok {
			return m, m.export([]string{o.ID})
		}
		return m, nil
	case "X":
		return m, m.export(nil)
	}
	var cmd tea.Cmd
	m.orders, cmd = m.orders.Update(msg)
	return m, cmd
}

func (m *Model) editOrder(id string) {
	d, err := m.ws.EditOrder(m.ctx, id)
	if err != nil {
		m.err = err
		return
	}
	m.loadDraft(d)
}

func (m *Model) cancelOrder(o domain.Order) {
	if !workspace.CanCancel(o) {
		m.err = fmt.Errorf("order %s is %s", o.OrderNumber, o.Status)
		return
	}
	if _, err := m.ws.Cancel(m.ctx, o.ID); err != nil {
		m.err = err
		return
	}
	m.setStatus(fmt.Sprintf("Cancelled %s", o.OrderNumber))
	m.refresh()
}

func (m *Model) confirmDelete(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "y", "enter":
		if err := m.ws.ConfirmDelete(m.ctx); err != nil {
			m.err = err
			m.ws.AbortDelete()
			return m, nil
		}
		switch {
		case m.ws.Current() == navigator.ViewList && m.draft != nil:
			m.draft = nil
		case m.ws.Current() == navigator.ViewInvoice && m.ws.SelectedOrderID() == "":
			m.ws.Back()
		}
		m.setStatus("Order deleted")
		m.refresh()
	case "n", "esc":
		m.ws.AbortDelete()
	}
	return m, nil
}

func (m *Model) updateInvoice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.ws.SelectedOrderID()
	switch msg.String() {
	case "x":
		return m, m.export([]string{id})
	case "e":
		m.editOrder(id)
	case "d":
		m.ws.RequestDelete(id)
	}
	return m, nil
}

func (m *Model) updatePostCreation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.ws.FinishPostCreation()
		m.refresh()
	case "v":
		if o, ok := m.ws.LastCreated(); ok {
			m.ws.ViewInvoice(o.ID)
		}
	}
	return m, nil
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		it, ok := m.templates.SelectedItem().(templateItem)
		if !ok {
			return m, nil
		}
		if _, err := m.svc.Settings.ApplyTemplate(m.ctx, it.tpl.Name); err != nil {
			m.err = err
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Applied %s", it.tpl.Title))
		m.ws.Back()
		m.refresh()
		return m, nil
	case "t", "D":
		s := m.svc.Settings.Get(m.ctx)
		if msg.String() == "t" {
			s.ShowTax = !s.ShowTax
		} else {
			s.ShowDiscount = !s.ShowDiscount
		}
		if _, err := m.ws.SaveSettings(m.ctx, s); err != nil {
			m.err = err
			return m, nil
		}
		m.setStatus("Settings saved")
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.templates, cmd = m.templates.Update(msg)
	return m, cmd
}

func (m *Model) importBatch() tea.Cmd {
	text := m.text.Value()
	if strings.TrimSpace(text) == "" {
		m.err = fmt.Errorf("nothing to import")
		return nil
	}
	m.busy = "Extracting orders..."
	ctx, ws := m.ctx, m.ws
	return func() tea.Msg {
		orders, err := ws.ImportBatch(ctx, text)
		return importedMsg{orders: orders, err: err}
	}
}

func (m *Model) export(ids []string) tea.Cmd {
	m.busy = "Exporting..."
	ctx, inv := m.ctx, m.svc.Invoices
	return func() tea.Msg {
		files, err := inv.ExportBatch(ctx, ids)
		return exportedMsg{files: files, err: err}
	}
}
