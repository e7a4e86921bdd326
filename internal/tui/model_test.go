package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serviq/internal/app"
	"serviq/internal/config"
	"serviq/internal/domain"
	"serviq/internal/navigator"
	"serviq/internal/service"
)

func newModel(t *testing.T) (*Model, *app.App) {
	t.Helper()
	cfg := &config.Config{
		Storage: config.Storage{Backend: config.BackendMemory},
		Export:  config.Export{Dir: t.TempDir(), Format: "png"},
		Share:   config.Share{AppURL: "http://localhost:9091"},
	}
	a, err := app.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	m := New(context.Background(), a.Workspace(), Services{
		Orders:   a.Orders,
		Products: a.Products,
		Drafts:   a.Drafts,
		Settings: a.Settings,
		Invoices: a.Invoices,
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, a
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func TestHomeMenu(t *testing.T) {
	m, _ := newModel(t)
	assert.Equal(t, navigator.ViewHome, m.ws.Current())
	assert.Contains(t, m.View(), "Dashboard")

	press(m, "enter")
	assert.Equal(t, navigator.ViewDashboard, m.ws.Current())
	assert.Contains(t, m.View(), "Revenue")
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	cmd := press(m, "ctrl+c")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestListToInvoiceAndBack(t *testing.T) {
	m, _ := newModel(t)
	press(m, "2")
	require.Equal(t, navigator.ViewList, m.ws.Current())

	o, ok := m.selectedOrder()
	require.True(t, ok)
	press(m, "enter")
	assert.Equal(t, navigator.ViewInvoice, m.ws.Current())
	assert.Equal(t, o.ID, m.ws.SelectedOrderID())
	assert.Contains(t, m.View(), o.OrderNumber)
	assert.Equal(t, []string{"Orders", "Invoice"}, m.ws.Navigator().Breadcrumbs())

	press(m, "esc")
	assert.Equal(t, navigator.ViewList, m.ws.Current())
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, a := newModel(t)
	press(m, "2", "d")
	require.NotEmpty(t, m.ws.PendingDelete())
	assert.Contains(t, m.View(), "Delete order")

	press(m, "n")
	assert.Empty(t, m.ws.PendingDelete())
	assert.Len(t, a.Store.Orders(), 2)

	press(m, "d", "y")
	assert.Empty(t, m.ws.PendingDelete())
	assert.Len(t, a.Store.Orders(), 1)
	assert.Len(t, m.orders.Items(), 1)
}

func TestNewOrderFlow(t *testing.T) {
	m, a := newModel(t)
	press(m, "2", "n")
	require.Equal(t, navigator.ViewForm, m.ws.Current())
	require.NotNil(t, m.draft)
	assert.Len(t, m.draft.Items, 1)

	press(m, "a")
	assert.Len(t, m.draft.Items, 2)
	press(m, "r")
	assert.Len(t, m.draft.Items, 1)

	press(m, "l", "+")
	it := m.draft.Items[0]
	assert.Equal(t, "prod-logo", it.ProductID)
	assert.Equal(t, 1500.0, it.Price)
	assert.Equal(t, 2, it.Quantity)

	m.customer.SetValue(customerText(domain.Customer{
		Name:        "Mona Adel",
		Phone1:      "01001234567",
		Governorate: "Cairo",
		Address:     "12 Tahrir St",
	}))
	press(m, "ctrl+s")
	require.NoError(t, m.err)
	assert.Equal(t, navigator.ViewPostCreation, m.ws.Current())
	created, ok := m.ws.LastCreated()
	require.True(t, ok)
	assert.Equal(t, "Mona Adel", created.Customer.Name)
	assert.Contains(t, m.View(), created.OrderNumber)

	press(m, "enter")
	assert.Equal(t, navigator.ViewList, m.ws.Current())
	assert.Len(t, a.Store.Orders(), 3)
}

func TestNewOrder_ValidationKeepsForm(t *testing.T) {
	m, a := newModel(t)
	press(m, "2", "n", "l", "ctrl+s")
	assert.ErrorIs(t, m.err, service.ErrInvalidInput)
	assert.Equal(t, navigator.ViewForm, m.ws.Current())
	assert.Len(t, a.Store.Orders(), 2)
}

func TestLeaveFormDiscardsDraft(t *testing.T) {
	m, a := newModel(t)
	press(m, "2", "n")
	id := m.draft.ID
	press(m, "esc")
	assert.Equal(t, navigator.ViewList, m.ws.Current())
	assert.Nil(t, m.draft)
	_, err := a.Drafts.Get(context.Background(), id)
	assert.Error(t, err)
}

func TestCancelOnlyInProgress(t *testing.T) {
	m, a := newModel(t)
	press(m, "2")
	completed, err := a.Store.FindByNumber("SRV-8431")
	require.NoError(t, err)
	m.cancelOrder(completed)
	assert.Error(t, m.err)

	open, err := a.Store.FindByNumber("SRV-8430")
	require.NoError(t, err)
	m.cancelOrder(open)
	require.NoError(t, m.err)
	got, err := a.Store.Order(open.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, got.Status)
}

func TestBatchImportWithoutExtractor(t *testing.T) {
	m, _ := newModel(t)
	press(m, "5")
	require.Equal(t, navigator.ViewBatchForm, m.ws.Current())

	press(m, "Mona wants a logo")
	assert.Equal(t, "Mona wants a logo", m.text.Value())

	cmd := press(m, "ctrl+s")
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.ErrorIs(t, m.err, service.ErrInvalidState)
	assert.Equal(t, navigator.ViewBatchForm, m.ws.Current())
}

func TestExportSelected(t *testing.T) {
	m, _ := newModel(t)
	press(m, "2")
	o, _ := m.selectedOrder()
	cmd := press(m, "x")
	require.NotNil(t, cmd)
	m.Update(cmd())
	require.NoError(t, m.err)
	assert.Contains(t, m.status, "invoice-"+o.OrderNumber+".png")
}

func TestSettingsTemplate(t *testing.T) {
	m, a := newModel(t)
	press(m, "4")
	require.Equal(t, navigator.ViewSettings, m.ws.Current())

	press(m, "enter")
	require.NoError(t, m.err)
	first := service.Templates()[0]
	assert.Equal(t, first.Theme, a.Settings.Get(context.Background()).Theme)

	showTax := a.Settings.Get(context.Background()).ShowTax
	press(m, "t")
	assert.Equal(t, !showTax, a.Settings.Get(context.Background()).ShowTax)
}

func TestCustomerText(t *testing.T) {
	c := domain.Customer{Name: "Ali", Phone1: "0100", Phone2: "0111", Governorate: "Giza", Address: "Street 9"}
	assert.Equal(t, c, parseCustomer(customerText(c), domain.Customer{}))

	got := parseCustomer("phone1: 0122\nnonsense\nColor: red", c)
	assert.Equal(t, "0122", got.Phone1)
	assert.Equal(t, "Ali", got.Name)
}
