package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serviq/internal/domain"
	"serviq/internal/navigator"
	"serviq/internal/repository"
	"serviq/internal/service"
	"serviq/internal/store"
)

const inProgressID = "f8e7d6c5b4a3d2c1b0a9"

func newApp(t *testing.T) (*App, *store.Store) {
	t.Helper()
	s, err := store.Open(context.Background(), repository.NewMemorySlots(), nil)
	require.NoError(t, err)
	orders := service.NewOrderService(s, nil, nil, nil)
	drafts := service.NewDraftService(s, orders, nil, nil, nil)
	return New(orders, drafts, service.NewSettingsService(s), nil), s
}

func fillDraft(t *testing.T, app *App, d service.Draft) {
	t.Helper()
	ctx := context.Background()
	_, err := app.drafts.SetProduct(ctx, d.ID, d.Items[0].ID, "prod-seo")
	require.NoError(t, err)
	_, err = app.drafts.SetCustomer(ctx, d.ID, domain.Customer{Name: "Nour", Phone1: "0100", Governorate: "Giza", Address: "Zamalek"})
	require.NoError(t, err)
}

func TestNewOrderFlow(t *testing.T) {
	ctx := context.Background()
	app, s := newApp(t)
	app.Sidebar(navigator.ViewList)

	d, err := app.StartNewOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, navigator.ViewForm, app.Current())

	fillDraft(t, app, d)
	o, err := app.SubmitDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, navigator.ViewPostCreation, app.Current())
	last, ok := app.LastCreated()
	require.True(t, ok)
	assert.Equal(t, o.ID, last.ID)
	assert.Len(t, s.Orders(), 3)

	app.FinishPostCreation()
	assert.Equal(t, []navigator.View{navigator.ViewList}, app.Navigator().History())
}

func TestSubmitFailureStaysOnForm(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp(t)
	d, err := app.StartNewOrder(ctx)
	require.NoError(t, err)

	_, err = app.SubmitDraft(ctx, d.ID)
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, navigator.ViewForm, app.Current())
}

func TestEditOrderGoesBack(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp(t)
	app.Sidebar(navigator.ViewList)
	app.ViewInvoice(inProgressID)

	d, err := app.EditOrder(ctx, inProgressID)
	require.NoError(t, err)
	assert.Equal(t, inProgressID, app.EditingOrderID())

	_, err = app.SubmitDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, navigator.ViewInvoice, app.Current())
	assert.Empty(t, app.EditingOrderID())
}

func TestConfirmDelete(t *testing.T) {
	ctx := context.Background()
	app, s := newApp(t)

	require.ErrorIs(t, app.ConfirmDelete(ctx), ErrNoPendingDelete)

	app.Sidebar(navigator.ViewList)
	d, err := app.EditOrder(ctx, inProgressID)
	require.NoError(t, err)
	app.RequestDelete(inProgressID)
	require.NoError(t, app.ConfirmDelete(ctx))

	assert.Equal(t, []navigator.View{navigator.ViewList}, app.Navigator().History())
	assert.Empty(t, app.PendingDelete())
	assert.Empty(t, app.EditingOrderID())
	_, err = app.drafts.Get(ctx, d.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Len(t, s.Orders(), 1)
}

func TestConfirmDeleteFromNewOrderFormDropsDraft(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp(t)
	app.Sidebar(navigator.ViewList)
	d, err := app.StartNewOrder(ctx)
	require.NoError(t, err)

	app.RequestDelete(inProgressID)
	require.NoError(t, app.ConfirmDelete(ctx))
	assert.Equal(t, navigator.ViewList, app.Current())
	_, err = app.drafts.Get(ctx, d.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestConfirmDeleteOutsideFormKeepsHistory(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp(t)
	app.Sidebar(navigator.ViewList)
	app.ViewInvoice(inProgressID)

	app.RequestDelete(inProgressID)
	require.NoError(t, app.ConfirmDelete(ctx))
	assert.Equal(t, navigator.ViewInvoice, app.Current())
	assert.Empty(t, app.SelectedOrderID())
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	app, s := newApp(t)

	o, _ := s.Order(inProgressID)
	assert.True(t, CanCancel(o))

	cancelled, err := app.Cancel(ctx, inProgressID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
	assert.False(t, CanCancel(*cancelled))

	_, err = app.Cancel(ctx, inProgressID)
	require.ErrorIs(t, err, service.ErrInvalidState)
}

func TestSaveSettingsGoesBack(t *testing.T) {
	ctx := context.Background()
	app, s := newApp(t)
	app.Sidebar(navigator.ViewDashboard)
	app.Navigator().Navigate(navigator.ViewSettings)

	next := s.Settings()
	next.InvoiceTitle = "Receipt"
	_, err := app.SaveSettings(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, navigator.ViewDashboard, app.Current())
	assert.Equal(t, "Receipt", s.Settings().InvoiceTitle)

	app.Navigator().Navigate(navigator.ViewSettings)
	next.Theme = "neon"
	_, err = app.SaveSettings(ctx, next)
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, navigator.ViewSettings, app.Current())
}

func TestLeaveFormDiscardsDraft(t *testing.T) {
	ctx := context.Background()
	app, _ := newApp(t)
	app.Sidebar(navigator.ViewList)
	d, err := app.StartNewOrder(ctx)
	require.NoError(t, err)

	app.LeaveForm(ctx, d.ID)
	assert.Equal(t, navigator.ViewList, app.Current())
	_, err = app.drafts.Get(ctx, d.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
