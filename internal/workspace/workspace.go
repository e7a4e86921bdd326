// Package workspace ties screen navigation to order actions for interactive
// front ends. Every handler performs its store change first and moves the
// navigator only when the change succeeded.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"serviq/internal/domain"
	"serviq/internal/navigator"
	"serviq/internal/service"
)

// ErrNoPendingDelete is returned by ConfirmDelete when nothing awaits confirmation.
var ErrNoPendingDelete = errors.New("no order awaiting delete confirmation")

// App is the interactive session state: the view stack plus the orders the
// current screens refer to.
type App struct {
	mu            sync.Mutex
	nav           *navigator.Navigator
	orders        *service.OrderService
	drafts        *service.DraftService
	settings      *service.SettingsService
	log           *zap.Logger
	selectedID    string
	editingID     string
	draftID       string
	pendingDelete string
	lastCreated   *domain.Order
}

func New(orders *service.OrderService, drafts *service.DraftService, settings *service.SettingsService, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		nav:      navigator.New(navigator.ViewHome),
		orders:   orders,
		drafts:   drafts,
		settings: settings,
		log:      log,
	}
}

func (a *App) Navigator() *navigator.Navigator { return a.nav }

func (a *App) Current() navigator.View { return a.nav.Current() }

func (a *App) SelectedOrderID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selectedID
}

func (a *App) EditingOrderID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.editingID
}

// LastCreated returns the order shown on the post-creation screen.
func (a *App) LastCreated() (domain.Order, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lastCreated == nil {
		return domain.Order{}, false
	}
	return a.lastCreated.Clone(), true
}

// Sidebar jumps to a top level view and clears the history.
func (a *App) Sidebar(v navigator.View) {
	a.nav.ResetTo(v)
}

func (a *App) Back() { a.nav.GoBack() }

// Crumb follows a breadcrumb.
func (a *App) Crumb(i int) { a.nav.GoBackTo(i) }

func (a *App) ViewInvoice(id string) {
	a.mu.Lock()
	a.selectedID = id
	a.mu.Unlock()
	a.nav.Navigate(navigator.ViewInvoice)
}

// StartNewOrder opens the form on a fresh draft.
func (a *App) StartNewOrder(ctx context.Context) (service.Draft, error) {
	d, err := a.drafts.NewDraft(ctx)
	if err != nil {
		return service.Draft{}, err
	}
	a.mu.Lock()
	a.editingID = ""
	a.draftID = d.ID
	a.mu.Unlock()
	a.nav.Navigate(navigator.ViewForm)
	return d, nil
}

// EditOrder opens the form on a draft of an existing order.
func (a *App) EditOrder(ctx context.Context, id string) (service.Draft, error) {
	d, err := a.drafts.EditDraft(ctx, id)
	if err != nil {
		return service.Draft{}, err
	}
	a.mu.Lock()
	a.editingID = id
	a.draftID = d.ID
	a.mu.Unlock()
	a.nav.Navigate(navigator.ViewForm)
	return d, nil
}

// LeaveForm drops the draft and returns to the previous screen.
func (a *App) LeaveForm(ctx context.Context, draftID string) {
	if err := a.drafts.Discard(ctx, draftID); err != nil {
		a.log.Debug("discard draft", zap.String("draft_id", draftID), zap.Error(err))
	}
	a.mu.Lock()
	a.editingID = ""
	a.draftID = ""
	a.mu.Unlock()
	a.nav.GoBack()
}

// SubmitDraft saves the form. A new order lands on the post-creation screen,
// an edit returns to where the form was opened from.
func (a *App) SubmitDraft(ctx context.Context, draftID string) (*domain.Order, error) {
	o, created, err := a.drafts.Submit(ctx, draftID)
	if err != nil {
		return nil, err
	}
	a.afterSave(o, created)
	return o, nil
}

// AddOrder creates an order from a complete input.
func (a *App) AddOrder(ctx context.Context, in service.OrderInput) (*domain.Order, error) {
	o, err := a.orders.CreateOrder(ctx, in)
	if err != nil {
		return nil, err
	}
	a.afterSave(o, true)
	return o, nil
}

// UpdateOrder saves an edit and goes back.
func (a *App) UpdateOrder(ctx context.Context, id string, in service.OrderInput) (*domain.Order, error) {
	o, err := a.orders.UpdateOrder(ctx, id, in)
	if err != nil {
		return nil, err
	}
	a.afterSave(o, false)
	return o, nil
}

func (a *App) afterSave(o *domain.Order, created bool) {
	a.mu.Lock()
	a.editingID = ""
	a.draftID = ""
	if created {
		cp := o.Clone()
		a.lastCreated = &cp
	}
	a.mu.Unlock()
	if created {
		a.nav.Navigate(navigator.ViewPostCreation)
		return
	}
	a.nav.GoBack()
}

// FinishPostCreation leaves the post-creation screen for the order list.
func (a *App) FinishPostCreation() {
	a.nav.ResetTo(navigator.ViewList)
}

// ImportBatch adds the orders found in text and shows the list.
func (a *App) ImportBatch(ctx context.Context, text string) ([]domain.Order, error) {
	orders, err := a.orders.ImportText(ctx, text)
	if err != nil {
		return nil, err
	}
	a.nav.ResetTo(navigator.ViewList)
	return orders, nil
}

// RequestDelete marks an order for deletion; ConfirmDelete performs it.
func (a *App) RequestDelete(id string) {
	a.mu.Lock()
	a.pendingDelete = id
	a.mu.Unlock()
}

func (a *App) PendingDelete() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pendingDelete
}

func (a *App) AbortDelete() {
	a.mu.Lock()
	a.pendingDelete = ""
	a.mu.Unlock()
}

// ConfirmDelete deletes the pending order. When the form is open it resets to
// the list, since the form may be showing the deleted order. The form's draft
// is discarded then, as is any edit draft of the deleted order.
func (a *App) ConfirmDelete(ctx context.Context) error {
	a.mu.Lock()
	id := a.pendingDelete
	a.mu.Unlock()
	if id == "" {
		return ErrNoPendingDelete
	}
	if err := a.orders.Delete(ctx, id); err != nil {
		return err
	}
	a.mu.Lock()
	a.pendingDelete = ""
	if a.selectedID == id {
		a.selectedID = ""
	}
	leavingForm := a.nav.Current() == navigator.ViewForm
	var staleDraft string
	if a.editingID == id || leavingForm {
		staleDraft = a.draftID
		a.editingID = ""
		a.draftID = ""
	}
	a.mu.Unlock()
	if staleDraft != "" {
		if err := a.drafts.Discard(ctx, staleDraft); err != nil {
			a.log.Debug("discard draft", zap.String("draft_id", staleDraft), zap.Error(err))
		}
	}
	if leavingForm {
		a.nav.ResetTo(navigator.ViewList)
	}
	a.log.Info("order deleted", zap.String("order_id", id))
	return nil
}

// CanCancel reports whether the cancel action is offered for o.
func CanCancel(o domain.Order) bool {
	return o.Status == domain.OrderStatusInProgress
}

// Cancel cancels an in-progress order.
func (a *App) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	o, err := a.orders.CancelOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	return o, nil
}

// SaveSettings stores the settings and goes back.
func (a *App) SaveSettings(ctx context.Context, s domain.InvoiceSettings) (domain.InvoiceSettings, error) {
	saved, err := a.settings.Replace(ctx, s)
	if err != nil {
		return domain.InvoiceSettings{}, err
	}
	a.nav.GoBack()
	return saved, nil
}
