// Package navigator models the screen history as an explicit stack.
package navigator

import "sync"

// View identifies a screen.
type View string

const (
	ViewHome         View = "home"
	ViewDashboard    View = "dashboard"
	ViewList         View = "list"
	ViewForm         View = "form"
	ViewInvoice      View = "invoice"
	ViewSettings     View = "settings"
	ViewProducts     View = "products"
	ViewPostCreation View = "post-creation"
	ViewBatchForm    View = "batch-form"
)

var labels = map[View]string{
	ViewHome:         "Home",
	ViewDashboard:    "Dashboard",
	ViewList:         "Orders",
	ViewForm:         "Order form",
	ViewInvoice:      "Invoice",
	ViewSettings:     "Settings",
	ViewProducts:     "Products",
	ViewPostCreation: "Order created",
	ViewBatchForm:    "Batch import",
}

// Label returns the breadcrumb text for v.
func (v View) Label() string {
	if l, ok := labels[v]; ok {
		return l
	}
	return string(v)
}

// Navigator is a non-empty stack of views; the last entry is active.
// Duplicates are kept so the trail mirrors what the user actually did.
type Navigator struct {
	mu    sync.RWMutex
	stack []View
}

// New returns a navigator whose stack holds only root.
func New(root View) *Navigator {
	return &Navigator{stack: []View{root}}
}

// Navigate pushes v.
func (n *Navigator) Navigate(v View) {
	n.mu.Lock()
	n.stack = append(n.stack, v)
	n.mu.Unlock()
}

// GoBack pops the active view unless it is the root.
func (n *Navigator) GoBack() {
	n.mu.Lock()
	if len(n.stack) > 1 {
		n.stack = n.stack[:len(n.stack)-1]
	}
	n.mu.Unlock()
}

// GoBackTo truncates the stack to [0..i]. Negative indices clamp to the root;
// indices past the top leave the stack unchanged.
func (n *Navigator) GoBackTo(i int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if i < 0 {
		i = 0
	}
	if i >= len(n.stack) {
		return
	}
	n.stack = n.stack[:i+1]
}

// ResetTo replaces the whole history with v.
func (n *Navigator) ResetTo(v View) {
	n.mu.Lock()
	n.stack = []View{v}
	n.mu.Unlock()
}

// Current returns the active view.
func (n *Navigator) Current() View {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.stack[len(n.stack)-1]
}

// History returns a copy of the stack, root first.
func (n *Navigator) History() []View {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]View, len(n.stack))
	copy(out, n.stack)
	return out
}

// Breadcrumbs returns the labels of every entry, root first.
func (n *Navigator) Breadcrumbs() []string {
	h := n.History()
	out := make([]string, len(h))
	for i, v := range h {
		out[i] = v.Label()
	}
	return out
}
