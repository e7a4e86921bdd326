package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"serviq/internal/dashboard"
	"serviq/internal/domain"
	"serviq/internal/invoice"
	"serviq/internal/navigator"
	"serviq/internal/service"
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.breadcrumbs())
	b.WriteString("\n\n")

	switch m.ws.Current() {
	case navigator.ViewHome:
		b.WriteString(m.menu.View())
	case navigator.ViewDashboard:
		b.WriteString(m.dashboardView())
	case navigator.ViewList:
		b.WriteString(m.orders.View())
	case navigator.ViewInvoice:
		b.WriteString(m.invoiceView())
	case navigator.ViewForm:
		b.WriteString(m.formView())
	case navigator.ViewPostCreation:
		b.WriteString(m.postCreationView())
	case navigator.ViewSettings:
		b.WriteString(m.settingsView())
	case navigator.ViewProducts:
		b.WriteString(m.products.View())
	case navigator.ViewBatchForm:
		b.WriteString(titleStyle.Render("Batch import"))
		b.WriteString("\n")
		b.WriteString(m.text.View())
	}

	if id := m.ws.PendingDelete(); id != "" {
		b.WriteString("\n\n")
		b.WriteString(m.deleteDialog(id))
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m *Model) breadcrumbs() string {
	crumbs := m.ws.Navigator().Breadcrumbs()
	parts := make([]string, len(crumbs))
	for i, c := range crumbs {
		if i == len(crumbs)-1 {
			parts[i] = activeCrumbStyle.Render(c)
		} else {
			parts[i] = crumbStyle.Render(c)
		}
	}
	return strings.Join(parts, crumbStyle.Render(" › "))
}

func (m *Model) statusLine() string {
	switch {
	case m.busy != "":
		return infoStyle.Render(m.busy) + "\n"
	case m.err != nil:
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	case m.status != "":
		return successStyle.Render(m.status) + "\n"
	}
	return ""
}

func (m *Model) help() string {
	var keys [][2]string
	switch m.ws.Current() {
	case navigator.ViewHome:
		keys = [][2]string{{"enter", "open"}, {"1-5", "jump"}, {"q", "quit"}}
	case navigator.ViewList:
		keys = [][2]string{{"enter", "invoice"}, {"n", "new"}, {"e", "edit"}, {"c", "cancel"}, {"d", "delete"}, {"x/X", "export one/all"}}
	case navigator.ViewInvoice:
		keys = [][2]string{{"x", "export"}, {"e", "edit"}, {"d", "delete"}, {"esc", "back"}}
	case navigator.ViewForm:
		if m.focusCustomer {
			keys = [][2]string{{"tab", "items"}, {"ctrl+e", "fill from text"}, {"ctrl+s", "save"}}
		} else {
			keys = [][2]string{{"↑/↓", "row"}, {"←/→", "product"}, {"+/-", "qty"}, {"a/r", "add/remove"}, {"g", "gift"}, {"[/]", "discount"}, {"s", "status"}, {"tab", "customer"}, {"ctrl+s", "save"}}
		}
	case navigator.ViewPostCreation:
		keys = [][2]string{{"enter", "orders"}, {"v", "invoice"}}
	case navigator.ViewSettings:
		keys = [][2]string{{"enter", "apply template"}, {"t", "toggle tax"}, {"D", "toggle discount"}}
	case navigator.ViewBatchForm:
		keys = [][2]string{{"ctrl+s", "import"}, {"esc", "back"}}
	}
	keys = append(keys, [2]string{"ctrl+c", "quit"})
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = FormatKey(k[0], k[1])
	}
	return strings.Join(parts, "  ")
}

func (m *Model) deleteDialog(id string) string {
	label := id
	if o, err := m.svc.Orders.GetByID(m.ctx, id); err == nil {
		label = o.OrderNumber
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		errorStyle.Render("Delete order "+label+"?"),
		mutedStyle.Render("This cannot be undone."),
		"",
		FormatKey("y", "delete")+"  "+FormatKey("n", "keep"),
	)
	return boxStyle.BorderForeground(colorDanger).Render(body)
}

func (m *Model) dashboardView() string {
	orders, err := m.svc.Orders.List(m.ctx, service.OrderFilter{})
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	s := dashboard.Compute(orders)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Dashboard"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Revenue      %s\n", successStyle.Render(invoice.FormatCurrency(s.TotalRevenue)))
	fmt.Fprintf(&b, "Orders       %d\n", s.TotalOrders)
	fmt.Fprintf(&b, "Average      %s\n\n", invoice.FormatCurrency(s.AverageOrderValue))
	for _, st := range statusCycle {
		fmt.Fprintf(&b, "%-22s %d\n", FormatStatus(st), s.StatusCounts[st])
	}
	if len(s.RevenueByMonth) > 0 {
		b.WriteString("\n")
		for _, mr := range s.RevenueByMonth {
			fmt.Fprintf(&b, "%s  %s\n", mr.Month, invoice.FormatCurrency(mr.Revenue))
		}
	}
	if len(s.RecentOrders) > 0 {
		b.WriteString("\n" + mutedStyle.Render("Recent") + "\n")
		for _, o := range s.RecentOrders {
			fmt.Fprintf(&b, "%s  %s  %s\n", o.OrderNumber, o.Customer.Name, FormatStatus(o.Status))
		}
	}
	return b.String()
}

func itemsTable(items []domain.OrderItem, selected int) string {
	var b strings.Builder
	for i, it := range items {
		name := it.Name
		if name == "" {
			name = mutedStyle.Render("(choose product)")
		}
		amount := invoice.FormatCurrency(invoice.LineTotal(it))
		if it.IsGift {
			amount = successStyle.Render("Gift")
		}
		line := fmt.Sprintf("%-24s x%-3d %12s %12s", name, it.Quantity, invoice.FormatCurrency(it.Price), amount)
		switch {
		case i == selected:
			b.WriteString(selectedRowStyle.Render("› " + line))
		default:
			b.WriteString(rowStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func totalsBlock(t invoice.Totals, settings domain.InvoiceSettings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subtotal   %s\n", invoice.FormatCurrency(t.Subtotal))
	if settings.ShowDiscount && t.DiscountPercent > 0 {
		fmt.Fprintf(&b, "Discount   -%s (%g%%)\n", invoice.FormatCurrency(t.DiscountAmount), t.DiscountPercent)
	}
	if settings.ShowTax {
		fmt.Fprintf(&b, "Tax        %s\n", invoice.FormatCurrency(t.Tax))
	}
	fmt.Fprintf(&b, "%s", successStyle.Render("Total      "+invoice.FormatCurrency(t.Total)))
	return b.String()
}

func (m *Model) invoiceView() string {
	v, err := m.svc.Invoices.View(m.ctx, m.ws.SelectedOrderID())
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	o := v.Order
	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(v.Title),
		fmt.Sprintf("%s  ·  %s  ·  %s", o.OrderNumber, v.Date, FormatStatus(o.Status)),
		"",
		o.Customer.Name,
		mutedStyle.Render(strings.Join(nonEmpty(o.Customer.Phone1, o.Customer.Phone2), " / ")),
		mutedStyle.Render(strings.Join(nonEmpty(o.Customer.Governorate, o.Customer.Address), ", ")),
	)
	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		itemsTable(o.Items, -1),
		totalsBlock(v.Totals, v.Settings),
	)
	if v.Settings.FooterNotes != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", mutedStyle.Render(v.Settings.FooterNotes))
	}
	return boxStyle.Render(body)
}

func nonEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (m *Model) formView() string {
	if m.draft == nil {
		return mutedStyle.Render("No draft")
	}
	d := m.draft
	title := "New order"
	if !d.IsNew() {
		title = "Edit order"
		if o, err := m.svc.Orders.GetByID(m.ctx, d.OrderID); err == nil {
			title += " " + o.OrderNumber
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Status %s   Discount %g%%\n\n", FormatStatus(d.Status), d.Discount)
	b.WriteString(itemsTable(d.Items, m.rowCursor()))
	b.WriteString("\n")
	b.WriteString(m.customer.View())
	b.WriteString("\n\n")
	if _, t, err := m.svc.Drafts.Preview(m.ctx, d.ID); err == nil {
		b.WriteString(totalsBlock(t, m.svc.Settings.Get(m.ctx)))
	}
	return b.String()
}

// rowCursor hides the row marker while the contact box has focus.
func (m *Model) rowCursor() int {
	if m.focusCustomer {
		return -1
	}
	return m.row
}

func (m *Model) postCreationView() string {
	o, ok := m.ws.LastCreated()
	if !ok {
		return mutedStyle.Render("Nothing created yet")
	}
	t := invoice.Calculate(o, m.svc.Settings.Get(m.ctx))
	body := lipgloss.JoinVertical(lipgloss.Left,
		successStyle.Render("Order "+o.OrderNumber+" created"),
		"",
		o.Customer.Name,
		fmt.Sprintf("%d items · %s", len(o.Items), invoice.FormatCurrency(t.Total)),
	)
	return boxStyle.BorderForeground(colorSuccess).Render(body)
}

func (m *Model) settingsView() string {
	s := m.svc.Settings.Get(m.ctx)
	current := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Company   %s", s.CompanyName),
		fmt.Sprintf("Theme     %s / %s", s.Theme, s.FontFamily),
		fmt.Sprintf("Tax       %s", onOff(s.ShowTax)),
		fmt.Sprintf("Discount  %s", onOff(s.ShowDiscount)),
		fmt.Sprintf("Promotion %s", onOff(s.Promotion.Active())),
	)
	return lipgloss.JoinVertical(lipgloss.Left, boxStyle.Render(current), "", m.templates.View())
}

func onOff(b bool) string {
	if b {
		return successStyle.Render("on")
	}
	return mutedStyle.Render("off")
}
