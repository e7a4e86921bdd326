package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"serviq/internal/domain"
	"serviq/internal/invoice"
	"serviq/internal/navigator"
	"serviq/internal/service"
)

type menuItem struct {
	view navigator.View
	desc string
}

func (i menuItem) FilterValue() string { return i.view.Label() }
func (i menuItem) Title() string       { return i.view.Label() }
func (i menuItem) Description() string { return i.desc }

var menu = []list.Item{
	menuItem{navigator.ViewDashboard, "Revenue and recent orders"},
	menuItem{navigator.ViewList, "Browse, edit and cancel orders"},
	menuItem{navigator.ViewProducts, "Catalog"},
	menuItem{navigator.ViewSettings, "Invoice design templates"},
	menuItem{navigator.ViewBatchForm, "Create orders from free text"},
}

type orderItem struct {
	order domain.Order
}

func (i orderItem) FilterValue() string { return i.order.OrderNumber + " " + i.order.Customer.Name }
func (i orderItem) Title() string {
	return fmt.Sprintf("%s  %s", i.order.OrderNumber, i.order.Customer.Name)
}
func (i orderItem) Description() string {
	return fmt.Sprintf("%s · %s · %s", FormatStatus(i.order.Status),
		invoice.FormatDate(i.order.OrderDate), invoice.FormatCurrency(invoice.NetRevenue(i.order)))
}

type productItem struct {
	product domain.Product
}

func (i productItem) FilterValue() string { return i.product.Name }
func (i productItem) Title() string       { return i.product.Name }
func (i productItem) Description() string { return invoice.FormatCurrency(i.product.Price) }

type templateItem struct {
	tpl service.Template
}

func (i templateItem) FilterValue() string { return i.tpl.Name }
func (i templateItem) Title() string       { return i.tpl.Title }
func (i templateItem) Description() string { return i.tpl.Description }

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.Styles.Title = titleStyle
	return l
}
