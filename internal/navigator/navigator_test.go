package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigator_Walkthrough(t *testing.T) {
	n := New(ViewHome)
	assert.Equal(t, []View{ViewHome}, n.History())

	n.Navigate(ViewList)
	assert.Equal(t, []View{ViewHome, ViewList}, n.History())

	n.Navigate(ViewForm)
	assert.Equal(t, []View{ViewHome, ViewList, ViewForm}, n.History())
	assert.Equal(t, ViewForm, n.Current())

	n.GoBack()
	assert.Equal(t, []View{ViewHome, ViewList}, n.History())

	n.GoBackTo(0)
	assert.Equal(t, []View{ViewHome}, n.History())

	n.ResetTo(ViewDashboard)
	assert.Equal(t, []View{ViewDashboard}, n.History())
}

func TestNavigator_GoBackOnRootIsNoop(t *testing.T) {
	n := New(ViewHome)
	n.GoBack()
	n.GoBack()
	assert.Equal(t, []View{ViewHome}, n.History())
}

func TestNavigator_GoBackToClamps(t *testing.T) {
	n := New(ViewHome)
	n.Navigate(ViewList)
	n.Navigate(ViewInvoice)

	n.GoBackTo(10)
	assert.Equal(t, []View{ViewHome, ViewList, ViewInvoice}, n.History())

	n.GoBackTo(2)
	assert.Equal(t, []View{ViewHome, ViewList, ViewInvoice}, n.History())

	n.GoBackTo(-3)
	assert.Equal(t, []View{ViewHome}, n.History())
}

func TestNavigator_DuplicatesArePushed(t *testing.T) {
	n := New(ViewHome)
	n.Navigate(ViewList)
	n.Navigate(ViewList)
	assert.Equal(t, []View{ViewHome, ViewList, ViewList}, n.History())
}

func TestNavigator_HistoryIsCopy(t *testing.T) {
	n := New(ViewHome)
	h := n.History()
	h[0] = ViewSettings
	assert.Equal(t, ViewHome, n.Current())
}

func TestNavigator_Breadcrumbs(t *testing.T) {
	n := New(ViewHome)
	n.Navigate(ViewList)
	n.Navigate(ViewInvoice)
	assert.Equal(t, []string{"Home", "Orders", "Invoice"}, n.Breadcrumbs())
	assert.Equal(t, "custom", View("custom").Label())
}
