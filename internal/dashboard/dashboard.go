// Package dashboard aggregates sales figures over the order list.
package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"serviq/internal/domain"
	"serviq/internal/invoice"
)

const (
	monthsShown = 6
	recentShown = 5
)

// MonthRevenue is the revenue of completed orders in one calendar month.
type MonthRevenue struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
}

// Summary показатели главной панели
type Summary struct {
	TotalRevenue      float64                    `json:"totalRevenue"`
	TotalOrders       int                        `json:"totalOrders"`
	AverageOrderValue float64                    `json:"averageOrderValue"`
	StatusCounts      map[domain.OrderStatus]int `json:"statusCounts"`
	RevenueByMonth    []MonthRevenue             `json:"revenueByMonth"`
	RecentOrders      []domain.Order             `json:"recentOrders"`
}

// Compute builds the summary. Orders are expected newest first, as the store
// keeps them; only completed orders count towards revenue.
func Compute(orders []domain.Order) Summary {
	s := Summary{
		TotalOrders:  len(orders),
		StatusCounts: map[domain.OrderStatus]int{},
	}
	revenue := decimal.Zero
	completed := 0
	byMonth := map[string]decimal.Decimal{}

	for _, o := range orders {
		s.StatusCounts[o.Status]++
		if o.Status != domain.OrderStatusCompleted {
			continue
		}
		net := decimal.NewFromFloat(invoice.NetRevenue(o))
		revenue = revenue.Add(net)
		completed++
		if o.OrderDate.IsZero() {
			continue
		}
		key := o.OrderDate.Format("2006-01")
		byMonth[key] = byMonth[key].Add(net)
	}

	s.TotalRevenue = revenue.InexactFloat64()
	if completed > 0 {
		s.AverageOrderValue = revenue.Div(decimal.NewFromInt(int64(completed))).InexactFloat64()
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	if len(months) > monthsShown {
		months = months[len(months)-monthsShown:]
	}
	s.RevenueByMonth = make([]MonthRevenue, 0, len(months))
	for _, m := range months {
		s.RevenueByMonth = append(s.RevenueByMonth, MonthRevenue{Month: m, Revenue: byMonth[m].InexactFloat64()})
	}

	n := recentShown
	if len(orders) < n {
		n = len(orders)
	}
	s.RecentOrders = make([]domain.Order, n)
	for i := 0; i < n; i++ {
		s.RecentOrders[i] = orders[i].Clone()
	}
	return s
}
