package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serviq/internal/domain"
)

func order(id string, status domain.OrderStatus, month time.Month, price float64, discount *float64) domain.Order {
	return domain.Order{
		ID:        id,
		OrderDate: time.Date(2024, month, 10, 0, 0, 0, 0, time.UTC),
		Status:    status,
		Items: []domain.OrderItem{
			{ID: "a", ProductID: "p", Price: price, Quantity: 1},
			{ID: "g", ProductID: "q", Price: 999, Quantity: 1, IsGift: true},
		},
		Discount: discount,
	}
}

func TestCompute_Revenue(t *testing.T) {
	ten := 10.0
	orders := []domain.Order{
		order("1", domain.OrderStatusCompleted, time.March, 100, nil),
		order("2", domain.OrderStatusCompleted, time.March, 200, &ten),
		order("3", domain.OrderStatusInProgress, time.March, 1000, nil),
		order("4", domain.OrderStatusCancelled, time.April, 1000, nil),
		order("5", domain.OrderStatusCompleted, time.April, 50, nil),
	}
	s := Compute(orders)

	assert.Equal(t, 5, s.TotalOrders)
	assert.Equal(t, 330.0, s.TotalRevenue)
	assert.Equal(t, 110.0, s.AverageOrderValue)
	assert.Equal(t, 3, s.StatusCounts[domain.OrderStatusCompleted])
	assert.Equal(t, 1, s.StatusCounts[domain.OrderStatusInProgress])
	assert.Equal(t, 1, s.StatusCounts[domain.OrderStatusCancelled])
	assert.Equal(t, []MonthRevenue{{"2024-03", 280}, {"2024-04", 50}}, s.RevenueByMonth)
	require.Len(t, s.RecentOrders, 5)
	assert.Equal(t, "1", s.RecentOrders[0].ID)
}

func TestCompute_LastSixMonthsOnly(t *testing.T) {
	var orders []domain.Order
	for m := time.January; m <= time.August; m++ {
		orders = append(orders, order(fmt.Sprint(m), domain.OrderStatusCompleted, m, float64(m), nil))
	}
	s := Compute(orders)
	require.Len(t, s.RevenueByMonth, 6)
	assert.Equal(t, "2024-03", s.RevenueByMonth[0].Month)
	assert.Equal(t, "2024-08", s.RevenueByMonth[5].Month)
	assert.Len(t, s.RecentOrders, 5)
}

func TestCompute_SkipsMissingDates(t *testing.T) {
	o := order("1", domain.OrderStatusCompleted, time.May, 10, nil)
	o.OrderDate = time.Time{}
	s := Compute([]domain.Order{o})
	assert.Equal(t, 10.0, s.TotalRevenue)
	assert.Empty(t, s.RevenueByMonth)
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)
	assert.Zero(t, s.TotalRevenue)
	assert.Zero(t, s.AverageOrderValue)
	assert.Empty(t, s.RevenueByMonth)
	assert.Empty(t, s.RecentOrders)
}
