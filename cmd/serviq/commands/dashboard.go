package commands

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"serviq/cmd/serviq/output"
	"serviq/internal/dashboard"
	"serviq/internal/domain"
	"serviq/internal/invoice"
	"serviq/internal/service"
)

var dashboardJSON bool

// dashboardCmd prints the revenue summary
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print revenue and order statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "Output in JSON format")
}

func runDashboard(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	orders, err := a.Orders.List(ctx, service.OrderFilter{})
	if err != nil {
		return err
	}
	s := dashboard.Compute(orders)

	if dashboardJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	output.Section("Dashboard")
	output.KeyValue("Revenue", invoice.FormatCurrency(s.TotalRevenue))
	output.KeyValue("Orders", s.TotalOrders)
	output.KeyValue("Average order", invoice.FormatCurrency(s.AverageOrderValue))

	output.Section("By status")
	for _, st := range []domain.OrderStatus{domain.OrderStatusInProgress, domain.OrderStatusCompleted, domain.OrderStatusCancelled} {
		output.KeyValue(string(st), s.StatusCounts[st])
	}

	if len(s.RevenueByMonth) > 0 {
		output.Section("Revenue by month")
		for _, m := range s.RevenueByMonth {
			output.KeyValue(m.Month, invoice.FormatCurrency(m.Revenue))
		}
	}

	if len(s.RecentOrders) > 0 {
		output.Section("Recent orders")
		for _, o := range s.RecentOrders {
			output.Muted("%s %s  %s  %s", output.StatusIcon(o.Status), o.OrderNumber, o.Customer.Name, invoice.FormatDate(o.OrderDate))
		}
	}
	return nil
}
