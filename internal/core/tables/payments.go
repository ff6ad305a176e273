package tables

import (
	"fmt"
	"time"

	"github.com/JonMunkholm/datatable/internal/core"
	"github.com/JonMunkholm/datatable/internal/datatable"
	"github.com/JonMunkholm/datatable/internal/source"
)

func init() {
	registerPayments()
}

func registerPayments() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   "payments",
			Group: "Finance",
			Label: "Payments",
		},
		Columns: []datatable.Column[core.Row]{
			datatable.MapColumn("reference", "Reference", true),
			datatable.MapColumn("order_no", "Order #", true),
			datatable.MapColumn("method", "Method", true),
			datatable.MapColumn("amount", "Amount", true).WithRenderer(currency),
			datatable.MapColumn("fee", "Fee", true).WithRenderer(currency),
			datatable.MapColumn("settled_at", "Settled", true).WithRenderer(shortDate),
		},
		Source:       source.NewMemory(paymentRows()),
		DefaultSort:  datatable.SortState{Key: "settled_at", Direction: datatable.Descending},
		EmptyMessage: "No payments found",
	})
}

func paymentRows() []core.Row {
	methods := []string{"upi", "card", "wallet", "cash"}
	amounts := []float64{842.50, 315.00, 560.75, 220.00, 475.25, 1580.00, 185.50, 610.00, 398.00, 260.00, 1125.00}

	rows := make([]core.Row, len(amounts))
	for i, amount := range amounts {
		ref := fmt.Sprintf("PAY-%05d", 7001+i)
		settled := day(2024, time.March, 2+i)
		var settledAt any = settled
		if i == len(amounts)-1 {
			// Not settled yet.
			settledAt = nil
		}
		rows[i] = core.Row{
			"id":         rowID("payments", ref),
			"reference":  ref,
			"order_no":   fmt.Sprintf("ORD-%d", 1001+i),
			"method":     methods[i%len(methods)],
			"amount":     amount,
			"fee":        float64(int(amount*2+0.5)) / 100, // 2% platform fee, rounded to cents
			"settled_at": settledAt,
		}
	}
	return rows
}
