package tables

import (
	"fmt"
	"time"

	"github.com/JonMunkholm/datatable/internal/core"
	"github.com/JonMunkholm/datatable/internal/datatable"
	"github.com/JonMunkholm/datatable/internal/source"
)

func init() {
	registerOrders()
}

func registerOrders() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   "orders",
			Group: "Operations",
			Label: "Orders",
			IDKey: "id",
		},
		Columns: []datatable.Column[core.Row]{
			datatable.MapColumn("order_no", "Order #", true),
			datatable.MapColumn("customer", "Customer", true).WithRenderer(customerCell),
			datatable.MapColumn("vendor", "Vendor", true),
			datatable.MapColumn("partner", "Delivery Partner", true),
			datatable.MapColumn("status", "Status", true),
			datatable.MapColumn("amount", "Amount", true).WithRenderer(currency),
			datatable.MapColumn("placed_at", "Placed", true).WithRenderer(shortDate),
		},
		Source:          source.NewMemory(orderRows()),
		DefaultSort:     datatable.SortState{Key: "placed_at", Direction: datatable.Descending},
		SearchAllFields: true,
		EmptyMessage:    "No orders found",
	})
}

// customerCell renders "name <phone>" when a phone number is on file.
func customerCell(value any, row core.Row) any {
	phone, _ := row["customer_phone"].(string)
	if phone == "" {
		return value
	}
	return fmt.Sprintf("%v <%s>", value, phone)
}

func orderRows() []core.Row {
	type order struct {
		no       int
		customer string
		phone    string
		vendor   string
		partner  string
		status   string
		amount   float64
		placed   time.Time
	}
	orders := []order{
		{1001, "Asha Rao", "+91 98450 11223", "Spice Route", "Ravi Kumar", "delivered", 842.50, day(2024, time.March, 1)},
		{1002, "Vikram Shah", "", "Green Bowl", "Meena Iyer", "delivered", 315.00, day(2024, time.March, 1)},
		{1003, "Neha Gupta", "+91 99001 44556", "Tandoor House", "Ravi Kumar", "cancelled", 1290.00, day(2024, time.March, 2)},
		{1004, "Arjun Mehta", "+91 90080 77881", "Spice Route", "Salim Khan", "delivered", 560.75, day(2024, time.March, 3)},
		{1005, "Priya Nair", "", "Dosa Corner", "Meena Iyer", "out_for_delivery", 220.00, day(2024, time.March, 4)},
		{1006, "Rahul Verma", "+91 98860 33445", "Green Bowl", "Anil Das", "preparing", 475.25, day(2024, time.March, 4)},
		{1007, "Kavya Reddy", "+91 97390 66778", "Biryani Bazaar", "Salim Khan", "delivered", 1580.00, day(2024, time.March, 5)},
		{1008, "Sanjay Pillai", "", "Tandoor House", "Ravi Kumar", "pending", 690.00, day(2024, time.March, 6)},
		{1009, "Divya Menon", "+91 94480 99001", "Dosa Corner", "Anil Das", "delivered", 185.50, day(2024, time.March, 6)},
		{1010, "Karan Joshi", "+91 95350 12121", "Biryani Bazaar", "Meena Iyer", "refunded", 940.00, day(2024, time.March, 7)},
		{1011, "Ananya Bose", "", "Spice Route", "Salim Khan", "delivered", 610.00, day(2024, time.March, 8)},
		{1012, "Rohit Sinha", "+91 93410 45454", "Green Bowl", "Ravi Kumar", "delivered", 398.00, day(2024, time.March, 9)},
		{1013, "Ishita Kapoor", "+91 96860 78787", "Tandoor House", "Anil Das", "out_for_delivery", 1125.00, day(2024, time.March, 10)},
		{1014, "Manish Patel", "", "Dosa Corner", "Meena Iyer", "delivered", 260.00, day(2024, time.March, 11)},
		{1015, "Sneha Kulkarni", "+91 98200 31313", "Biryani Bazaar", "Salim Khan", "pending", 1345.00, day(2024, time.March, 12)},
	}

	rows := make([]core.Row, len(orders))
	for i, o := range orders {
		no := fmt.Sprintf("ORD-%d", o.no)
		rows[i] = core.Row{
			"id":             rowID("orders", no),
			"order_no":       no,
			"customer":       o.customer,
			"customer_phone": o.phone,
			"vendor":         o.vendor,
			"partner":        o.partner,
			"status":         o.status,
			"amount":         o.amount,
			"placed_at":      o.placed,
		}
	}
	return rows
}
