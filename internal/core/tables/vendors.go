package tables

import (
	"time"

	"github.com/JonMunkholm/datatable/internal/core"
	"github.com/JonMunkholm/datatable/internal/datatable"
	"github.com/JonMunkholm/datatable/internal/source"
)

func init() {
	registerVendors()
	registerPartners()
}

func registerVendors() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   "vendors",
			Group: "Marketplace",
			Label: "Vendors",
			IDKey: "id",
		},
		Columns: []datatable.Column[core.Row]{
			datatable.MapColumn("name", "Name", true),
			datatable.MapColumn("city", "City", true),
			datatable.MapColumn("cuisine", "Cuisine", true),
			datatable.MapColumn("rating", "Rating", true),
			datatable.MapColumn("active", "Active", true).WithRenderer(yesNo),
			datatable.MapColumn("joined_at", "Joined", true).WithRenderer(shortDate),
		},
		Source:       source.NewMemory(vendorRows()),
		DefaultSort:  datatable.SortState{Key: "name", Direction: datatable.Ascending},
		EmptyMessage: "No vendors found",
	})
}

func vendorRows() []core.Row {
	type vendor struct {
		name    string
		city    string
		cuisine string
		rating  float64
		active  bool
		joined  time.Time
	}
	vendors := []vendor{
		{"Spice Route", "Bengaluru", "North Indian", 4.5, true, day(2022, time.June, 14)},
		{"Green Bowl", "Bengaluru", "Salads", 4.2, true, day(2023, time.January, 9)},
		{"Tandoor House", "Mumbai", "Mughlai", 4.7, true, day(2021, time.November, 2)},
		{"Dosa Corner", "Chennai", "South Indian", 4.4, true, day(2022, time.February, 21)},
		{"Biryani Bazaar", "Hyderabad", "Hyderabadi", 4.8, true, day(2020, time.August, 30)},
		{"Chaat Street", "Delhi", "Street Food", 3.9, false, day(2023, time.May, 5)},
		{"Coastal Kitchen", "Kochi", "Seafood", 4.1, true, day(2023, time.September, 18)},
	}

	rows := make([]core.Row, len(vendors))
	for i, v := range vendors {
		rows[i] = core.Row{
			"id":        rowID("vendors", v.name),
			"name":      v.name,
			"city":      v.city,
			"cuisine":   v.cuisine,
			"rating":    v.rating,
			"active":    v.active,
			"joined_at": v.joined,
		}
	}
	return rows
}

func registerPartners() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   "delivery_partners",
			Group: "Marketplace",
			Label: "Delivery Partners",
			IDKey: "id",
		},
		Columns: []datatable.Column[core.Row]{
			datatable.MapColumn("name", "Name", true),
			datatable.MapColumn("phone", "Phone", false),
			datatable.MapColumn("vehicle", "Vehicle", true),
			datatable.MapColumn("deliveries", "Deliveries", true),
			datatable.MapColumn("online", "Online", true).WithRenderer(yesNo),
		},
		Source:        source.NewMemory(partnerRows()),
		DefaultSort:   datatable.SortState{Key: "deliveries", Direction: datatable.Descending},
		DisableFilter: true,
		EmptyMessage:  "No delivery partners found",
	})
}

func partnerRows() []core.Row {
	type partner struct {
		name       string
		phone      string
		vehicle    string
		deliveries int
		online     bool
	}
	partners := []partner{
		{"Ravi Kumar", "+91 98450 00001", "Scooter", 1342, true},
		{"Meena Iyer", "+91 98450 00002", "Bicycle", 587, false},
		{"Salim Khan", "+91 98450 00003", "Motorcycle", 2210, true},
		{"Anil Das", "+91 98450 00004", "Scooter", 904, true},
		{"Farah Siddiqui", "+91 98450 00005", "Motorcycle", 0, false},
	}

	rows := make([]core.Row, len(partners))
	for i, p := range partners {
		rows[i] = core.Row{
			"id":         rowID("delivery_partners", p.phone),
			"name":       p.name,
			"phone":      p.phone,
			"vehicle":    p.vehicle,
			"deliveries": p.deliveries,
			"online":     p.online,
		}
	}
	return rows
}
