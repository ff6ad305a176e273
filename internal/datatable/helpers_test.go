package datatable

// testOrder mirrors the three-row example from the console's orders page.
type testOrder struct {
	ID     int
	Name   string
	Amount int
}

func orderColumns() []Column[testOrder] {
	return []Column[testOrder]{
		Field("name", "Name", func(o testOrder) string { return o.Name }),
		Field("amount", "Amount", func(o testOrder) int { return o.Amount }),
	}
}

func sampleOrders() []testOrder {
	return []testOrder{
		{ID: 1, Name: "Bob", Amount: 50},
		{ID: 2, Name: "Ann", Amount: 75},
		{ID: 3, Name: "Cid", Amount: 10},
	}
}

func names(orders []testOrder) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.Name
	}
	return out
}

func ids(records []Record) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = r["id"]
	}
	return out
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
