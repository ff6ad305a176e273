package tables

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/datatable/internal/core"
)

// namespace seeds deterministic row IDs so links to demo rows survive restarts.
var namespace = uuid.MustParse("6f1c2a4e-3b7d-4f0a-9c1e-5d2b8a7e4c90")

// rowID derives a stable UUID for a row of table from its natural key.
func rowID(table, key string) string {
	return uuid.NewSHA1(namespace, []byte(table+"/"+key)).String()
}

// currency renders a float amount as "₹1,234.50". Non-numeric values pass through.
func currency(value any, _ core.Row) any {
	amount, ok := value.(float64)
	if !ok {
		return value
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := int64(amount)
	cents := int64((amount-float64(whole))*100 + 0.5)
	if cents == 100 {
		whole++
		cents = 0
	}
	return fmt.Sprintf("%s₹%s.%02d", sign, groupThousands(whole), cents)
}

// groupThousands inserts commas every three digits.
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// shortDate renders a time as "02 Jan 2006". Zero or non-time values render empty.
func shortDate(value any, _ core.Row) any {
	t, ok := value.(time.Time)
	if !ok || t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}

// yesNo renders a bool flag for display.
func yesNo(value any, _ core.Row) any {
	if b, ok := value.(bool); ok && b {
		return "Yes"
	}
	return "No"
}

// day returns midnight UTC of the given date.
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
