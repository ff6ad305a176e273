package source

import (
	"testing"
	"time"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{"empty", "", nil},
		{"whitespace", "   ", nil},
		{"integer", "42", 42.0},
		{"decimal", "3.14", 3.14},
		{"currency", "$1,234.50", 1234.5},
		{"rupees", "₹ 980", 980.0},
		{"accounting negative", "(12.50)", -12.5},
		{"excel formula", `="00123"`, 123.0},
		{"iso date", "2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"us date", "3/5/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"bool yes", "Yes", true},
		{"bool false", "false", false},
		{"text", "Spice Route", "Spice Route"},
		{"quoted text", `"hello"`, "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCell(tt.in)
			if wt, ok := tt.want.(time.Time); ok {
				gt, ok := got.(time.Time)
				if !ok || !gt.Equal(wt) {
					t.Errorf("ParseCell(%q) = %v, want %v", tt.in, got, tt.want)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseCell(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDateTwoDigitYear(t *testing.T) {
	got, ok := ParseDate("1/2/06")
	if !ok || got.Year() != 2006 {
		t.Errorf("ParseDate(1/2/06) = %v, %v", got, ok)
	}

	future := time.Now().Year() + TwoDigitYearPivot + 5
	s := "1/2/" + time.Date(future, 1, 1, 0, 0, 0, 0, time.UTC).Format("06")
	got, ok = ParseDate(s)
	if !ok || got.Year() != future-100 {
		t.Errorf("ParseDate(%s) = %v, want year %d", s, got, future-100)
	}
}

func TestParseNumberRejects(t *testing.T) {
	for _, s := range []string{"abc", "1.2.3", "12-34", "$", "()"} {
		if _, ok := ParseNumber(s); ok {
			t.Errorf("ParseNumber(%q) accepted", s)
		}
	}
}
