package source

// cells.go turns raw CSV cells into typed values so that columns sort by
// their natural ordering rather than as text.
//
// The rules cover the usual mess of exported spreadsheets:
//   - Currency symbols, thousands separators and accounting negatives "(1.50)"
//   - US, EU and ISO date layouts, with a pivot for 2-digit years
//   - Excel formula prefixes (="value") and stray quotes
//
// Empty cells become nil so they sort first and never match a search.

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// numericRegex validates a number after currency cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearPivot: 2-digit years landing more than this many years in the
// future are moved back a century.
var TwoDigitYearPivot = 20

var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006/01/02", "2006.01.02",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"Jan 2, 2006", "2 Jan 2006",
		time.RFC3339,
	}
)

// ParseCell converts a cleaned CSV cell to float64, time.Time, bool or
// string, in that order of preference. Empty cells yield nil.
func ParseCell(s string) any {
	s = CleanCell(s)
	if s == "" {
		return nil
	}
	if f, ok := ParseNumber(s); ok {
		return f
	}
	if t, ok := ParseDate(s); ok {
		return t
	}
	if b, ok := ParseBool(s); ok {
		return b
	}
	return s
}

// ParseNumber parses plain, currency and accounting-format numbers.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.NewReplacer("$", "", "€", "", "£", "", "₹", "", ",", "").Replace(s)
	s = strings.TrimSpace(s)
	if negative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseDate tries the known date layouts, 4-digit years first.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseBool accepts true/false, yes/no and t/f/y/n. Digits are left to
// ParseNumber.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y":
		return true, true
	case "false", "f", "no", "n":
		return false, true
	}
	return false, false
}

// CleanCell trims whitespace, the Excel formula prefix and surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}
