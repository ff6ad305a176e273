package datatable

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// stringify returns the display form of v.
// The boolean is false for values that have no meaningful text (nil, nil
// pointers, nil maps and slices), which never match a search.
func stringify(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case []byte:
		return string(val), true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case time.Time:
		if val.IsZero() {
			return "", false
		}
		return val.Format(time.RFC3339), true
	case fmt.Stringer:
		if isNil(v) {
			return "", false
		}
		return val.String(), true
	}

	if isNil(v) {
		return "", false
	}
	return fmt.Sprint(v), true
}

// isNil reports whether v holds a typed nil.
func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// containsFold reports whether v's string form contains the lowercased term.
func containsFold(v any, lowerTerm string) bool {
	s, ok := stringify(v)
	if !ok || s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), lowerTerm)
}

// toFloat converts any Go numeric kind to float64.
func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// compareValues orders two raw column values.
//
// Numbers compare numerically, strings lexicographically, booleans false
// before true and times chronologically. Nil sorts before everything else.
// Mixed types are the caller's problem; they fall back to comparing string
// forms so the result is at least deterministic.
func compareValues(a, b any) int {
	aNil, bNil := a == nil || isNil(a), b == nil || isNil(b)
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return -1
	case bNil:
		return 1
	}

	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			}
			return 1
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}

	as, _ := stringify(a)
	bs, _ := stringify(b)
	return strings.Compare(as, bs)
}
