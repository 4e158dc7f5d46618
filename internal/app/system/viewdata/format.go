package viewdata

import (
	"strconv"
	"time"
)

// Money renders a rupee amount: whole amounts without decimals, anything
// else with two.
func Money(v float64) string {
	if v == float64(int64(v)) {
		return "₹" + strconv.FormatInt(int64(v), 10)
	}
	return "₹" + strconv.FormatFloat(v, 'f', 2, 64)
}

// Date renders t as "02 Jan 2006", or "" for the zero time.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}

// DateTime renders t as "02 Jan 2006, 15:04", or "" for the zero time.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006, 15:04")
}
