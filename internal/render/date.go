package render

import (
	"strconv"
	"strings"
)

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatDate formats a month input value: "2024-01" becomes "Jan 2024", a
// bare year is kept as is. Values that do not parse are returned unchanged.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	year, month, ok := strings.Cut(s, "-")
	if year == "" || !ok {
		return s
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return s
	}
	return monthNames[m-1] + " " + year
}

// DateRange formats a start/end pair. Ongoing records end with "Present".
func DateRange(start, end string, current bool) string {
	from := FormatDate(start)
	to := FormatDate(end)
	if current {
		to = "Present"
	}
	switch {
	case from == "" && to == "":
		return ""
	case from == "":
		return to
	case to == "":
		return from
	}
	return from + " – " + to
}
