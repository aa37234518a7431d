package catalog

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// NotAvailable is returned by the formatters for absent or invalid input.
const NotAvailable = "N/A"

const dateLayout = "2006-01-02"

// FormatRuntime renders minutes as "2h 15m" or "45m".
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return NotAvailable
	}
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatDate renders a YYYY-MM-DD date as "January 2, 2006".
func FormatDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return NotAvailable
	}
	return t.Format("January 2, 2006")
}

// FormatRating renders a vote average as "7.9 / 10", rounding half away from zero.
// A nil or zero average has no votes behind it.
func FormatRating(voteAverage *float64) string {
	if voteAverage == nil || *voteAverage == 0 || math.IsNaN(*voteAverage) {
		return NotAvailable
	}
	rounded := math.Round(*voteAverage*10) / 10
	return fmt.Sprintf("%.1f / 10", rounded)
}

// YearFromDate returns the four-digit year of a YYYY-MM-DD (or YYYY...) date.
func YearFromDate(date string) string {
	if t, err := time.Parse(dateLayout, date); err == nil {
		return strconv.Itoa(t.Year())
	}
	if len(date) >= 4 {
		if year, err := strconv.Atoi(date[:4]); err == nil && year > 0 {
			return strconv.Itoa(year)
		}
	}
	return NotAvailable
}

// ParseDate parses a YYYY-MM-DD date; absent or invalid dates are the Unix epoch.
func ParseDate(date string) time.Time {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}
