package booking

import (
	"math"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

var dateLayouts = []string{time.DateOnly, time.RFC3339Nano}

// ParseDate accepts "2006-01-02" or an RFC 3339 timestamp and returns the
// calendar date as written, at UTC midnight. The offset of a timestamp
// does not move it to another day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return truncateToDate(t), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseRequest checks that every field is present and both dates parse.
// Date ordering is not checked here; it is only meaningful once the car is known.
func ParseRequest(in CreateInput) (Request, error) {
	carID := strings.TrimSpace(in.CarID)
	if carID == "" || strings.TrimSpace(in.FromDate) == "" || strings.TrimSpace(in.ToDate) == "" {
		return Request{}, ErrMissingFields
	}

	from, err := ParseDate(in.FromDate)
	if err != nil {
		return Request{}, ErrMissingFields
	}
	to, err := ParseDate(in.ToDate)
	if err != nil {
		return Request{}, ErrMissingFields
	}

	return Request{CarID: carID, FromDate: from, ToDate: to}, nil
}

// RentalDays is the inclusive number of billed days: ceil((to-from)/1d) + 1.
// Both ends are truncated to calendar dates first, so a same-day rental is 1 day
// and the ceiling is always exact. Counted in Unix seconds because
// time.Duration saturates after about 292 years.
func RentalDays(from, to time.Time) int64 {
	diff := truncateToDate(to).Unix() - truncateToDate(from).Unix()
	return diff/secondsPerDay + 1
}

// TotalAmount is the price of renting for the given days at pricePerDay.
// ok is false when the product does not fit in an int64.
func TotalAmount(days, pricePerDay int64) (total int64, ok bool) {
	if days > 0 && pricePerDay > 0 && days > math.MaxInt64/pricePerDay {
		return 0, false
	}
	return days * pricePerDay, true
}
