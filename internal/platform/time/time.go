// Package time contains time related helpers
package time

import "time"

// Clock is the time source services accept so tests can pin "now"
type Clock func() time.Time

// System is the wall clock
func System() time.Time { return time.Now() }

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// DaysSince returns fractional days elapsed from t to now; future t yields a negative value
func DaysSince(t, now time.Time) float64 {
	return now.Sub(t).Hours() / 24
}
