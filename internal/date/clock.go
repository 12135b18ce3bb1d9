package date

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// A run samples it once and threads the resulting Fixed "today" through
// derivation, selection and reporting.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the local calendar date of c.Now().
func Today(c Clock) Fixed {
	return FromTime(c.Now())
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) Fixed {
	y, m, d := t.Date()
	return NewFixed(d, int(m), y)
}

// Time returns midnight of f in loc. Invalid day/month pairs are
// normalized by time.Date.
func (f Fixed) Time(loc *time.Location) time.Time {
	return time.Date(f.year, time.Month(f.date.month), f.date.day, 0, 0, 0, 0, loc)
}
