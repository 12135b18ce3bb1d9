// Package date models the two date shapes used by reminder records: a
// yearless Recurring day/month and a year-bound Fixed calendar date.
//
// Both are immutable comparable values. Recurring is deliberately lenient:
// a day/month pair is not checked against the month length at
// construction (31/04 is representable); only arithmetic that advances a
// date rolls such values over into a real calendar date.
package date

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tartampluch/go-reminder/internal/slot"
)

// ErrNoDateFormat is returned by ParseAny when the input is neither a
// Recurring nor a Fixed date.
var ErrNoDateFormat = errors.New("no date format matched")

// Recurring is a day of a month, repeating every year.
type Recurring struct {
	month int
	day   int
}

// Fixed is a complete calendar date.
type Fixed struct {
	year int
	date Recurring
}

// AnyDate is either a Recurring or a Fixed date. It is closed over those
// two types; consumers switch on the concrete type.
type AnyDate interface {
	fmt.Stringer
	isAnyDate()
}

func (Recurring) isAnyDate() {}
func (Fixed) isAnyDate()     {}

// NewRecurring returns the recurring date day/month.
func NewRecurring(day, month int) Recurring {
	return Recurring{month: month, day: day}
}

// NewFixed returns the date day/month/year.
func NewFixed(day, month, year int) Fixed {
	return Fixed{year: year, date: NewRecurring(day, month)}
}

func (r Recurring) Day() int   { return r.day }
func (r Recurring) Month() int { return r.month }

func (f Fixed) Day() int             { return f.date.day }
func (f Fixed) Month() int           { return f.date.month }
func (f Fixed) Year() int            { return f.year }
func (f Fixed) Recurring() Recurring { return f.date }

// In anchors r to the given year.
func (r Recurring) In(year int) Fixed {
	return Fixed{year: year, date: r}
}

// String formats r as dd/mm.
func (r Recurring) String() string {
	return fmt.Sprintf("%02d/%02d", r.day, r.month)
}

// String formats f as dd/mm/yyyy.
func (f Fixed) String() string {
	return fmt.Sprintf("%s/%04d", f.date, f.year)
}

// Compare orders recurring dates by month, then day. It returns -1, 0 or +1.
func (r Recurring) Compare(o Recurring) int {
	switch {
	case r.month != o.month:
		return sign(r.month - o.month)
	default:
		return sign(r.day - o.day)
	}
}

// Compare orders fixed dates by year, month, then day.
func (f Fixed) Compare(o Fixed) int {
	if f.year != o.year {
		return sign(f.year - o.year)
	}
	return f.date.Compare(o.date)
}

func (f Fixed) Before(o Fixed) bool { return f.Compare(o) < 0 }
func (f Fixed) After(o Fixed) bool  { return f.Compare(o) > 0 }

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// ParseRecurring parses "day,month".
func ParseRecurring(value string) (Recurring, error) {
	parts, err := slot.Split(value, ",", "day", "month")
	if err != nil {
		return Recurring{}, err
	}
	return parseDayMonth(parts[0], parts[1])
}

// ParseFixed parses "day,month,year". The year may be negative.
func ParseFixed(value string) (Fixed, error) {
	parts, err := slot.Split(value, ",", "day", "month", "year")
	if err != nil {
		return Fixed{}, err
	}
	r, err := parseDayMonth(parts[0], parts[1])
	if err != nil {
		return Fixed{}, err
	}
	year, err := strconv.ParseInt(parts[2], 10, 32)
	if err != nil {
		return Fixed{}, slot.Errorf("failed to parse year")
	}
	return Fixed{year: int(year), date: r}, nil
}

// ParseAny tries a Recurring date first, then a Fixed one, so a two slot
// input is never mistaken for an incomplete three slot one.
func ParseAny(value string) (AnyDate, error) {
	if r, err := ParseRecurring(value); err == nil {
		return r, nil
	}
	if f, err := ParseFixed(value); err == nil {
		return f, nil
	}
	return nil, ErrNoDateFormat
}

func parseDayMonth(day, month string) (Recurring, error) {
	m, err := strconv.ParseUint(month, 10, 32)
	if err != nil {
		return Recurring{}, slot.Errorf("failed to parse month")
	}
	d, err := strconv.ParseUint(day, 10, 32)
	if err != nil {
		return Recurring{}, slot.Errorf("failed to parse day")
	}
	return Recurring{month: int(m), day: int(d)}, nil
}
