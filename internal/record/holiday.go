package record

import (
	"fmt"

	"github.com/tartampluch/go-reminder/internal/date"
	"github.com/tartampluch/go-reminder/internal/event"
	"github.com/tartampluch/go-reminder/internal/slot"
)

// holidayDate is one of date.Recurring, date.Fixed or span.
type holidayDate interface {
	isHolidayDate()
}

// span is an inclusive multi-day range, begin strictly before end.
type span struct {
	begin date.Fixed
	end   date.Fixed
}

type recurringHoliday struct{ date.Recurring }
type fixedHoliday struct{ date.Fixed }

func (recurringHoliday) isHolidayDate() {}
func (fixedHoliday) isHolidayDate()     {}
func (span) isHolidayDate()             {}

// Holiday is a named day, or range of days, off.
type Holiday struct {
	desc string
	when holidayDate
}

// ParseHoliday parses "description; begin[; end]". With an end date both
// bounds are fixed dates; equal bounds collapse to a single fixed holiday.
// Without one, begin is tried as a recurring date, then as a fixed date.
func ParseHoliday(value string) (Holiday, error) {
	parts, err := slot.SplitUpTo(value, ";", 2, "desc", "begin", "end")
	if err != nil {
		return Holiday{}, err
	}
	h := Holiday{desc: parts[0]}
	if len(parts) == 3 {
		begin, err := date.ParseFixed(parts[1])
		if err != nil {
			return Holiday{}, err
		}
		end, err := date.ParseFixed(parts[2])
		if err != nil {
			return Holiday{}, err
		}
		switch begin.Compare(end) {
		case -1:
			h.when = span{begin: begin, end: end}
		case 0:
			h.when = fixedHoliday{begin}
		default:
			return Holiday{}, ErrBeginAfterEnd
		}
		return h, nil
	}
	if r, err := date.ParseRecurring(parts[1]); err == nil {
		h.when = recurringHoliday{r}
		return h, nil
	}
	if f, err := date.ParseFixed(parts[1]); err == nil {
		h.when = fixedHoliday{f}
		return h, nil
	}
	return Holiday{}, ErrNoHolidayFormat
}

// Events emits the next occurrence of a single day holiday, or one event
// per day of a span with the number of days remaining after that day.
func (h Holiday) Events(today date.Fixed) []event.Event {
	switch when := h.when.(type) {
	case recurringHoliday:
		return []event.Event{h.event(when.NextMatch(today), h.desc)}
	case fixedHoliday:
		return []event.Event{h.event(when.NextMatch(today), h.desc)}
	case span:
		var days []date.Fixed
		for d := when.begin; !d.After(when.end); d = d.Next() {
			days = append(days, d)
		}
		events := make([]event.Event, 0, len(days))
		for i, d := range days {
			remaining := len(days) - 1 - i
			events = append(events, h.event(d, fmt.Sprintf("%s (%d days remaining)", h.desc, remaining)))
		}
		return events
	default:
		panic(fmt.Sprintf("record: unexpected holiday date %T", when))
	}
}

func (h Holiday) event(d date.Fixed, desc string) event.Event {
	return event.Event{Kind: event.Holiday, Date: d, Description: desc}
}
