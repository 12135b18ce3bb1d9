// Package event holds dated reminder events and the selection of the
// soonest events of a kind.
package event

import "github.com/tartampluch/go-reminder/internal/date"

// Kind is the category of an event.
type Kind int

const (
	Birthday Kind = iota
	SaintDay
	Wedding
	Holiday
	Special
)

// Kinds lists every kind in display order.
var Kinds = [...]Kind{Birthday, SaintDay, Wedding, Holiday, Special}

// String returns the display label of k.
func (k Kind) String() string {
	switch k {
	case Birthday:
		return "birthday"
	case SaintDay:
		return "saint day"
	case Wedding:
		return "wedding anniversary"
	case Holiday:
		return "holiday"
	case Special:
		return "special"
	}
	return "unknown"
}

// Event is a single dated reminder. Description already embeds any
// computed age, anniversary count or countdown.
type Event struct {
	Kind        Kind
	Date        date.Fixed
	Description string
}

// Producer is implemented by every record type: it expands the record into
// the events it yields as of today.
type Producer interface {
	Events(today date.Fixed) []Event
}

// Next returns the events of kind whose date is the earliest date on or
// after today, in their input order. It returns nil when no event of
// kind is due. events is not modified.
func Next(events []Event, kind Kind, today date.Fixed) []Event {
	var next []Event
	for _, e := range events {
		if e.Kind != kind || e.Date.Before(today) {
			continue
		}
		if len(next) == 0 {
			next = append(next, e)
			continue
		}
		switch e.Date.Compare(next[0].Date) {
		case -1:
			next = append(next[:0], e)
		case 0:
			next = append(next, e)
		}
	}
	return next
}
