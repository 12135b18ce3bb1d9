// Package record parses the "kind=body" reminder lines and expands the
// resulting person, holiday and special records into dated events.
//
// Every grammar level uses the same strict discipline: split on a fixed
// delimiter, require an exact slot count, trim each slot, and treat an
// empty slot as absent only where the field is optional.
package record

import (
	"errors"

	"github.com/tartampluch/go-reminder/internal/date"
	"github.com/tartampluch/go-reminder/internal/event"
	"github.com/tartampluch/go-reminder/internal/slot"
)

// Semantic parse errors.
var (
	ErrUnknownKind     = errors.New("no event kind matched")
	ErrNameRequired    = errors.New("at least first_name or nickname must be provided")
	ErrBeginAfterEnd   = errors.New("begin is after end")
	ErrNoHolidayFormat = errors.New("no holiday format matched")
)

// Record kinds accepted on the left of '='.
const (
	KindPerson  = "person"
	KindHoliday = "holiday"
	KindSpecial = "special"
)

// ParseLine parses one sanitized "kind=body" line into its record.
func ParseLine(line string) (event.Producer, error) {
	parts, err := slot.Split(line, "=", "event kind", "event")
	if err != nil {
		return nil, err
	}
	switch kind, body := parts[0], parts[1]; kind {
	case KindPerson:
		return ParsePerson(body)
	case KindHoliday:
		return ParseHoliday(body)
	case KindSpecial:
		return ParseSpecial(body)
	default:
		return nil, ErrUnknownKind
	}
}

// Extract parses line and returns the events its record yields as of today.
func Extract(line string, today date.Fixed) ([]event.Event, error) {
	p, err := ParseLine(line)
	if err != nil {
		return nil, err
	}
	return p.Events(today), nil
}

// optional parses value with parse unless it is empty.
func optional[T any](value string, parse func(string) (T, error)) (T, bool, error) {
	var zero T
	if value == "" {
		return zero, false, nil
	}
	v, err := parse(value)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}
