package record

import (
	"github.com/tartampluch/go-reminder/internal/date"
	"github.com/tartampluch/go-reminder/internal/event"
	"github.com/tartampluch/go-reminder/internal/slot"
)

// Special is a one-off event on a fixed date.
type Special struct {
	desc string
	date date.Fixed
}

// ParseSpecial parses "description; date".
func ParseSpecial(value string) (Special, error) {
	parts, err := slot.Split(value, ";", "desc", "date")
	if err != nil {
		return Special{}, err
	}
	d, err := date.ParseFixed(parts[1])
	if err != nil {
		return Special{}, err
	}
	return Special{desc: parts[0], date: d}, nil
}

// Events returns the special event unchanged. It does not recur.
func (s Special) Events(date.Fixed) []event.Event {
	return []event.Event{{Kind: event.Special, Date: s.date, Description: s.desc}}
}
