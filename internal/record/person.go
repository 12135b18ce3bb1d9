package record

import (
	"fmt"

	"github.com/tartampluch/go-reminder/internal/date"
	"github.com/tartampluch/go-reminder/internal/event"
	"github.com/tartampluch/go-reminder/internal/slot"
)

// Person is someone whose birthday, saint day and wedding anniversary are
// tracked. Each date is optional.
type Person struct {
	name       string
	birthday   date.AnyDate
	saintDay   *date.Recurring
	weddingDay date.AnyDate
}

// NewPerson builds a Person from already validated values. Nil dates are
// absent.
func NewPerson(name string, birthday date.AnyDate, saintDay *date.Recurring, weddingDay date.AnyDate) Person {
	return Person{name: name, birthday: birthday, saintDay: saintDay, weddingDay: weddingDay}
}

// Name returns the resolved display name.
func (p Person) Name() string { return p.name }

// ParsePerson parses "name; birthday; saint_day; wedding_day".
func ParsePerson(value string) (Person, error) {
	parts, err := slot.Split(value, ";", "name", "birthday", "saint_day", "wedding_day")
	if err != nil {
		return Person{}, err
	}
	name, err := ParseName(parts[0])
	if err != nil {
		return Person{}, err
	}
	birthday, _, err := optional(parts[1], date.ParseAny)
	if err != nil {
		return Person{}, err
	}
	saintDay, ok, err := optional(parts[2], date.ParseRecurring)
	if err != nil {
		return Person{}, err
	}
	weddingDay, _, err := optional(parts[3], date.ParseAny)
	if err != nil {
		return Person{}, err
	}

	p := Person{name: name, birthday: birthday, weddingDay: weddingDay}
	if ok {
		p.saintDay = &saintDay
	}
	return p, nil
}

// ParseName parses "first_name, last_name, nickname" and resolves the
// display name: the nickname wins, then "first last", then first alone.
func ParseName(value string) (string, error) {
	parts, err := slot.Split(value, ",", "first_name", "last_name", "nickname")
	if err != nil {
		return "", err
	}
	first, last, nickname := parts[0], parts[1], parts[2]
	switch {
	case nickname != "":
		return nickname, nil
	case first == "":
		return "", ErrNameRequired
	case last == "":
		return first, nil
	default:
		return first + " " + last, nil
	}
}

// Events emits one event per date the person has.
func (p Person) Events(today date.Fixed) []event.Event {
	var events []event.Event
	if p.birthday != nil {
		events = append(events, p.anniversary(event.Birthday, p.birthday, "age", today))
	}
	if p.saintDay != nil {
		events = append(events, event.Event{
			Kind:        event.SaintDay,
			Date:        p.saintDay.NextMatch(today),
			Description: p.name,
		})
	}
	if p.weddingDay != nil {
		events = append(events, p.anniversary(event.Wedding, p.weddingDay, "year", today))
	}
	return events
}

// anniversary resolves d's next occurrence. A year-bound date also gets
// the count of years elapsed appended as "(<unit> N)".
func (p Person) anniversary(kind event.Kind, d date.AnyDate, unit string, today date.Fixed) event.Event {
	e := event.Event{Kind: kind, Description: p.name}
	switch d := d.(type) {
	case date.Recurring:
		e.Date = d.NextMatch(today)
	case date.Fixed:
		e.Date = d.NextMatch(today)
		e.Description = fmt.Sprintf("%s (%s %d)", p.name, unit, d.YearDiff(e.Date))
	default:
		panic(fmt.Sprintf("record: unexpected date type %T", d))
	}
	return e
}
