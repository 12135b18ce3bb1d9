package engine

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-reminder/internal/config"
	"github.com/tartampluch/go-reminder/internal/event"
)

// uidSpace namespaces the event UIDs so they stay stable across exports.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(config.ICalDomain))

// ICS renders every event of the snapshot as an all-day VEVENT.
func (s *Snapshot) ICS() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.WriteICS(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteICS encodes the snapshot as an iCalendar object into w. An empty
// snapshot still yields a valid, event-less VCALENDAR.
func (s *Snapshot) WriteICS(w io.Writer) error {
	if len(s.Events) == 0 {
		_, err := io.WriteString(w, config.StubVCalendar)
		return err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: the feed changes daily, as "today" does.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(s.Stamp.UTC())

	for _, e := range s.Events {
		vevent := newVEvent(e)
		vevent.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, vevent.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return nil
}

func newVEvent(e event.Event) *ical.Event {
	vevent := ical.NewEvent()
	vevent.Props.SetText(config.PropUID, eventUID(e))
	vevent.Props.SetText(config.PropSummary, fmt.Sprintf(config.FormatSummary, e.Kind, e.Description))
	vevent.Props.SetText(config.PropCategories, e.Kind.String())

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(e.Date.Time(time.UTC))
	vevent.Props.Set(dtStartProp)
	return vevent
}

// eventUID derives the UID from the event content: the same event gets the
// same UID on every export.
func eventUID(e event.Event) string {
	name := fmt.Sprintf(config.FormatUIDName, e.Kind, e.Date, e.Description)
	return fmt.Sprintf(config.FormatUID, uuid.NewSHA1(uidSpace, []byte(name)), config.ICalDomain)
}
