package engine

import (
	"errors"
	"time"

	"github.com/tartampluch/go-reminder/internal/date"
	"github.com/tartampluch/go-reminder/internal/event"
)

// Snapshot is the outcome of one Load: every derived event, computed
// against Today.
type Snapshot struct {
	Stamp   time.Time  // When the load ran.
	Today   date.Fixed // Stamp's calendar date.
	Files   []string   // Source files read, in order.
	Events  []event.Event
	Skipped []error // Records dropped by a lenient load.
}

// Section is the selection of a single event kind.
type Section struct {
	Kind   event.Kind
	Events []event.Event // Nil when nothing is upcoming.
}

// Next returns the soonest upcoming events of kind.
func (s *Snapshot) Next(kind event.Kind) []event.Event {
	return event.Next(s.Events, kind, s.Today)
}

// Sections returns the selection of every kind, in display order.
func (s *Snapshot) Sections() []Section {
	sections := make([]Section, 0, len(event.Kinds))
	for _, kind := range event.Kinds {
		sections = append(sections, Section{Kind: kind, Events: s.Next(kind)})
	}
	return sections
}

// Err joins the skipped record errors. It is nil after a clean load.
func (s *Snapshot) Err() error {
	return errors.Join(s.Skipped...)
}
