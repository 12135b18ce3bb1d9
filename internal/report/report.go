// Package report renders a loaded snapshot as human readable text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/tartampluch/go-reminder/internal/config"
	"github.com/tartampluch/go-reminder/internal/date"
	"github.com/tartampluch/go-reminder/internal/engine"
	"github.com/tartampluch/go-reminder/internal/event"
)

var kindColors = map[event.Kind]color.Attribute{
	event.Birthday: color.FgRed,
	event.SaintDay: color.FgBlue,
	event.Wedding:  color.FgGreen,
	event.Holiday:  color.FgYellow,
	event.Special:  color.FgCyan,
}

// Renderer writes reports to Out.
type Renderer struct {
	Out   io.Writer
	Color bool // Colorize the kind labels.
}

// New returns a Renderer for w. mode is one of config.ColorAuto,
// config.ColorAlways or config.ColorNever; auto follows the terminal
// detection of the color package.
func New(w io.Writer, mode string) *Renderer {
	enabled := false
	switch mode {
	case config.ColorAlways:
		enabled = true
	case config.ColorAuto:
		enabled = !color.NoColor
	}
	return &Renderer{Out: w, Color: enabled}
}

// Render writes the files that were read followed by one line per event
// kind.
func (r *Renderer) Render(snap *engine.Snapshot) error {
	for _, path := range snap.Files {
		if _, err := fmt.Fprintf(r.Out, config.MsgFoundFile, path); err != nil {
			return err
		}
	}
	for _, s := range snap.Sections() {
		if _, err := fmt.Fprintf(r.Out, config.ReportLine, r.label(s.Kind), Message(snap.Today, s.Events)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) label(kind event.Kind) string {
	c := color.New(kindColors[kind])
	if r.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(kind.String())
}

// Message describes the soonest events of a kind: when they happen and
// their descriptions.
func Message(today date.Fixed, events []event.Event) string {
	if len(events) == 0 {
		return config.ReportNone
	}

	when := config.ReportToday
	if d := events[0].Date; d != today {
		when = fmt.Sprintf(config.ReportInDays, d, today.To(d))
	}

	descs := make([]string, len(events))
	for i, e := range events {
		descs[i] = e.Description
	}
	return when + config.ReportDescSep + strings.Join(descs, config.ReportSeparator)
}
