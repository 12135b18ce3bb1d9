package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-reminder/internal/config"
)

// RenderFunc produces a fresh calendar.
type RenderFunc func(ctx context.Context) ([]byte, error)

// Publisher receives rendered calendars. CalendarServer implements it.
type Publisher interface {
	Update(data []byte)
}

// Refresher re-renders the calendar on a cron schedule so that the served
// feed follows the current date.
type Refresher struct {
	Render   RenderFunc
	Target   Publisher
	Schedule string // Standard cron spec or descriptor such as "@daily".
}

// Refresh renders once and publishes the result. A failed render leaves
// the previous calendar in place.
func (r *Refresher) Refresh(ctx context.Context) error {
	start := time.Now()
	data, err := r.Render(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrRefreshFailed, err)
	}
	r.Target.Update(data)
	slog.Info(config.MsgRefreshDone,
		config.LogKeyComponent, config.CompRefresh,
		config.LogKeySizeBytes, len(data),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return nil
}

// Run publishes a first calendar, then refreshes it on Schedule until ctx
// is cancelled. Only the first refresh is fatal; later failures are logged
// and the next tick tries again.
func (r *Refresher) Run(ctx context.Context) error {
	log := slog.With(config.LogKeyComponent, config.CompRefresh)

	c := cron.New()
	if _, err := c.AddFunc(r.Schedule, func() {
		if err := r.Refresh(ctx); err != nil {
			log.Error(config.ErrRefreshFailed, config.LogKeyError, err)
		}
	}); err != nil {
		return fmt.Errorf("%s: %w", config.ErrRefreshSchedule, err)
	}

	if err := r.Refresh(ctx); err != nil {
		return err
	}

	c.Start()
	log.Info(config.MsgRefreshPlanned, config.LogKeySchedule, r.Schedule)

	<-ctx.Done()
	// Wait for a running refresh to finish.
	<-c.Stop().Done()
	return nil
}
