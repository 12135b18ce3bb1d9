// Package engine turns the record sources into a dated event list and
// renders it as a per-kind selection or an iCalendar feed.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tartampluch/go-reminder/internal/config"
	"github.com/tartampluch/go-reminder/internal/date"
	"github.com/tartampluch/go-reminder/internal/record"
	"github.com/tartampluch/go-reminder/internal/source"
)

// Generator loads every configured source into a Snapshot.
type Generator struct {
	Clock   date.Clock          // Interface for time mocking.
	Fetcher source.VCardFetcher // Interface for network abstraction.

	// Password resolves the remote vCard password. Defaults to the keyring.
	Password func(user string) (string, error)

	DataDir   string
	Strict    bool
	VCardURL  string
	VCardUser string
}

// New builds a Generator from the user settings, wired to the real clock,
// the HTTP fetcher and the OS keyring.
func New(s *config.Settings) *Generator {
	return &Generator{
		Clock:     date.RealClock{},
		Fetcher:   source.NewHTTPFetcher(),
		Password:  source.Password,
		DataDir:   s.DataDir,
		Strict:    s.Strict,
		VCardURL:  s.VCard.URL,
		VCardUser: s.VCard.User,
	}
}

type loadStats struct{ files, lines, cards int }

// loader holds the state of a single Load call.
type loader struct {
	*Generator
	log   *slog.Logger
	snap  *Snapshot
	stats loadStats
}

// Load reads the data directory and the remote vCard source, if any, and
// derives their events against a single "today".
//
// In strict mode the first malformed record aborts the load. Otherwise the
// record is skipped, logged, and kept in Snapshot.Skipped.
func (g *Generator) Load(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	now := g.Clock.Now()
	l := &loader{
		Generator: g,
		log: slog.With(
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyStrict, g.Strict,
		),
		snap: &Snapshot{Stamp: now, Today: date.FromTime(now)},
	}
	l.log.InfoContext(ctx, config.MsgLoadStarted,
		config.LogKeyDir, g.DataDir,
		config.LogKeyToday, l.snap.Today.String())

	paths, err := source.Find(g.DataDir, config.ExtRecord, config.ExtVCF, config.ExtVCard)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		l.snap.Files = append(l.snap.Files, path)
		l.stats.files++
		l.log.Debug(config.MsgFileFound, config.LogKeyFile, path)

		if strings.EqualFold(filepath.Ext(path), config.ExtRecord) {
			err = l.loadRecords(path)
		} else {
			err = l.loadVCardFile(path)
		}
		if err != nil {
			return nil, err
		}
	}

	if g.VCardURL != "" {
		if err := l.loadRemote(ctx); err != nil {
			return nil, err
		}
	}

	l.log.Info(config.MsgLoadFinished,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyFiles, l.stats.files),
			slog.Int(config.LogKeyLines, l.stats.lines),
			slog.Int(config.LogKeyCards, l.stats.cards),
			slog.Int(config.LogKeyEvents, len(l.snap.Events)),
			slog.Int(config.LogKeySkipped, len(l.snap.Skipped)),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return l.snap, nil
}

// fail either aborts (strict) or records err as skipped.
func (l *loader) fail(err error) error {
	if l.Strict {
		return err
	}
	l.log.Warn(config.MsgSkippedLine, config.LogKeyError, err)
	l.snap.Skipped = append(l.snap.Skipped, err)
	return nil
}

func (l *loader) loadRecords(path string) error {
	lines, err := source.ReadLines(path)
	if err != nil {
		return err
	}
	for _, line := range lines {
		l.stats.lines++
		events, err := record.Extract(line.Text, l.snap.Today)
		if err != nil {
			lineErr := &source.LineError{Path: line.Path, Line: line.Number, Err: err}
			if err := l.fail(fmt.Errorf("%s: %w", config.ErrRecordParse, lineErr)); err != nil {
				return err
			}
			continue
		}
		l.snap.Events = append(l.snap.Events, events...)
	}
	return nil
}

func (l *loader) loadVCardFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrReadFile, err)
	}
	defer func() { _ = f.Close() }()
	return l.loadVCards(f, path)
}

func (l *loader) loadRemote(ctx context.Context) error {
	if l.Fetcher == nil {
		return errors.New(config.ErrFetcherMissing)
	}
	pass := ""
	if l.Password != nil {
		var err error
		if pass, err = l.Password(l.VCardUser); err != nil {
			return err
		}
	}

	rc, err := l.Fetcher.Fetch(ctx, l.VCardURL, l.VCardUser, pass)
	if err != nil {
		// Cancellation is never a skippable record error.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return l.fail(fmt.Errorf("%s: %w", config.ErrVCardFetch, err))
	}
	defer func() { _ = rc.Close() }()
	return l.loadVCards(rc, l.VCardURL)
}

// loadVCards adds the events of every person decoded from r. People read
// before a broken card survive a lenient load.
func (l *loader) loadVCards(r io.Reader, origin string) error {
	people, err := source.DecodeVCards(r)
	for _, p := range people {
		l.snap.Events = append(l.snap.Events, p.Events(l.snap.Today)...)
	}
	l.stats.cards += len(people)
	if err != nil {
		return l.fail(fmt.Errorf("%s: %w", origin, err))
	}
	return nil
}
