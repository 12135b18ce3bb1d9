package engine_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-reminder/internal/config"
	"github.com/tartampluch/go-reminder/internal/date"
	"github.com/tartampluch/go-reminder/internal/engine"
	"github.com/tartampluch/go-reminder/internal/event"
	"github.com/tartampluch/go-reminder/internal/record"
	"github.com/tartampluch/go-reminder/internal/source"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer for unit tests using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the source.VCardFetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// -----------------------------------------------------------------------------
// Fixtures
// -----------------------------------------------------------------------------

// June 15th, 2025 (Non-Leap Year)
var now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

const familyRecords = `# family
person=John, Doe, ; 15,1,1990 ; 24,6 ; 20,6,2015
holiday=Christmas;25,12 # every year
special=Dentist;20,6,2025
`

const janeCard = "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Jane\r\nBDAY:--06-15\r\nEND:VCARD\r\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newGenerator(dir string) *engine.Generator {
	return &engine.Generator{
		Clock:   MockClock{CurrentTime: now},
		DataDir: dir,
		Strict:  true,
	}
}

// -----------------------------------------------------------------------------
// Load
// -----------------------------------------------------------------------------

func TestLoad_DataDir(t *testing.T) {
	dir := t.TempDir()
	rce := writeFile(t, dir, "a.rce", familyRecords)
	vcf := writeFile(t, dir, "b.vcf", janeCard)
	writeFile(t, dir, "notes.txt", "person=ignored")

	snap, err := newGenerator(dir).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, date.NewFixed(15, 6, 2025), snap.Today)
	assert.Equal(t, now, snap.Stamp)
	assert.Equal(t, []string{rce, vcf}, snap.Files)
	assert.Empty(t, snap.Skipped)
	assert.NoError(t, snap.Err())

	assert.Equal(t, []engine.Section{
		{Kind: event.Birthday, Events: []event.Event{
			{Kind: event.Birthday, Date: date.NewFixed(15, 6, 2025), Description: "Jane"},
		}},
		{Kind: event.SaintDay, Events: []event.Event{
			{Kind: event.SaintDay, Date: date.NewFixed(24, 6, 2025), Description: "John Doe"},
		}},
		{Kind: event.Wedding, Events: []event.Event{
			{Kind: event.Wedding, Date: date.NewFixed(20, 6, 2025), Description: "John Doe (year 10)"},
		}},
		{Kind: event.Holiday, Events: []event.Event{
			{Kind: event.Holiday, Date: date.NewFixed(25, 12, 2025), Description: "Christmas"},
		}},
		{Kind: event.Special, Events: []event.Event{
			{Kind: event.Special, Date: date.NewFixed(20, 6, 2025), Description: "Dentist"},
		}},
	}, snap.Sections())

	assert.Len(t, snap.Events, 6, "John yields three events, then one holiday, one special and Jane")
}

func TestLoad_EmptyDir(t *testing.T) {
	snap, err := newGenerator(t.TempDir()).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Events)
	for _, s := range snap.Sections() {
		assert.Nil(t, s.Events, "kind %s", s.Kind)
	}
}

func TestLoad_MissingDir(t *testing.T) {
	_, err := newGenerator(filepath.Join(t.TempDir(), "missing")).Load(context.Background())
	assert.ErrorContains(t, err, config.ErrDataDir)
}

func TestLoad_StrictAbortsOnFirstError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.rce", "holiday=Christmas;25,12\nperson=Ann;1,1\nparty=x\n")

	snap, err := newGenerator(dir).Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)

	var lineErr *source.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, path, lineErr.Path)
	assert.Equal(t, 2, lineErr.Line)
	assert.ErrorContains(t, err, config.ErrRecordParse)
	assert.ErrorContains(t, err, "missing 'saint_day' slot")
}

func TestLoad_LenientSkips(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rce", "holiday=Christmas;25,12\nperson=Ann;1,1\nparty=x\n   \n")

	gen := newGenerator(dir)
	gen.Strict = false
	snap, err := gen.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Events, 1)
	require.Len(t, snap.Skipped, 3)
	assert.ErrorIs(t, snap.Skipped[1], record.ErrUnknownKind)

	joined := snap.Err()
	require.Error(t, joined)
	assert.ErrorIs(t, joined, record.ErrUnknownKind)
	assert.Contains(t, joined.Error(), "a.rce:4:")
}

func TestLoad_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rce", familyRecords)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newGenerator(dir).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// -----------------------------------------------------------------------------
// Remote vCards
// -----------------------------------------------------------------------------

func TestLoad_Remote(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, "https://dav.example.com/cards.vcf", "bob", "pw").
		Return(io.NopCloser(strings.NewReader(janeCard)), nil)

	gen := newGenerator(t.TempDir())
	gen.Fetcher = mockFetcher
	gen.VCardURL = "https://dav.example.com/cards.vcf"
	gen.VCardUser = "bob"
	gen.Password = func(user string) (string, error) {
		assert.Equal(t, "bob", user)
		return "pw", nil
	}

	snap, err := gen.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []event.Event{
		{Kind: event.Birthday, Date: date.NewFixed(15, 6, 2025), Description: "Jane"},
	}, snap.Next(event.Birthday))

	mockFetcher.AssertExpectations(t)
}

func TestLoad_Remote_NetworkError(t *testing.T) {
	expectedErr := errors.New("network unreachable")

	tests := []struct {
		name   string
		strict bool
	}{
		{"Strict", true},
		{"Lenient", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFetcher := new(MockFetcher)
			mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(nil, expectedErr)

			dir := t.TempDir()
			writeFile(t, dir, "a.rce", familyRecords)
			gen := newGenerator(dir)
			gen.Strict = tt.strict
			gen.Fetcher = mockFetcher
			gen.VCardURL = "http://bad-url.com"

			snap, err := gen.Load(context.Background())
			if tt.strict {
				assert.ErrorIs(t, err, expectedErr)
				assert.ErrorContains(t, err, config.ErrVCardFetch)
				return
			}
			require.NoError(t, err)
			assert.Len(t, snap.Events, 5, "Local records survive a failed fetch")
			assert.ErrorIs(t, snap.Err(), expectedErr)
		})
	}
}

func TestLoad_Remote_PasswordError(t *testing.T) {
	mockFetcher := new(MockFetcher)
	gen := newGenerator(t.TempDir())
	gen.Fetcher = mockFetcher
	gen.VCardURL = "http://example.com"
	gen.Password = func(string) (string, error) { return "", assert.AnError }

	_, err := gen.Load(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	mockFetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoad_Remote_FetcherMissing(t *testing.T) {
	gen := newGenerator(t.TempDir())
	gen.VCardURL = "http://example.com"

	_, err := gen.Load(context.Background())
	assert.EqualError(t, err, config.ErrFetcherMissing)
}

// -----------------------------------------------------------------------------
// ICS
// -----------------------------------------------------------------------------

func TestICS(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rce", familyRecords)
	writeFile(t, dir, "b.vcf", janeCard)

	snap, err := newGenerator(dir).Load(context.Background())
	require.NoError(t, err)

	data, err := snap.ICS()
	require.NoError(t, err)
	ics := string(data)

	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "PRODID:"+config.ICalProdid)
	assert.Equal(t, len(snap.Events), strings.Count(ics, "BEGIN:VEVENT"), "One VEVENT per event")
	assert.Contains(t, ics, "SUMMARY:birthday: Jane")
	assert.Contains(t, ics, "SUMMARY:wedding anniversary: John Doe (year 10)")
	assert.Contains(t, ics, "CATEGORIES:holiday")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20251225")
	assert.Contains(t, ics, "DTSTAMP:20250615T100000Z")
	assert.Contains(t, ics, "@"+config.ICalDomain)

	again, err := snap.ICS()
	require.NoError(t, err)
	assert.Equal(t, data, again, "Export is deterministic")
}

func TestICS_Empty(t *testing.T) {
	snap, err := newGenerator(t.TempDir()).Load(context.Background())
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, snap.WriteICS(&buf))
	assert.Equal(t, config.StubVCalendar, buf.String())
}
