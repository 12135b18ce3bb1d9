package date_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-reminder/internal/date"
)

// -----------------------------------------------------------------------------
// Parsing
// -----------------------------------------------------------------------------

func TestParseRecurring(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    date.Recurring
		wantErr bool
	}{
		{"Plain", "1,1", date.NewRecurring(1, 1), false},
		{"Spaces", "   2  , 2    ", date.NewRecurring(2, 2), false},
		{"Leading zeros", "05,09", date.NewRecurring(5, 9), false},
		{"Lenient day", "31,4", date.NewRecurring(31, 4), false},
		{"Missing day", ",3", date.Recurring{}, true},
		{"Missing month", "4,", date.Recurring{}, true},
		{"Negative day", "-5,5", date.Recurring{}, true},
		{"Negative month", "6,-6", date.Recurring{}, true},
		{"Extra slot", "7,7,7", date.Recurring{}, true},
		{"Single slot", "8", date.Recurring{}, true},
		{"Garbage", "a,b", date.Recurring{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := date.ParseRecurring(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRecurring_Reasons(t *testing.T) {
	_, err := date.ParseRecurring("8")
	assert.EqualError(t, err, "missing 'month' slot")

	_, err = date.ParseRecurring("7,7,7")
	assert.EqualError(t, err, "extra ',' found")

	_, err = date.ParseRecurring("x,1")
	assert.EqualError(t, err, "failed to parse day")
}

func TestParseFixed(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    date.Fixed
		wantErr bool
	}{
		{"Plain", "01,01,01", date.NewFixed(1, 1, 1), false},
		{"Spaces", "   2  , 2    ,   2   ", date.NewFixed(2, 2, 2), false},
		{"Negative year", "3,3,-44", date.NewFixed(3, 3, -44), false},
		{"Missing day", ",3,3", date.Fixed{}, true},
		{"Missing month", "4,,4", date.Fixed{}, true},
		{"Missing year", "5,5", date.Fixed{}, true},
		{"Empty year", "5,5,", date.Fixed{}, true},
		{"Negative day and month", "-6,-6,-6", date.Fixed{}, true},
		{"Extra slot", "7,7,7,7", date.Fixed{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := date.ParseFixed(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := date.ParseFixed("5,5")
	assert.EqualError(t, err, "missing 'year' slot")
}

func TestParseAny(t *testing.T) {
	got, err := date.ParseAny("1,1")
	require.NoError(t, err)
	assert.Equal(t, date.AnyDate(date.NewRecurring(1, 1)), got)

	got, err = date.ParseAny("2,2,2")
	require.NoError(t, err)
	assert.Equal(t, date.AnyDate(date.NewFixed(2, 2, 2)), got)

	_, err = date.ParseAny("3,3,")
	assert.ErrorIs(t, err, date.ErrNoDateFormat)

	_, err = date.ParseAny("3")
	assert.ErrorIs(t, err, date.ErrNoDateFormat)
}

func TestDisplayRoundTrip(t *testing.T) {
	for month := 1; month <= 12; month++ {
		for day := 1; day <= date.DaysIn(month, 2001); day++ {
			r, err := date.ParseRecurring(fmt.Sprintf("%d,%d", day, month))
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("%02d/%02d", day, month), r.String())

			f, err := date.ParseFixed(fmt.Sprintf("%d,%d,%d", day, month, 2001))
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("%02d/%02d/2001", day, month), f.String())
		}
	}
	assert.Equal(t, "09/04/0033", date.NewFixed(9, 4, 33).String())
}

// -----------------------------------------------------------------------------
// Ordering
// -----------------------------------------------------------------------------

func TestCompare(t *testing.T) {
	base := date.NewFixed(1, 1, 1)
	greater := []date.Fixed{
		date.NewFixed(1, 1, 2),
		date.NewFixed(1, 2, 1),
		date.NewFixed(2, 1, 1),
	}
	for _, g := range greater {
		assert.Equal(t, -1, base.Compare(g), "%s < %s", base, g)
		assert.Equal(t, 1, g.Compare(base), "%s > %s", g, base)
		assert.True(t, base.Before(g))
		assert.True(t, g.After(base))
	}
	assert.Equal(t, 0, base.Compare(base))

	// Year dominates month and day.
	assert.Equal(t, -1, date.NewFixed(31, 12, 1).Compare(date.NewFixed(1, 1, 2)))

	r := date.NewRecurring(1, 1)
	assert.Equal(t, -1, r.Compare(date.NewRecurring(1, 2)))
	assert.Equal(t, -1, r.Compare(date.NewRecurring(2, 1)))
	assert.Equal(t, 1, date.NewRecurring(1, 2).Compare(date.NewRecurring(31, 1)))
	assert.Equal(t, 0, r.Compare(r))
}

// -----------------------------------------------------------------------------
// Arithmetic
// -----------------------------------------------------------------------------

func TestNext(t *testing.T) {
	tests := []struct {
		name string
		from date.Fixed
		want date.Fixed
	}{
		{"Day", date.NewFixed(1, 1, 1970), date.NewFixed(2, 1, 1970)},
		{"Month", date.NewFixed(31, 1, 1970), date.NewFixed(1, 2, 1970)},
		{"Year", date.NewFixed(31, 12, 1970), date.NewFixed(1, 1, 1971)},
		{"February leap", date.NewFixed(28, 2, 2000), date.NewFixed(29, 2, 2000)},
		{"February not leap", date.NewFixed(28, 2, 1900), date.NewFixed(1, 3, 1900)},
		{"Thirty day month", date.NewFixed(30, 4, 2023), date.NewFixed(1, 5, 2023)},
		{"Invalid day rolls over", date.NewFixed(31, 4, 2023), date.NewFixed(1, 5, 2023)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.Next())
		})
	}
}

func TestNext_WholeYear(t *testing.T) {
	d := date.NewFixed(1, 1, 1971)
	for i := 0; i < 365; i++ {
		d = d.Next()
	}
	assert.Equal(t, date.NewFixed(1, 1, 1972), d)

	d = date.NewFixed(1, 1, 1972)
	for i := 0; i < 366; i++ {
		d = d.Next()
	}
	assert.Equal(t, date.NewFixed(1, 1, 1973), d)
}

func TestIsLeap(t *testing.T) {
	assert.True(t, date.IsLeap(2000))
	assert.True(t, date.IsLeap(2024))
	assert.False(t, date.IsLeap(1900))
	assert.False(t, date.IsLeap(2025))
	assert.True(t, date.IsLeap(-4))
}

func TestNextMatch(t *testing.T) {
	// Reference "today": June 15th, 2025 (non-leap year).
	today := date.NewFixed(15, 6, 2025)

	tests := []struct {
		name   string
		source date.Fixed
		want   date.Fixed
	}{
		{"Already passed this year", date.NewFixed(1, 1, 1990), date.NewFixed(1, 1, 2026)},
		{"Later this year", date.NewFixed(31, 12, 1990), date.NewFixed(31, 12, 2025)},
		{"Today", date.NewFixed(15, 6, 1990), date.NewFixed(15, 6, 2025)},
		{"Yesterday", date.NewFixed(14, 6, 1990), date.NewFixed(14, 6, 2026)},
		{"Future source year", date.NewFixed(1, 7, 2090), date.NewFixed(1, 7, 2025)},
		{"Leapling in non leap year", date.NewFixed(29, 2, 2000), date.NewFixed(28, 2, 2026)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.source.NextMatch(today))
		})
	}
}

func TestNextMatch_LeapYearContext(t *testing.T) {
	// Reference "today": Jan 1st, 2024 (leap year): Feb 29 exists and is kept.
	today := date.NewFixed(1, 1, 2024)
	assert.Equal(t, date.NewFixed(29, 2, 2024), date.NewRecurring(29, 2).NextMatch(today))

	// After Feb 29th 2024 the next match lands in 2025 and is clamped.
	today = date.NewFixed(1, 3, 2024)
	assert.Equal(t, date.NewFixed(28, 2, 2025), date.NewRecurring(29, 2).NextMatch(today))

	// On Feb 28th of a non leap year, Feb 29th resolves to today.
	today = date.NewFixed(28, 2, 2025)
	assert.Equal(t, today, date.NewRecurring(29, 2).NextMatch(today))
}

func TestNextMatch_StaysInWindow(t *testing.T) {
	today := date.NewFixed(10, 10, 2026)
	oneYear := date.NewFixed(10, 10, 2027)
	for month := 1; month <= 12; month++ {
		for day := 1; day <= date.DaysIn(month, 2024); day++ {
			got := date.NewRecurring(day, month).NextMatch(today)
			assert.False(t, got.Before(today), "%s before today", got)
			assert.True(t, got.Before(oneYear), "%s not within a year", got)
		}
	}
}

func TestYearDiff(t *testing.T) {
	today := date.NewFixed(15, 6, 2025)
	birth := date.NewFixed(1, 1, 1990)
	assert.Equal(t, 36, birth.YearDiff(birth.NextMatch(today)))

	wedding := date.NewFixed(31, 12, 2000)
	assert.Equal(t, 25, wedding.YearDiff(wedding.NextMatch(today)))
}

func TestTo(t *testing.T) {
	assert.Equal(t, 0, date.NewFixed(1, 1, 2000).To(date.NewFixed(1, 1, 2000)))
	assert.Equal(t, 0, date.NewFixed(2, 1, 2000).To(date.NewFixed(1, 1, 2000)))
	assert.Equal(t, 1, date.NewFixed(31, 12, 1999).To(date.NewFixed(1, 1, 2000)))
	assert.Equal(t, 61, date.NewFixed(1, 7, 2023).To(date.NewFixed(31, 8, 2023)))
	assert.Equal(t, 366, date.NewFixed(1, 1, 2000).To(date.NewFixed(1, 1, 2001)))
	assert.Equal(t, 36524, date.NewFixed(1, 1, 1900).To(date.NewFixed(1, 1, 2000)))
}

func TestTo_MatchesIteration(t *testing.T) {
	from := date.NewFixed(20, 2, 1896)
	current := from
	for steps := 0; steps < 3*366; steps++ {
		require.Equal(t, steps, from.To(current), "from %s to %s", from, current)
		current = current.Next()
	}

	// Negative years follow the proleptic calendar.
	assert.Equal(t, 366, date.NewFixed(1, 1, -4).To(date.NewFixed(1, 1, -3)))
}

// -----------------------------------------------------------------------------
// Clock
// -----------------------------------------------------------------------------

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func TestToday(t *testing.T) {
	c := fixedClock{now: time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)}
	assert.Equal(t, date.NewFixed(1, 6, 2025), date.Today(c))

	assert.True(t, date.NewFixed(1, 1, 1970).Before(date.Today(date.RealClock{})))
}

func TestFixedTime(t *testing.T) {
	got := date.NewFixed(29, 2, 2024).Time(time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, date.NewFixed(29, 2, 2024), date.FromTime(got))
}
