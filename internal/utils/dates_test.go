package utils_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab-timesheet/internal/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekKeyOfIsMondayContainingDate(t *testing.T) {
	start := date(2024, 12, 20)
	for i := 0; i < 800; i++ {
		d := start.AddDate(0, 0, i)
		key := utils.WeekKeyOf(d)

		monday, err := utils.ParseISO(key)
		require.NoError(t, err)
		assert.Equal(t, time.Monday, monday.Weekday(), "week key of %s", utils.FormatISO(d))

		dates, err := utils.DatesOfWeek(key)
		require.NoError(t, err)
		assert.Contains(t, dates, utils.FormatISO(d))
	}
}

func TestWeekKeyOfUsesLocalCalendarDate(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// Sunday evening in New York is already Monday in UTC.
	instant := time.Date(2026, 1, 4, 22, 0, 0, 0, ny)
	assert.Equal(t, "2025-12-29", utils.WeekKeyOf(utils.Today(instant, ny)))
	assert.Equal(t, "2026-01-05", utils.WeekKeyOf(utils.Today(instant, time.UTC)))
}

func TestDatesOfWeek(t *testing.T) {
	dates, err := utils.DatesOfWeek("2026-01-05")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08",
		"2026-01-09", "2026-01-10", "2026-01-11",
	}, dates)

	_, err = utils.DatesOfWeek("2026-01-06")
	assert.Error(t, err, "a Tuesday is not a week key")

	_, err = utils.DatesOfWeek("not-a-date")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	today := date(2026, 3, 18) // Wednesday

	tests := []struct {
		input string
		want  time.Time
	}{
		{"2026-03-02", date(2026, 3, 2)},
		{" 2026-3-2 ", date(2026, 3, 2)},
		{"03/02/2026", date(2026, 3, 2)},
		{"3/2", date(2026, 3, 2)},
		{"12/30", date(2025, 12, 30)},
		{"today", today},
		{"Yesterday", date(2026, 3, 17)},
		{"march 2", date(2026, 3, 2)},
		{"Mar 2nd, 2026", date(2026, 3, 2)},
		{"week of March 4", date(2026, 3, 2)},
		{"the week of 2026-03-06", date(2026, 3, 2)},
		{"monday", date(2026, 3, 16)},
		{"wed", today},
		{"last wednesday", date(2026, 3, 11)},
	}
	for _, tt := range tests {
		got, err := utils.ParseDate(tt.input, today)
		if assert.NoError(t, err, tt.input) {
			assert.Equal(t, tt.want, got, tt.input)
		}
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	today := date(2026, 3, 18)
	for _, input := range []string{"", "soon", "2026-02-30", "13/01", "smarch 4", "week of never"} {
		_, err := utils.ParseDate(input, today)
		assert.ErrorIs(t, err, utils.ErrUnrecognizedDate, input)
	}
}

func TestParseFlexibleDateWindow(t *testing.T) {
	today := date(2026, 3, 18)

	d, err := utils.ParseFlexibleDate(utils.FormatISO(today.AddDate(0, 0, -2)), today)
	require.NoError(t, err)
	assert.Equal(t, today.AddDate(0, 0, -2), d)

	_, err = utils.ParseFlexibleDate(utils.FormatISO(today.AddDate(0, 0, -60)), today)
	assert.NoError(t, err, "the 60th day back is still inside the window")

	d, err = utils.ParseFlexibleDate(utils.FormatISO(today.AddDate(0, 0, -61)), today)
	assert.True(t, errors.Is(err, utils.ErrDateOutOfRange))
	assert.Equal(t, today.AddDate(0, 0, -61), d, "out of range still reports the parsed date")

	_, err = utils.ParseFlexibleDate(utils.FormatISO(today.AddDate(0, 0, 1)), today)
	assert.ErrorIs(t, err, utils.ErrDateOutOfRange)

	_, err = utils.ParseFlexibleDate("whenever", today)
	assert.ErrorIs(t, err, utils.ErrUnrecognizedDate)
}

func TestMonthDayWithoutYearNeverLandsInTheFuture(t *testing.T) {
	today := date(2026, 1, 14)

	// tomorrow resolves to last year's date, far outside the window
	d, err := utils.ParseFlexibleDate("01/15", today)
	assert.ErrorIs(t, err, utils.ErrDateOutOfRange)
	assert.Equal(t, date(2025, 1, 15), d)

	_, err = utils.ParseFlexibleDate("Jan 15", today)
	assert.ErrorIs(t, err, utils.ErrDateOutOfRange)

	// a recent date in last December is accepted
	d, err = utils.ParseFlexibleDate("12/25", today)
	require.NoError(t, err)
	assert.Equal(t, date(2025, 12, 25), d)

	d, err = utils.ParseFlexibleDate("01/14", today)
	require.NoError(t, err)
	assert.Equal(t, today, d)

	_, err = utils.ParseFlexibleDate("whenever", today)
	assert.ErrorIs(t, err, utils.ErrUnrecognizedDate)
}

func TestDateInWeek(t *testing.T) {
	d, err := utils.DateInWeek("2026-01-05", time.Friday)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 1, 9), d)

	d, err = utils.DateInWeek("2026-01-05", time.Sunday)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 1, 11), d)
}

func TestDisplayFormats(t *testing.T) {
	d := date(2026, 1, 5)
	assert.Equal(t, "Monday, January 05", utils.DayLabel(d))
	assert.Equal(t, "01/05/2026", utils.SlashDate(d))
	assert.Equal(t, "Mon 01/05", utils.ShortDate(d))
	assert.Equal(t, "January 05, 2026", utils.LongDate(d))
}
