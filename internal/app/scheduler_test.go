package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// nextRun reports when the job called name fires after t.
func nextRun(s *cronScheduler, name string, t time.Time) (time.Time, bool) {
	s.mu.Lock()
	id, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	entry := s.cron.Entry(id)
	if !entry.Valid() {
		return time.Time{}, false
	}
	return entry.Schedule.Next(t), true
}

func TestDailySpec(t *testing.T) {
	tests := []struct {
		hour, minute int
		days         []time.Weekday
		want         string
	}{
		{17, 30, weekdays, "30 17 * * 1-5"},
		{9, 0, nil, "0 9 * * *"},
		{0, 5, []time.Weekday{time.Sunday, time.Saturday}, "5 0 * * 0,6"},
	}
	for _, tt := range tests {
		spec, err := dailySpec(tt.hour, tt.minute, tt.days)
		require.NoError(t, err)
		assert.Equal(t, tt.want, spec)
	}

	_, err := dailySpec(24, 0, weekdays)
	assert.Error(t, err)
}

func TestCronSchedulerReplacesJob(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	s := newCronScheduler(loc)

	require.NoError(t, s.ScheduleDaily("reminder:1", 17, 0, weekdays, func() {}))
	require.NoError(t, s.ScheduleDaily("reminder:1", 18, 30, weekdays, func() {}))
	assert.Len(t, s.cron.Entries(), 1)

	// Friday 20:00 in New York: next weekday run is Monday 18:30 local
	friday := time.Date(2026, 1, 9, 20, 0, 0, 0, loc)
	next, ok := nextRun(s, "reminder:1", friday)
	require.True(t, ok)
	assert.True(t, next.Equal(time.Date(2026, 1, 12, 18, 30, 0, 0, loc)), "next run %s", next)
}

func TestCronSchedulerCancel(t *testing.T) {
	s := newCronScheduler(time.UTC)

	require.NoError(t, s.ScheduleDaily("reminder:1", 17, 0, weekdays, func() {}))
	s.Cancel("reminder:1")
	s.Cancel("reminder:unknown")

	assert.Empty(t, s.cron.Entries())
	_, ok := nextRun(s, "reminder:1", time.Now())
	assert.False(t, ok)
}
