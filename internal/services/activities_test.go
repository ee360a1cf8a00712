package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab-timesheet/internal/model"
	"lab-timesheet/internal/services"
)

var loggedAt = time.Date(2026, 1, 7, 18, 0, 0, 0, time.UTC)

func newActivityService() (*services.ActivityService, *memoryPersistence) {
	persistence := &memoryPersistence{}
	return services.NewActivityService(persistence, fixedClock(loggedAt)), persistence
}

func TestAddActivityRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newActivityService()

	_, err := svc.AddActivity(ctx, date("2026-01-07"), "Ran PCR samples", hours(3.5))
	require.NoError(t, err)
	_, err = svc.AddActivity(ctx, date("2026-01-07"), "Read papers", nil)
	require.NoError(t, err)

	week, err := svc.GetWeek(ctx, "2026-01-05")
	require.NoError(t, err)
	require.Len(t, week["2026-01-07"], 2)

	first := week["2026-01-07"][0]
	assert.Equal(t, "Ran PCR samples", first.Description)
	require.NotNil(t, first.Hours)
	assert.Equal(t, 3.5, *first.Hours)
	assert.Equal(t, loggedAt, first.LoggedAt)

	second := week["2026-01-07"][1]
	assert.Equal(t, "Read papers", second.Description)
	assert.Nil(t, second.Hours)

	assert.Equal(t, 3.5, week.TotalHours())
	assert.Equal(t, 2, week.TotalEntries())
}

func TestGetWeekMissingIsEmpty(t *testing.T) {
	svc, persistence := newActivityService()

	week, err := svc.GetWeek(context.Background(), "2026-01-05")
	require.NoError(t, err)
	assert.Empty(t, week)
	assert.Zero(t, persistence.saves)
}

func TestGetWeekReturnsCopy(t *testing.T) {
	ctx := context.Background()
	svc, _ := newActivityService()

	_, err := svc.AddActivity(ctx, date("2026-01-05"), "Gel prep", hours(2))
	require.NoError(t, err)

	week, err := svc.GetWeek(ctx, "2026-01-05")
	require.NoError(t, err)
	week["2026-01-05"][0].Description = "changed"
	*week["2026-01-05"][0].Hours = 9

	again, err := svc.GetWeek(ctx, "2026-01-05")
	require.NoError(t, err)
	assert.Equal(t, "Gel prep", again["2026-01-05"][0].Description)
	assert.Equal(t, 2.0, *again["2026-01-05"][0].Hours)
}

func TestListWeeksNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newActivityService()

	for _, entry := range []struct {
		day   string
		hours *float64
	}{
		{"2025-12-30", hours(3)},
		{"2026-01-12", hours(1.5)},
		{"2026-01-06", hours(2)},
		{"2026-01-08", nil},
	} {
		_, err := svc.AddActivity(ctx, date(entry.day), "work", entry.hours)
		require.NoError(t, err)
	}

	weeks, err := svc.ListWeeks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.WeekTotals{
		{WeekKey: "2026-01-12", TotalHours: 1.5, TotalEntries: 1},
		{WeekKey: "2026-01-05", TotalHours: 2, TotalEntries: 2},
		{WeekKey: "2025-12-29", TotalHours: 3, TotalEntries: 1},
	}, weeks)
}

func TestDeleteActivity(t *testing.T) {
	ctx := context.Background()
	svc, persistence := newActivityService()

	_, err := svc.AddActivity(ctx, date("2026-01-06"), "first", hours(1))
	require.NoError(t, err)
	_, err = svc.AddActivity(ctx, date("2026-01-06"), "second", hours(2))
	require.NoError(t, err)
	saves := persistence.saves

	tests := []struct {
		name    string
		weekKey string
		day     string
		index   int
	}{
		{"missing week", "2025-12-29", "2026-01-06", 0},
		{"missing day", "2026-01-05", "2026-01-07", 0},
		{"index too large", "2026-01-05", "2026-01-06", 2},
		{"negative index", "2026-01-05", "2026-01-06", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted, err := svc.DeleteActivity(ctx, tt.weekKey, tt.day, tt.index)
			require.NoError(t, err)
			assert.False(t, deleted)
		})
	}
	assert.Equal(t, saves, persistence.saves)

	deleted, err := svc.DeleteActivity(ctx, "2026-01-05", "2026-01-06", 0)
	require.NoError(t, err)
	assert.True(t, deleted)

	week, err := svc.GetWeek(ctx, "2026-01-05")
	require.NoError(t, err)
	require.Len(t, week["2026-01-06"], 1)
	assert.Equal(t, "second", week["2026-01-06"][0].Description)
}

func TestDeletingLastActivityKeepsDayAndWeek(t *testing.T) {
	ctx := context.Background()
	svc, _ := newActivityService()

	_, err := svc.AddActivity(ctx, date("2026-01-09"), "only", hours(3))
	require.NoError(t, err)

	deleted, err := svc.DeleteActivity(ctx, "2026-01-05", "2026-01-09", 0)
	require.NoError(t, err)
	require.True(t, deleted)

	week, err := svc.GetWeek(ctx, "2026-01-05")
	require.NoError(t, err)
	bucket, ok := week["2026-01-09"]
	assert.True(t, ok)
	assert.Empty(t, bucket)

	weeks, err := svc.ListWeeks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.WeekTotals{{WeekKey: "2026-01-05"}}, weeks)
}

func TestDeleteWeek(t *testing.T) {
	ctx := context.Background()
	svc, _ := newActivityService()

	_, err := svc.AddActivity(ctx, date("2026-01-06"), "work", hours(3))
	require.NoError(t, err)

	deleted, err := svc.DeleteWeek(ctx, "2026-01-05")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteWeek(ctx, "2026-01-05")
	require.NoError(t, err)
	assert.False(t, deleted)

	weeks, err := svc.ListWeeks(ctx)
	require.NoError(t, err)
	assert.Empty(t, weeks)
}

func TestActivitiesOn(t *testing.T) {
	ctx := context.Background()
	svc, _ := newActivityService()

	_, err := svc.AddActivity(ctx, date("2026-01-06"), "a", nil)
	require.NoError(t, err)
	_, err = svc.AddActivity(ctx, date("2026-01-07"), "b", nil)
	require.NoError(t, err)

	activities, err := svc.ActivitiesOn(ctx, date("2026-01-07"))
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "b", activities[0].Description)

	activities, err = svc.ActivitiesOn(ctx, date("2026-01-08"))
	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestAddActivityPersistenceFailure(t *testing.T) {
	svc, persistence := newActivityService()
	persistence.failSave = true

	_, err := svc.AddActivity(context.Background(), date("2026-01-06"), "work", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestConcurrentAddsDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newActivityService()

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := svc.AddActivity(ctx, date("2026-01-06"), fmt.Sprintf("writer %d entry %d", w, i), hours(1))
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	week, err := svc.GetWeek(ctx, "2026-01-05")
	require.NoError(t, err)
	assert.Equal(t, writers*perWriter, week.TotalEntries())
	assert.Equal(t, float64(writers*perWriter), week.TotalHours())
}

func TestImportMergesByDate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newActivityService()

	_, err := svc.AddActivity(ctx, date("2026-01-06"), "existing", hours(1))
	require.NoError(t, err)

	added, err := svc.Import(ctx, model.Snapshot{
		"2026-01-05": {
			"2026-01-06": {{Description: "imported", Hours: hours(2)}},
		},
		// misfiled under the wrong week key
		"2025-12-29": {
			"2026-01-13": {{Description: "moved"}},
			"not-a-date": {{Description: "skipped"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	week, err := svc.GetWeek(ctx, "2026-01-05")
	require.NoError(t, err)
	require.Len(t, week["2026-01-06"], 2)
	assert.Equal(t, "existing", week["2026-01-06"][0].Description)
	assert.Equal(t, "imported", week["2026-01-06"][1].Description)

	moved, err := svc.GetWeek(ctx, "2026-01-12")
	require.NoError(t, err)
	require.Len(t, moved["2026-01-13"], 1)

	stale, err := svc.GetWeek(ctx, "2025-12-29")
	require.NoError(t, err)
	assert.Empty(t, stale)
}
