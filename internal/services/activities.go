package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"lab-timesheet/internal/model"
	"lab-timesheet/internal/utils"
)

// Persistence loads and saves the whole activity store at once.
type Persistence interface {
	Load(ctx context.Context) (model.Snapshot, error)
	Save(ctx context.Context, snapshot model.Snapshot) error
}

// ActivityService is the week-keyed activity store. Every mutation is a
// read-modify-write of the full snapshot performed under one lock, so
// two chats logging at once can never lose each other's updates.
type ActivityService struct {
	persistence Persistence
	now         func() time.Time
	mu          sync.RWMutex
}

func NewActivityService(persistence Persistence, now func() time.Time) *ActivityService {
	if now == nil {
		now = time.Now
	}
	return &ActivityService{
		persistence: persistence,
		now:         now,
	}
}

// AddActivity appends an activity to the day bucket of date, creating the
// week and the day when needed.
func (as *ActivityService) AddActivity(ctx context.Context, date time.Time, description string, hours *float64) (model.Activity, error) {
	activity := model.Activity{
		Description: description,
		LoggedAt:    as.now(),
	}
	if hours != nil {
		h := *hours
		activity.Hours = &h
	}

	weekKey := utils.WeekKeyOf(date)
	day := utils.FormatISO(utils.DateOf(date))

	err := as.mutate(ctx, func(snapshot model.Snapshot) bool {
		week, ok := snapshot[weekKey]
		if !ok {
			week = make(model.WeekRecord)
			snapshot[weekKey] = week
		}
		week[day] = append(week[day], activity)
		return true
	})
	if err != nil {
		return model.Activity{}, fmt.Errorf("adding activity for %s: %w", day, err)
	}
	return activity, nil
}

// GetWeek returns a copy of the week record; a missing week is empty.
func (as *ActivityService) GetWeek(ctx context.Context, weekKey string) (model.WeekRecord, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	snapshot, err := as.persistence.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading week %s: %w", weekKey, err)
	}
	week := snapshot[weekKey].Clone()
	if week == nil {
		week = model.WeekRecord{}
	}
	return week, nil
}

// ActivitiesOn returns the activities logged on date.
func (as *ActivityService) ActivitiesOn(ctx context.Context, date time.Time) ([]model.Activity, error) {
	week, err := as.GetWeek(ctx, utils.WeekKeyOf(date))
	if err != nil {
		return nil, err
	}
	return week[utils.FormatISO(utils.DateOf(date))], nil
}

// ListWeeks returns every stored week with its totals, newest first.
func (as *ActivityService) ListWeeks(ctx context.Context) ([]model.WeekTotals, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	snapshot, err := as.persistence.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing weeks: %w", err)
	}

	weeks := make([]model.WeekTotals, 0, len(snapshot))
	for weekKey, week := range snapshot {
		weeks = append(weeks, model.WeekTotals{
			WeekKey:      weekKey,
			TotalHours:   week.TotalHours(),
			TotalEntries: week.TotalEntries(),
		})
	}
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].WeekKey > weeks[j].WeekKey
	})
	return weeks, nil
}

// DeleteWeek removes a whole week. It reports false when the week does
// not exist.
func (as *ActivityService) DeleteWeek(ctx context.Context, weekKey string) (bool, error) {
	deleted := false
	err := as.mutate(ctx, func(snapshot model.Snapshot) bool {
		if _, ok := snapshot[weekKey]; !ok {
			return false
		}
		delete(snapshot, weekKey)
		deleted = true
		return true
	})
	if err != nil {
		return false, fmt.Errorf("deleting week %s: %w", weekKey, err)
	}
	return deleted, nil
}

// DeleteActivity removes the activity at index from the day bucket of
// date. A missing week, day or index is not an error; it reports false.
// The day and week keys are kept even when the bucket becomes empty.
func (as *ActivityService) DeleteActivity(ctx context.Context, weekKey, date string, index int) (bool, error) {
	deleted := false
	err := as.mutate(ctx, func(snapshot model.Snapshot) bool {
		week, ok := snapshot[weekKey]
		if !ok {
			return false
		}
		bucket, ok := week[date]
		if !ok || index < 0 || index >= len(bucket) {
			return false
		}
		week[date] = append(bucket[:index:index], bucket[index+1:]...)
		deleted = true
		return true
	})
	if err != nil {
		return false, fmt.Errorf("deleting activity %s #%d: %w", date, index, err)
	}
	return deleted, nil
}

// Import merges snapshot into the store, appending imported activities
// after the ones already logged on the same day. It returns the number of
// activities added.
func (as *ActivityService) Import(ctx context.Context, imported model.Snapshot) (int, error) {
	added := 0
	err := as.mutate(ctx, func(snapshot model.Snapshot) bool {
		for _, week := range imported {
			for date, bucket := range week {
				d, err := utils.ParseISO(date)
				if err != nil {
					continue
				}
				// Re-key by the date itself so a misfiled day lands in its real week.
				weekKey := utils.WeekKeyOf(d)
				target, ok := snapshot[weekKey]
				if !ok {
					target = make(model.WeekRecord)
					snapshot[weekKey] = target
				}
				target[date] = append(target[date], model.WeekRecord{date: bucket}.Clone()[date]...)
				added += len(bucket)
			}
		}
		return added > 0
	})
	if err != nil {
		return 0, fmt.Errorf("importing activities: %w", err)
	}
	return added, nil
}

// mutate runs change against a freshly loaded snapshot and saves it when
// change reports a modification.
func (as *ActivityService) mutate(ctx context.Context, change func(model.Snapshot) bool) error {
	as.mu.Lock()
	defer as.mu.Unlock()

	snapshot, err := as.persistence.Load(ctx)
	if err != nil {
		return err
	}
	if snapshot == nil {
		snapshot = make(model.Snapshot)
	}
	if !change(snapshot) {
		return nil
	}
	return as.persistence.Save(ctx, snapshot)
}
