package model

import (
	"sort"
	"time"
)

// Lab session convention applied to every day that has logged hours.
const (
	LabTimeIn       = "2:30 PM"
	LabTimeOut      = "5:30 PM"
	LabSessionHours = 3.0
)

// Activity is one logged unit of lab work.
type Activity struct {
	Description string
	Hours       *float64
	LoggedAt    time.Time
}

// HoursOrZero returns the logged hours, treating omitted hours as 0.
func (a Activity) HoursOrZero() float64 {
	if a.Hours == nil {
		return 0
	}
	return *a.Hours
}

// WeekRecord maps an ISO date to the activities logged on it, in log order.
type WeekRecord map[string][]Activity

// Dates returns the dates present in the record in ascending order.
func (w WeekRecord) Dates() []string {
	dates := make([]string, 0, len(w))
	for date := range w {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// DayHours sums the hours logged on date.
func (w WeekRecord) DayHours(date string) float64 {
	var total float64
	for _, a := range w[date] {
		total += a.HoursOrZero()
	}
	return total
}

// TotalHours sums the hours across the whole week.
func (w WeekRecord) TotalHours() float64 {
	var total float64
	for date := range w {
		total += w.DayHours(date)
	}
	return total
}

// TotalEntries counts the activities across the whole week.
func (w WeekRecord) TotalEntries() int {
	total := 0
	for _, bucket := range w {
		total += len(bucket)
	}
	return total
}

// Clone returns a deep copy, so callers can never mutate stored buckets.
func (w WeekRecord) Clone() WeekRecord {
	if w == nil {
		return nil
	}
	out := make(WeekRecord, len(w))
	for date, bucket := range w {
		copied := make([]Activity, len(bucket))
		for i, a := range bucket {
			copied[i] = a
			if a.Hours != nil {
				h := *a.Hours
				copied[i].Hours = &h
			}
		}
		out[date] = copied
	}
	return out
}

// Snapshot is the whole activity store keyed by week key (Monday, ISO).
type Snapshot map[string]WeekRecord

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for key, week := range s {
		out[key] = week.Clone()
	}
	return out
}

// WeekTotals is the per-week aggregate shown in week listings.
type WeekTotals struct {
	WeekKey      string
	TotalHours   float64
	TotalEntries int
}
