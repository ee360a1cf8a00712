package database

import (
	"database/sql"
	"fmt"
	"time"

	"lab-timesheet/internal/model"
)

const timestampLayout = time.RFC3339Nano

// activityRow mirrors one row of the activities table.
type activityRow struct {
	WeekKey     string
	Date        string
	Position    int
	Description string
	Hours       sql.NullFloat64
	LoggedAt    string
}

func (r activityRow) toActivity() (model.Activity, error) {
	loggedAt, err := time.Parse(timestampLayout, r.LoggedAt)
	if err != nil {
		return model.Activity{}, fmt.Errorf("activity %s #%d: bad logged_at %q: %w", r.Date, r.Position, r.LoggedAt, err)
	}

	activity := model.Activity{
		Description: r.Description,
		LoggedAt:    loggedAt,
	}
	if r.Hours.Valid {
		hours := r.Hours.Float64
		activity.Hours = &hours
	}
	return activity, nil
}

func hoursValue(a model.Activity) sql.NullFloat64 {
	if a.Hours == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *a.Hours, Valid: true}
}
