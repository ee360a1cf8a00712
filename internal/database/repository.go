package database

import (
	"context"
	"database/sql"
	"fmt"

	"lab-timesheet/internal/model"
)

type Repository struct {
	Db *Database
}

func NewRepository(db *Database) *Repository {
	return &Repository{Db: db}
}

// Load reads the whole activity store.
func (r *Repository) Load(ctx context.Context) (model.Snapshot, error) {
	snapshot := make(model.Snapshot)

	weekRows, err := r.Db.db.QueryContext(ctx, `SELECT week_key FROM weeks`)
	if err != nil {
		return nil, fmt.Errorf("loading weeks: %w", err)
	}
	defer weekRows.Close()
	for weekRows.Next() {
		var weekKey string
		if err := weekRows.Scan(&weekKey); err != nil {
			return nil, fmt.Errorf("scanning week: %w", err)
		}
		snapshot[weekKey] = make(model.WeekRecord)
	}
	if err := weekRows.Err(); err != nil {
		return nil, fmt.Errorf("loading weeks: %w", err)
	}

	dayRows, err := r.Db.db.QueryContext(ctx, `SELECT week_key, date FROM days`)
	if err != nil {
		return nil, fmt.Errorf("loading days: %w", err)
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var weekKey, date string
		if err := dayRows.Scan(&weekKey, &date); err != nil {
			return nil, fmt.Errorf("scanning day: %w", err)
		}
		week, ok := snapshot[weekKey]
		if !ok {
			week = make(model.WeekRecord)
			snapshot[weekKey] = week
		}
		if _, ok := week[date]; !ok {
			week[date] = []model.Activity{}
		}
	}
	if err := dayRows.Err(); err != nil {
		return nil, fmt.Errorf("loading days: %w", err)
	}

	rows, err := r.Db.db.QueryContext(ctx, `
		SELECT week_key, date, position, description, hours, logged_at
		FROM activities
		ORDER BY week_key, date, position
	`)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row activityRow
		err := rows.Scan(
			&row.WeekKey,
			&row.Date,
			&row.Position,
			&row.Description,
			&row.Hours,
			&row.LoggedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		activity, err := row.toActivity()
		if err != nil {
			return nil, err
		}

		week, ok := snapshot[row.WeekKey]
		if !ok {
			week = make(model.WeekRecord)
			snapshot[row.WeekKey] = week
		}
		week[row.Date] = append(week[row.Date], activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}

	return snapshot, nil
}

// Save replaces the whole activity store in a single transaction.
func (r *Repository) Save(ctx context.Context, snapshot model.Snapshot) error {
	tx, err := r.Db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"activities", "days", "weeks"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	insertWeek, err := tx.PrepareContext(ctx, `INSERT INTO weeks (week_key) VALUES (?)`)
	if err != nil {
		return err
	}
	defer insertWeek.Close()

	insertDay, err := tx.PrepareContext(ctx, `INSERT INTO days (week_key, date) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer insertDay.Close()

	insertActivity, err := tx.PrepareContext(ctx, `
		INSERT INTO activities (week_key, date, position, description, hours, logged_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer insertActivity.Close()

	for weekKey, week := range snapshot {
		if _, err := insertWeek.ExecContext(ctx, weekKey); err != nil {
			return fmt.Errorf("saving week %s: %w", weekKey, err)
		}
		for date, bucket := range week {
			if _, err := insertDay.ExecContext(ctx, weekKey, date); err != nil {
				return fmt.Errorf("saving day %s: %w", date, err)
			}
			for position, activity := range bucket {
				_, err := insertActivity.ExecContext(ctx,
					weekKey,
					date,
					position,
					activity.Description,
					hoursValue(activity),
					activity.LoggedAt.Format(timestampLayout),
				)
				if err != nil {
					return fmt.Errorf("saving activity %s #%d: %w", date, position, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Reminder repository methods
func (r *Repository) SaveReminder(ctx context.Context, setting model.ReminderSetting) error {
	_, err := r.Db.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO reminders (chat_id, hour, minute, enabled, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, setting.ChatID, setting.Hour, setting.Minute, setting.Enabled)
	return err
}

func (r *Repository) ListReminders(ctx context.Context) ([]model.ReminderSetting, error) {
	rows, err := r.Db.db.QueryContext(ctx, `
		SELECT chat_id, hour, minute, enabled
		FROM reminders
		ORDER BY chat_id
	`)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var settings []model.ReminderSetting
	for rows.Next() {
		var setting model.ReminderSetting
		if err := rows.Scan(&setting.ChatID, &setting.Hour, &setting.Minute, &setting.Enabled); err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}

	return settings, rows.Err()
}
