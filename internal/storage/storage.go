// Package storage keeps the activity store in a single JSON file, in the
// lab_activities.json layout:
//
//	{"<week key>": {"<date>": [{"activity": "...", "hours": 3, "timestamp": "..."}]}}
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lab-timesheet/internal/model"
)

// Timestamps written by older tools carry no zone; they are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

type fileActivity struct {
	Activity  string   `json:"activity"`
	Hours     *float64 `json:"hours,omitempty"`
	Timestamp string   `json:"timestamp"`
}

type fileSnapshot map[string]map[string][]fileActivity

// FileStore persists the activity store as one JSON document.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path. The file is created on
// first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the whole store. A missing file is an empty store. A corrupt
// file is left in place and keeps failing until it is repaired.
func (s *FileStore) Load(_ context.Context) (model.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return model.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}

	snapshot, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("corrupt JSON in %s: %w", s.path, err)
	}
	return snapshot, nil
}

// Save atomically replaces the file with snapshot.
func (s *FileStore) Save(_ context.Context, snapshot model.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := Encode(snapshot)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file then rename.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// Decode parses a JSON document in the lab_activities.json layout.
func Decode(data []byte) (model.Snapshot, error) {
	var raw fileSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	snapshot := make(model.Snapshot, len(raw))
	for weekKey, days := range raw {
		week := make(model.WeekRecord, len(days))
		for date, entries := range days {
			bucket := make([]model.Activity, 0, len(entries))
			for _, entry := range entries {
				loggedAt, err := parseTimestamp(entry.Timestamp)
				if err != nil {
					return nil, fmt.Errorf("week %s, day %s: %w", weekKey, date, err)
				}
				bucket = append(bucket, model.Activity{
					Description: entry.Activity,
					Hours:       entry.Hours,
					LoggedAt:    loggedAt,
				})
			}
			week[date] = bucket
		}
		snapshot[weekKey] = week
	}
	return snapshot, nil
}

// Encode renders snapshot as indented JSON.
func Encode(snapshot model.Snapshot) ([]byte, error) {
	raw := make(fileSnapshot, len(snapshot))
	for weekKey, week := range snapshot {
		days := make(map[string][]fileActivity, len(week))
		for date, bucket := range week {
			entries := make([]fileActivity, 0, len(bucket))
			for _, a := range bucket {
				entries = append(entries, fileActivity{
					Activity:  a.Description,
					Hours:     a.Hours,
					Timestamp: a.LoggedAt.Format(time.RFC3339Nano),
				})
			}
			days[date] = entries
		}
		raw[weekKey] = days
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("storage error marshalling JSON: %w", err)
	}
	return data, nil
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
