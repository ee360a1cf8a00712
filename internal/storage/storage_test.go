package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab-timesheet/internal/model"
	"lab-timesheet/internal/services"
	"lab-timesheet/internal/storage"
)

func TestLoadNotExist(t *testing.T) {
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "lab_activities.json"))

	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lab_activities.json")
	store := storage.NewFileStore(path)
	ctx := context.Background()

	h := 3.5
	loggedAt := time.Date(2026, 1, 6, 16, 0, 0, 0, time.UTC)
	snapshot := model.Snapshot{
		"2026-01-05": {
			"2026-01-06": {
				{Description: "Ran PCR samples", Hours: &h, LoggedAt: loggedAt},
				{Description: "Cleaned bench", LoggedAt: loggedAt},
			},
			"2026-01-07": {},
		},
	}
	require.NoError(t, store.Save(ctx, snapshot))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	bucket := loaded["2026-01-05"]["2026-01-06"]
	require.Len(t, bucket, 2)
	assert.Equal(t, "Ran PCR samples", bucket[0].Description)
	assert.Equal(t, 3.5, *bucket[0].Hours)
	assert.True(t, loggedAt.Equal(bucket[0].LoggedAt))
	assert.Nil(t, bucket[1].Hours)
	assert.Contains(t, loaded["2026-01-05"], "2026-01-07")
}

func TestLoadCorruptKeepsFailing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab_activities.json")
	corrupt := []byte(`{"2026-01-05": {"2026-01-06": [{"activity": "Ran PCR`)
	require.NoError(t, os.WriteFile(path, corrupt, 0o600))

	ctx := context.Background()
	activities := services.NewActivityService(storage.NewFileStore(path), nil)

	_, err := activities.ListWeeks(ctx)
	require.Error(t, err)

	_, err = activities.AddActivity(ctx, time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC), "Imaging", nil)
	require.Error(t, err, "a write must not start a fresh history over a corrupt file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, corrupt, data)
}

func TestDecodeLegacyTimestamps(t *testing.T) {
	data := []byte(`{
  "2026-01-05": {
    "2026-01-05": [
      {"activity": "Cultured cells", "timestamp": "2026-01-05T14:31:02.123456", "hours": 3},
      {"activity": "Lab meeting", "timestamp": "2026-01-05T17:00:00"}
    ]
  }
}`)

	snapshot, err := storage.Decode(data)
	require.NoError(t, err)

	bucket := snapshot["2026-01-05"]["2026-01-05"]
	require.Len(t, bucket, 2)
	assert.Equal(t, 3.0, *bucket[0].Hours)
	assert.Equal(t, 14, bucket[0].LoggedAt.Hour())
	assert.Nil(t, bucket[1].Hours)
}

func TestDecodeBadTimestamp(t *testing.T) {
	_, err := storage.Decode([]byte(`{"2026-01-05": {"2026-01-05": [{"activity": "x", "timestamp": "yesterday"}]}}`))
	assert.Error(t, err)
}
