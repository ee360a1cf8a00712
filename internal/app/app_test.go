package app

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab-timesheet/internal/config"
	"lab-timesheet/internal/services"
)

func TestOpenServicesBackends(t *testing.T) {
	for _, backendName := range []string{config.BackendJSON, config.BackendSQLite} {
		t.Run(backendName, func(t *testing.T) {
			dir := t.TempDir()
			cfg := &config.Config{Timezone: "UTC"}
			cfg.Database.Backend = backendName
			cfg.Database.Path = filepath.Join(dir, "db", "timesheet.db")
			cfg.Database.JSONPath = filepath.Join(dir, "json", "activities.json")
			cfg.Student.Name = "Ada Lovelace"

			ctx := context.Background()
			sm, closeFn, err := OpenServices(cfg)
			require.NoError(t, err)
			defer closeFn()

			assert.Nil(t, sm.Reminders)

			day := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
			_, err = sm.Activities.AddActivity(ctx, day, "Ran PCR", nil)
			require.NoError(t, err)
			hours := 3.0
			_, err = sm.Activities.AddActivity(ctx, day, "Imaged gels", &hours)
			require.NoError(t, err)

			sheet, err := sm.Timesheet.Generate(ctx, "2026-01-05")
			require.NoError(t, err)
			assert.Equal(t, "Timesheet_Ada_Lovelace_2026-01-05.pdf", sheet.FileName)
			assert.True(t, bytes.HasPrefix(sheet.Content, []byte("%PDF")))
			assert.Equal(t, services.FallbackSummary, sheet.Summary)
		})
	}
}

func TestNewRequiresTelegramToken(t *testing.T) {
	cfg := &config.Config{}
	_, err := New(cfg)
	assert.Error(t, err)
}
