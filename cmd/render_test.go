package cmd

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"lab-timesheet/internal/model"
)

func TestFormatWeeks(t *testing.T) {
	color.NoColor = true

	assert.Equal(t, "No weeks logged.\n", formatWeeks(nil))

	out := formatWeeks([]model.WeekTotals{
		{WeekKey: "2026-01-12", TotalHours: 7.5, TotalEntries: 3},
		{WeekKey: "2026-01-05", TotalHours: 0, TotalEntries: 1},
	})
	assert.Equal(t, "Logged weeks\n"+
		"  2026-01-12     7.5 h  3 entries\n"+
		"  2026-01-05       0 h  1 entries\n", out)
}

func TestFormatWeek(t *testing.T) {
	color.NoColor = true

	three := 3.0
	out := formatWeek("2026-01-05", model.WeekRecord{
		"2026-01-07": {{Description: "Imaging", Hours: &three}, {Description: "Journal club"}},
		"2026-01-06": {},
	})
	assert.Equal(t, "Week of 2026-01-05\n"+
		"Wednesday, January 07  3 hours\n"+
		"  1. Imaging (3 hours)\n"+
		"  2. Journal club\n"+
		"Total: 3 hours, 2 entries\n", out)

	assert.Equal(t, "Week of 2026-01-05\n  nothing logged\n", formatWeek("2026-01-05", model.WeekRecord{}))
}
