package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab-timesheet/internal/model"
)

func TestRenderProducesPDF(t *testing.T) {
	doc := model.TimesheetDocument{
		StudentName: "Zoë Ramírez",
		StudentID:   "903123456",
		WeekStart:   "2026-01-05",
		Days: []model.DayRow{
			{Label: "Monday, January 05", DateText: "01/05/2026", TimeIn: model.LabTimeIn, TimeOut: model.LabTimeOut},
			{Label: "Saturday, January 10", DateText: "01/10/2026"},
		},
		Summary: "Ran PCR on the new samples and imaged the gels. " +
			"Prepared buffers for next week's western blots and attended journal club.",
	}

	out, err := NewRenderer("").Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Greater(t, len(out), 500)
}

func TestRenderEmptyDocument(t *testing.T) {
	out, err := NewRenderer("Project Timesheet").Render(model.TimesheetDocument{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestTableRows(t *testing.T) {
	rows := tableRows([]model.DayRow{
		{Label: "Wednesday, January 07", TimeIn: "2:30 PM"},
		{Label: "Sunday, January 11"},
		{Label: "Monday, January 05"},
	})

	labels := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = row.Label
	}
	assert.Equal(t, []string{
		"Monday, January 05",
		"Tuesday",
		"Wednesday, January 07",
		"Thursday",
		"Friday",
		"Sunday, January 11",
	}, labels)
	assert.Equal(t, "2:30 PM", rows[2].TimeIn)
}
