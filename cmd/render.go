package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"lab-timesheet/internal/model"
	"lab-timesheet/internal/utils"
)

func formatWeeks(weeks []model.WeekTotals) string {
	if len(weeks) == 0 {
		return "No weeks logged.\n"
	}

	var sb strings.Builder
	sb.WriteString(color.CyanString("Logged weeks\n"))
	for _, w := range weeks {
		fmt.Fprintf(&sb, "  %s  %s  %d entries\n",
			w.WeekKey, color.YellowString("%6s h", utils.FormatHours(w.TotalHours)), w.TotalEntries)
	}
	return sb.String()
}

func formatWeek(weekKey string, week model.WeekRecord) string {
	var sb strings.Builder
	sb.WriteString(color.CyanString("Week of %s\n", weekKey))

	if week.TotalEntries() == 0 {
		sb.WriteString("  nothing logged\n")
		return sb.String()
	}

	for _, date := range week.Dates() {
		bucket := week[date]
		if len(bucket) == 0 {
			continue
		}
		label := date
		if d, err := utils.ParseISO(date); err == nil {
			label = utils.DayLabel(d)
		}
		fmt.Fprintf(&sb, "%s  %s\n", label, color.HiBlackString(utils.HoursLabel(week.DayHours(date))))
		for i, a := range bucket {
			hours := ""
			if a.Hours != nil {
				hours = color.YellowString(" (%s)", utils.HoursLabel(*a.Hours))
			}
			fmt.Fprintf(&sb, "  %d. %s%s\n", i+1, a.Description, hours)
		}
	}
	fmt.Fprintf(&sb, "Total: %s, %d entries\n", utils.HoursLabel(week.TotalHours()), week.TotalEntries())
	return sb.String()
}
