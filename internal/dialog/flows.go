package dialog

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"
	"time"

	"lab-timesheet/internal/model"
	"lab-timesheet/internal/services"
	"lab-timesheet/internal/utils"
)

const saveFailed = "⚠️ Could not save that right now. Please try again."

func (m *Machine) logToday(ctx context.Context, input string) []Reply {
	today := m.today()
	hours, description := utils.ExtractHours(input)

	if _, err := m.store.AddActivity(ctx, today, description, hours); err != nil {
		log.Printf("❌ Failed to log activity: %v", err)
		return []Reply{plain(saveFailed)}
	}
	return []Reply{withMenu(loggedMessage(today, description, hours))}
}

func (m *Machine) onBacklogDate(s *session, input string) []Reply {
	date, err := utils.ParseFlexibleDate(input, m.today())
	switch {
	case errors.Is(err, utils.ErrDateOutOfRange):
		return []Reply{withCancel(outOfRangeMessage(date))}
	case err != nil:
		return []Reply{withCancel("🤔 I couldn't read that date.\n\n" + backlogDatePrompt)}
	}

	s.state = backlogActivity{date: date}
	return []Reply{withCancel(fmt.Sprintf(
		"📅 <b>%s</b>\n\nWhat did you work on? Add hours if you like, e.g. <i>Ran PCR samples. 3 hours</i>",
		utils.DayLabel(date),
	))}
}

func (m *Machine) onBacklogActivity(ctx context.Context, s *session, st backlogActivity, input string) []Reply {
	hours, description := utils.ExtractHours(input)
	if _, err := m.store.AddActivity(ctx, st.date, description, hours); err != nil {
		log.Printf("❌ Failed to log backlog activity for %s: %v", utils.FormatISO(st.date), err)
		return []Reply{withCancel(saveFailed)}
	}

	s.state = idle{}
	return []Reply{withMenu(loggedMessage(st.date, description, hours))}
}

func (m *Machine) onBulkWeekDate(s *session, input string) []Reply {
	date, err := utils.ParseFlexibleDate(input, m.today())
	switch {
	case errors.Is(err, utils.ErrDateOutOfRange):
		return []Reply{withCancel(outOfRangeMessage(date))}
	case err != nil:
		return []Reply{withCancel("🤔 I couldn't read that date.\n\n" + bulkWeekDatePrompt)}
	}

	weekKey := utils.WeekKeyOf(date)
	s.state = bulkWeekDays{weekKey: weekKey}
	return []Reply{withCancel(fmt.Sprintf(
		"🗓 Week of <b>%s</b>\n\n%s", weekLabel(weekKey), bulkWeekDaysPrompt,
	))}
}

func (m *Machine) onBulkWeekDays(s *session, st bulkWeekDays, input string) []Reply {
	days := utils.ExtractDayTokens(input)
	if len(days) == 0 {
		return []Reply{withCancel("🤔 I didn't recognize any days.\n\n" + bulkWeekDaysPrompt)}
	}

	days, skipped := m.splitBacklogDays(st.weekKey, days)
	if len(days) == 0 {
		return []Reply{withCancel(fmt.Sprintf(
			"⛔ %s %s outside the backlog window.\n\n%s",
			skippedDays(skipped), plural(len(skipped), "is", "are"), bulkWeekDaysPrompt,
		))}
	}

	s.state = bulkWeekActivity{weekKey: st.weekKey, days: days}
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Days: <b>%s</b>\n", utils.WeekdayNames(days))
	if len(skipped) > 0 {
		fmt.Fprintf(&b, "⏭ Skipping %s, outside the backlog window.\n", skippedDays(skipped))
	}
	fmt.Fprintf(&b, "\nWhat did you work on? Each day is logged as a %s lab session.", utils.HoursLabel(model.LabSessionHours))
	return []Reply{withCancel(b.String())}
}

// splitBacklogDays separates the weekdays of weekKey that fall inside the
// backlog window from those that don't, such as days later this week.
func (m *Machine) splitBacklogDays(weekKey string, days []time.Weekday) ([]time.Weekday, []time.Time) {
	today := m.today()
	var kept []time.Weekday
	var skipped []time.Time
	for _, weekday := range days {
		date, err := utils.DateInWeek(weekKey, weekday)
		if err != nil {
			log.Printf("❌ Bulk backlog: %v", err)
			continue
		}
		if !utils.WithinBacklogWindow(date, today) {
			skipped = append(skipped, date)
			continue
		}
		kept = append(kept, weekday)
	}
	return kept, skipped
}

func skippedDays(dates []time.Time) string {
	labels := make([]string, len(dates))
	for i, date := range dates {
		labels[i] = utils.ShortDate(date)
	}
	return strings.Join(labels, ", ")
}

func (m *Machine) onBulkWeekActivity(ctx context.Context, s *session, st bulkWeekActivity, input string) []Reply {
	today := m.today()
	var logged []time.Time
	for _, weekday := range st.days {
		date, err := utils.DateInWeek(st.weekKey, weekday)
		if err != nil {
			log.Printf("❌ Bulk backlog: %v", err)
			continue
		}
		if !utils.WithinBacklogWindow(date, today) {
			log.Printf("⏭ Bulk backlog: %s left the window, skipped", utils.FormatISO(date))
			continue
		}
		hours := model.LabSessionHours
		if _, err := m.store.AddActivity(ctx, date, input, &hours); err != nil {
			log.Printf("❌ Failed to log bulk activity for %s: %v", utils.FormatISO(date), err)
			if len(logged) == 0 {
				return []Reply{withCancel(saveFailed)}
			}
			break
		}
		logged = append(logged, date)
	}

	s.state = idle{}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Logged <i>%s</i> (%s each) on:\n", html.EscapeString(input), utils.HoursLabel(model.LabSessionHours))
	for _, date := range logged {
		fmt.Fprintf(&b, "• %s\n", utils.DayLabel(date))
	}
	if len(logged) < len(st.days) {
		b.WriteString("\n⚠️ Some days could not be saved. Check the week and try again for the missing ones.")
	}
	return []Reply{withMenu(strings.TrimRight(b.String(), "\n"))}
}

func (m *Machine) listPastWeeks(ctx context.Context, s *session) []Reply {
	weeks, err := m.store.ListWeeks(ctx)
	if err != nil {
		log.Printf("❌ Failed to list weeks: %v", err)
		return []Reply{withMenu("⚠️ Could not load your weeks right now.")}
	}
	if len(weeks) == 0 {
		return []Reply{withMenu("📭 No weeks logged yet.")}
	}
	if len(weeks) > MaxPastWeeks {
		weeks = weeks[:MaxPastWeeks]
	}

	s.state = pastWeekSelection{weeks: weeks}

	var b strings.Builder
	b.WriteString("📚 <b>Past weeks</b>\n\n")
	buttons := make([][]Button, 0, len(weeks)+1)
	for i, week := range weeks {
		fmt.Fprintf(&b, "%d. Week of %s · %s, %d %s\n",
			i+1, weekLabel(week.WeekKey), utils.HoursLabel(week.TotalHours),
			week.TotalEntries, plural(week.TotalEntries, "entry", "entries"))
		buttons = append(buttons, []Button{{
			Label: fmt.Sprintf("%d. %s", i+1, weekLabel(week.WeekKey)),
			Data:  strconv.Itoa(i + 1),
		}})
	}
	buttons = append(buttons, []Button{{Label: LabelCancel, Data: "cancel"}})
	b.WriteString("\nSend the number of the week you want.")

	return []Reply{{Text: b.String(), Keyboard: buttons, Inline: true}}
}

func (m *Machine) onPastWeekSelection(ctx context.Context, s *session, st pastWeekSelection, input string) []Reply {
	n, err := strconv.Atoi(strings.TrimSuffix(input, "."))
	if err != nil {
		return []Reply{plain(fmt.Sprintf("🔢 Send a number between 1 and %d.", len(st.weeks)))}
	}
	if n < 1 || n > len(st.weeks) {
		return []Reply{plain(fmt.Sprintf("🔢 There is no week %d. Pick a number between 1 and %d.", n, len(st.weeks)))}
	}

	weekKey := st.weeks[n-1].WeekKey
	s.state = pastWeekAction{weekKey: weekKey}
	return m.showWeek(ctx, weekKey, pastWeekActions(), true)
}

func (m *Machine) onPastWeekAction(ctx context.Context, s *session, st pastWeekAction, input string) []Reply {
	switch parsePastWeekVerb(input) {
	case verbView:
		return m.showWeek(ctx, st.weekKey, pastWeekActions(), true)
	case verbGenerate:
		return m.generate(ctx, s, st.weekKey)
	case verbDelete:
		deleted, err := m.store.DeleteWeek(ctx, st.weekKey)
		if err != nil {
			log.Printf("❌ Failed to delete week %s: %v", st.weekKey, err)
			return []Reply{plain(saveFailed)}
		}
		s.state = idle{}
		if !deleted {
			return []Reply{withMenu(fmt.Sprintf("Week of %s was already gone.", weekLabel(st.weekKey)))}
		}
		return []Reply{withMenu(fmt.Sprintf("🗑 Deleted week of %s.", weekLabel(st.weekKey)))}
	default:
		return []Reply{{
			Text:     "Choose <b>view</b>, <b>generate</b> or <b>delete</b>, or cancel.",
			Keyboard: pastWeekActions(),
			Inline:   true,
		}}
	}
}

// generate renders weekKey. On failure the session keeps its mode so the
// user can retry.
func (m *Machine) generate(ctx context.Context, s *session, weekKey string) []Reply {
	if m.timesheets == nil {
		return []Reply{plain("⚠️ Timesheet generation is not configured.")}
	}

	sheet, err := m.timesheets.Generate(ctx, weekKey)
	if errors.Is(err, services.ErrNoData) {
		return []Reply{plain(fmt.Sprintf("📭 Nothing logged for the week of %s yet.", weekLabel(weekKey)))}
	}
	if err != nil {
		log.Printf("❌ Timesheet generation failed for %s: %v", weekKey, err)
		return []Reply{plain("⚠️ Could not generate the timesheet. Please try again.")}
	}

	s.state = idle{}
	return []Reply{
		{
			Text:     fmt.Sprintf("📄 Timesheet for the week of <b>%s</b>", weekLabel(weekKey)),
			Document: &Document{Name: sheet.FileName, Content: sheet.Content},
		},
		withMenu("📝 <b>Weekly summary</b>\n\n" + html.EscapeString(sheet.Summary)),
	}
}

func (m *Machine) startReminder(ctx context.Context, s *session, chatID int64, args string) []Reply {
	if m.reminders == nil {
		return []Reply{withMenu("⚠️ Reminders are not available.")}
	}
	if args != "" {
		return m.onReminderTime(ctx, s, chatID, args)
	}

	current := "You have no reminder set."
	if setting, ok := m.reminders.Get(chatID); ok {
		current = fmt.Sprintf("Your reminder is set for <b>%02d:%02d</b> on weekdays.", setting.Hour, setting.Minute)
	}

	s.state = reminderTime{}
	return []Reply{withCancel(current + "\n\n" + reminderPrompt)}
}

func (m *Machine) onReminderTime(ctx context.Context, s *session, chatID int64, input string) []Reply {
	if strings.EqualFold(input, "off") {
		disabled, err := m.reminders.Disable(ctx, chatID)
		if err != nil {
			log.Printf("❌ Failed to disable reminder for chat %d: %v", chatID, err)
			return []Reply{withCancel(saveFailed)}
		}
		s.state = idle{}
		if !disabled {
			return []Reply{withMenu("🔕 No reminder was set.")}
		}
		return []Reply{withMenu("🔕 Reminder turned off.")}
	}

	hour, minute, err := utils.ParseTimeOfDay(input)
	switch {
	case errors.Is(err, utils.ErrTimeOutOfRange):
		s.state = reminderTime{}
		return []Reply{withCancel("⏰ Hours go from 00 to 23 and minutes from 00 to 59.\n\n" + reminderPrompt)}
	case err != nil:
		s.state = reminderTime{}
		return []Reply{withCancel("🤔 I couldn't read that time.\n\n" + reminderPrompt)}
	}

	if err := m.reminders.Set(ctx, chatID, hour, minute); err != nil {
		log.Printf("❌ Failed to set reminder for chat %d: %v", chatID, err)
		s.state = reminderTime{}
		return []Reply{withCancel(saveFailed)}
	}

	s.state = idle{}
	return []Reply{withMenu(fmt.Sprintf("⏰ I'll remind you at <b>%02d:%02d</b> Monday to Friday.", hour, minute))}
}

// deleteActivity handles "/delete <day> <n>" against the current week.
func (m *Machine) deleteActivity(ctx context.Context, args string) []Reply {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return []Reply{withMenu(deleteUsage)}
	}
	days := utils.ExtractDayTokens(fields[0])
	n, err := strconv.Atoi(fields[1])
	if len(days) != 1 || err != nil || n < 1 {
		return []Reply{withMenu(deleteUsage)}
	}

	weekKey := utils.WeekKeyOf(m.today())
	date, err := utils.DateInWeek(weekKey, days[0])
	if err != nil {
		log.Printf("❌ Delete activity: %v", err)
		return []Reply{withMenu(deleteUsage)}
	}

	deleted, err := m.store.DeleteActivity(ctx, weekKey, utils.FormatISO(date), n-1)
	if err != nil {
		log.Printf("❌ Failed to delete activity: %v", err)
		return []Reply{withMenu(saveFailed)}
	}
	if !deleted {
		return []Reply{withMenu(fmt.Sprintf("Nothing to delete: there is no entry #%d on %s.", n, utils.DayLabel(date)))}
	}
	return []Reply{withMenu(fmt.Sprintf("🗑 Deleted entry #%d on %s.", n, utils.DayLabel(date)))}
}
