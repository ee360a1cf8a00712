package dialog

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"lab-timesheet/internal/utils"
)

const helpText = `🧪 <b>Lab Timesheet</b>

Send me what you did today and I'll log it, e.g.
<i>Ran PCR samples and analyzed gel results. 3.5 hours</i>

📝 /log - how to log today's work
📊 /week - this week so far
📅 /backlog - log a past day (up to 60 days back)
🗓 /bulk - log the same work on several days of one week
📄 /generate - timesheet PDF for this week
📚 /weeks - view, generate or delete past weeks
⏰ /reminder - daily weekday reminder (HH:MM or off)
🗑 /delete &lt;day&gt; &lt;n&gt; - remove entry n of a day this week
❌ /cancel - stop the current step`

const logPrompt = `📝 Just send what you worked on today. Hours are optional:
<i>Cultured cells. 4 hours</i>
<i>Lab meeting (1.5 hrs)</i>`

const backlogDatePrompt = `📅 Which day? For example <i>yesterday</i>, <i>last friday</i>, <i>01/05</i>, <i>Jan 5</i> or <i>2026-01-05</i>.`

const bulkWeekDatePrompt = `🗓 Which week? Send any date in it or <i>week of Jan 5</i>.`

const bulkWeekDaysPrompt = `Which days? For example <i>mon wed fri</i>, <i>t th</i> or <i>all weekdays</i>.`

const reminderPrompt = `Send a time like <b>17:30</b>, or <b>off</b> to turn the reminder off.`

const expiredButton = "⌛ That button has expired. Use the menu or send /help."

const deleteUsage = `Usage: /delete &lt;day&gt; &lt;n&gt;, e.g. <code>/delete mon 2</code> removes the second entry logged on Monday this week.`

// showWeek renders the week view of weekKey.
func (m *Machine) showWeek(ctx context.Context, weekKey string, keyboard [][]Button, inline bool) []Reply {
	week, err := m.store.GetWeek(ctx, weekKey)
	if err != nil {
		log.Printf("❌ Failed to load week %s: %v", weekKey, err)
		return []Reply{plain("⚠️ Could not load that week right now.")}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>Week of %s</b>\n", weekLabel(weekKey))

	if week.TotalEntries() == 0 {
		b.WriteString("\nNothing logged yet.")
		return []Reply{{Text: b.String(), Keyboard: keyboard, Inline: inline}}
	}

	for _, date := range week.Dates() {
		bucket := week[date]
		if len(bucket) == 0 {
			continue
		}
		day, err := utils.ParseISO(date)
		if err != nil {
			continue
		}

		dayHours := week.DayHours(date)
		fmt.Fprintf(&b, "\n%s <b>%s</b> · %s\n", utils.HoursEmoji(dayHours), utils.DayLabel(day), utils.HoursLabel(dayHours))
		for i, activity := range bucket {
			fmt.Fprintf(&b, "  %d. %s", i+1, html.EscapeString(activity.Description))
			if activity.Hours != nil {
				fmt.Fprintf(&b, " <i>(%s)</i>", utils.HoursLabel(*activity.Hours))
			}
			b.WriteByte('\n')
		}
	}

	entries := week.TotalEntries()
	fmt.Fprintf(&b, "\n<b>Total:</b> %s, %d %s", utils.HoursLabel(week.TotalHours()), entries, plural(entries, "entry", "entries"))
	return []Reply{{Text: b.String(), Keyboard: keyboard, Inline: inline}}
}

func loggedMessage(date time.Time, description string, hours *float64) string {
	hoursText := "no hours given"
	if hours != nil {
		hoursText = utils.HoursLabel(*hours)
	}
	return fmt.Sprintf("✅ Logged for <b>%s</b> (%s):\n<i>%s</i>",
		utils.DayLabel(date), hoursText, html.EscapeString(description))
}

func outOfRangeMessage(date time.Time) string {
	return fmt.Sprintf(
		"⛔ %s is outside the backlog window. Pick a day within the last %d days, not in the future.",
		utils.LongDate(date), utils.BacklogWindowDays,
	)
}

func weekLabel(weekKey string) string {
	monday, err := utils.ParseISO(weekKey)
	if err != nil {
		return weekKey
	}
	return utils.LongDate(monday)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
