package utils

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// BacklogWindowDays is how far back a backlog entry may go.
const BacklogWindowDays = 60

const isoLayout = "2006-01-02"

var (
	ErrUnrecognizedDate = errors.New("unrecognized date")
	ErrDateOutOfRange   = errors.New("date outside the backlog window")
)

var (
	isoPattern      = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	slashPattern    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{4}))?$`)
	monthDayPattern = regexp.MustCompile(`^([a-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?$`)
	weekdayPattern  = regexp.MustCompile(`^(last\s+)?([a-z]+)$`)
)

var monthsByName = func() map[string]time.Month {
	months := make(map[string]time.Month)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		months[name] = m
		months[name[:3]] = m
	}
	months["sept"] = time.September
	return months
}()

var weekdaysByName = func() map[string]time.Weekday {
	days := make(map[string]time.Weekday)
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		days[name] = d
		days[name[:3]] = d
	}
	return days
}()

// LoadLocation resolves an IANA timezone name, falling back to UTC.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("⚠️ Unknown timezone %q, falling back to UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

// DateOf returns the calendar date of t (in t's own location) as
// midnight UTC. All date arithmetic in this repository works on such
// civil dates so that AddDate never crosses a DST boundary.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the civil date of now as seen in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}

// FormatISO formats a date as YYYY-MM-DD.
func FormatISO(d time.Time) string {
	return d.Format(isoLayout)
}

// ParseISO parses a YYYY-MM-DD date into a civil date.
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(isoLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// MondayOf returns the Monday of the week containing d.
func MondayOf(d time.Time) time.Time {
	d = DateOf(d)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekKeyOf returns the week key (Monday, ISO) of the week containing d.
func WeekKeyOf(d time.Time) string {
	return FormatISO(MondayOf(d))
}

// DatesOfWeek returns the seven ISO dates Monday..Sunday of weekKey.
func DatesOfWeek(weekKey string) ([]string, error) {
	monday, err := ParseISO(weekKey)
	if err != nil {
		return nil, err
	}
	if monday.Weekday() != time.Monday {
		return nil, fmt.Errorf("week key %s is a %s, not a Monday", weekKey, monday.Weekday())
	}

	dates := make([]string, 7)
	for i := range dates {
		dates[i] = FormatISO(monday.AddDate(0, 0, i))
	}
	return dates, nil
}

// DateInWeek returns the date of weekday within the week starting at weekKey.
func DateInWeek(weekKey string, weekday time.Weekday) (time.Time, error) {
	monday, err := ParseISO(weekKey)
	if err != nil {
		return time.Time{}, err
	}
	return monday.AddDate(0, 0, (int(weekday)+6)%7), nil
}

// WithinBacklogWindow reports whether d lies in [today-60d, today].
func WithinBacklogWindow(d, today time.Time) bool {
	d, today = DateOf(d), DateOf(today)
	earliest := today.AddDate(0, 0, -BacklogWindowDays)
	return !d.Before(earliest) && !d.After(today)
}

// ParseFlexibleDate parses text with ParseDate and enforces the backlog
// window. Out-of-window dates return ErrDateOutOfRange together with the
// parsed date so the caller can name it.
func ParseFlexibleDate(text string, today time.Time) (time.Time, error) {
	d, err := ParseDate(text, today)
	if err != nil {
		return time.Time{}, err
	}
	if !WithinBacklogWindow(d, today) {
		return d, fmt.Errorf("%s: %w", FormatISO(d), ErrDateOutOfRange)
	}
	return d, nil
}

// ParseDate understands ISO dates, MM/DD/YYYY, MM/DD, "<Month> <Day>",
// "week of <date>", today, yesterday, "<weekday>" and "last <weekday>".
// Dates given without a year resolve to the most recent past occurrence.
func ParseDate(text string, today time.Time) (time.Time, error) {
	today = DateOf(today)
	norm := strings.ToLower(strings.Join(strings.Fields(text), " "))
	norm = strings.TrimPrefix(norm, "the ")

	if rest, ok := strings.CutPrefix(norm, "week of "); ok {
		d, err := ParseDate(rest, today)
		if err != nil {
			return time.Time{}, err
		}
		return MondayOf(d), nil
	}

	switch norm {
	case "":
		return time.Time{}, ErrUnrecognizedDate
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if m := isoPattern.FindStringSubmatch(norm); m != nil {
		return civilDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if m := slashPattern.FindStringSubmatch(norm); m != nil {
		if m[3] != "" {
			return civilDate(atoi(m[3]), atoi(m[1]), atoi(m[2]))
		}
		return pastOccurrence(today, atoi(m[1]), atoi(m[2]))
	}

	if m := monthDayPattern.FindStringSubmatch(norm); m != nil {
		month, ok := monthsByName[m[1]]
		if !ok {
			return time.Time{}, ErrUnrecognizedDate
		}
		if m[3] != "" {
			return civilDate(atoi(m[3]), int(month), atoi(m[2]))
		}
		return pastOccurrence(today, int(month), atoi(m[2]))
	}

	if m := weekdayPattern.FindStringSubmatch(norm); m != nil {
		weekday, ok := weekdaysByName[m[2]]
		if !ok {
			return time.Time{}, ErrUnrecognizedDate
		}
		offset := (int(today.Weekday()) - int(weekday) + 7) % 7
		if m[1] != "" && offset == 0 {
			offset = 7
		}
		return today.AddDate(0, 0, -offset), nil
	}

	return time.Time{}, ErrUnrecognizedDate
}

// pastOccurrence resolves a month/day without a year against today's
// year, stepping back a year when that would be in the future.
func pastOccurrence(today time.Time, month, day int) (time.Time, error) {
	d, err := civilDate(today.Year(), month, day)
	if err != nil {
		return time.Time{}, err
	}
	if d.After(today) {
		if prev, err := civilDate(today.Year()-1, month, day); err == nil {
			return prev, nil
		}
	}
	return d, nil
}

// civilDate builds a date and rejects values time.Date would normalize,
// such as February 30.
func civilDate(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, ErrUnrecognizedDate
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, ErrUnrecognizedDate
	}
	return d, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// DayLabel formats a date the way timesheet rows show it: "Monday, January 05".
func DayLabel(d time.Time) string {
	return d.Format("Monday, January 02")
}

// SlashDate formats a date as MM/DD/YYYY.
func SlashDate(d time.Time) string {
	return d.Format("01/02/2006")
}

// ShortDate formats a date as "Fri 01/16".
func ShortDate(d time.Time) string {
	return d.Format("Mon 01/02")
}

// LongDate formats a date as "January 05, 2026".
func LongDate(d time.Time) string {
	return d.Format("January 02, 2006")
}
