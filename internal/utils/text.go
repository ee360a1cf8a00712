package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	ErrUnrecognizedTime = errors.New("unrecognized time of day")
	ErrTimeOutOfRange   = errors.New("time of day out of range")
)

// hoursPattern matches "3 hours", "3.5h", "for 2 hrs", "(4 hours)".
var hoursPattern = regexp.MustCompile(`(?i)\(?\s*(?:\bfor\s+)?\b(\d+(?:\.\d+)?)\s*(?:hours|hour|hrs|hr|h)\b\s*\)?`)

var punctuationSpacing = strings.NewReplacer(" ,", ",", " .", ".", " ;", ";")

var timeOfDayPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

var dayTokens = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday, "m": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday, "t": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday, "w": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "th": time.Thursday,
	"friday": time.Friday, "fri": time.Friday, "f": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

// ExtractHours pulls the first "<number> hours" phrase out of text and
// returns it with the remaining description. Later matches are left in
// the description untouched. When nothing but the hours phrase was sent,
// the whole trimmed text is kept as the description.
func ExtractHours(text string) (*float64, string) {
	trimmed := strings.TrimSpace(text)
	loc := hoursPattern.FindStringSubmatchIndex(trimmed)
	if loc == nil {
		return nil, trimmed
	}

	hours, err := strconv.ParseFloat(trimmed[loc[2]:loc[3]], 64)
	if err != nil {
		return nil, trimmed
	}

	rest := trimmed[:loc[0]] + " " + trimmed[loc[1]:]
	description := strings.Join(strings.Fields(rest), " ")
	description = punctuationSpacing.Replace(description)
	description = strings.Trim(description, " ,;:-")
	if description == "" {
		description = trimmed
	}
	return &hours, description
}

// ExtractDayTokens returns the weekdays named in text, Monday first.
// "all weekdays" selects Monday to Friday. Unknown tokens are ignored;
// an empty result means nothing was recognized.
func ExtractDayTokens(text string) []time.Weekday {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '/' || r == '&' || r == '+'
	})

	selected := make(map[time.Weekday]bool)
	for _, token := range tokens {
		token = strings.Trim(token, ".;:")
		switch token {
		case "weekdays", "weekday":
			for _, d := range weekdayOrder[:5] {
				selected[d] = true
			}
			continue
		}
		if d, ok := dayTokens[token]; ok {
			selected[d] = true
		}
	}

	var days []time.Weekday
	for _, d := range weekdayOrder {
		if selected[d] {
			days = append(days, d)
		}
	}
	return days
}

// ParseTimeOfDay parses "H:MM" or "HH:MM" in 24-hour form.
func ParseTimeOfDay(text string) (int, int, error) {
	m := timeOfDayPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, 0, ErrUnrecognizedTime
	}
	hour, minute := atoi(m[1]), atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("%s: %w", strings.TrimSpace(text), ErrTimeOutOfRange)
	}
	return hour, minute, nil
}

// WeekdayNames joins weekday names for display: "Monday, Wednesday, Friday".
func WeekdayNames(days []time.Weekday) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}
