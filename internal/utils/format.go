package utils

import (
	"fmt"
	"strconv"
)

// FormatHours renders hours without trailing zeros: 3, 3.5, 0.25.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// HoursLabel renders "1 hour" or "3.5 hours".
func HoursLabel(h float64) string {
	if h == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%s hours", FormatHours(h))
}

// HoursEmoji gives a quick visual cue for a day's total.
func HoursEmoji(h float64) string {
	switch {
	case h <= 0:
		return "⚪"
	case h < 3:
		return "🟡"
	default:
		return "🟢"
	}
}
