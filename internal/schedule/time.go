package schedule

import (
	"fmt"
	"time"
)

// TimeToMinutes converts "HH:MM" to minutes from midnight.
// Returns 0 for malformed input.
func TimeToMinutes(s string) int {
	if len(s) != 5 || s[2] != ':' {
		return 0
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// MinutesToTime converts minutes from midnight to "HH:MM".
// Values outside a day clamp to the nearest bound.
func MinutesToTime(mins int) string {
	if mins < 0 {
		mins = 0
	}
	if mins > 1439 {
		mins = 1439
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// TruncateToDay returns t with the time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AtMinutes returns the instant mins minutes after midnight on day.
func AtMinutes(day time.Time, mins int) time.Time {
	d := TruncateToDay(day)
	return d.Add(time.Duration(mins) * time.Minute)
}

// SameDay returns true if a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
