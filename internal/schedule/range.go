package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidView is returned when parsing an unknown view name.
var ErrInvalidView = errors.New("view must be day, week, month or year")

// View is the calendar granularity.
type View string

const (
	ViewDay   View = "day"
	ViewWeek  View = "week"
	ViewMonth View = "month"
	ViewYear  View = "year"
)

// ParseView parses a view name.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewDay, ViewWeek, ViewMonth, ViewYear:
		return View(s), nil
	default:
		return "", ErrInvalidView
	}
}

// TimeRange is a half-open interval: Start inclusive, End exclusive.
// Invariant: End is after Start.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains returns true if t falls within the range.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Padded widens the range by pad on both sides. Used to query jobs so
// that items spanning a boundary still render.
func (r TimeRange) Padded(pad time.Duration) TimeRange {
	return TimeRange{Start: r.Start.Add(-pad), End: r.End.Add(pad)}
}

// ComputeRange returns the visible range for a view anchored at anchor.
// Boundaries are computed in anchor's location; callers normalize the
// timezone before calling. An unknown view is a programming error and
// panics.
func ComputeRange(view View, anchor time.Time) TimeRange {
	day := TruncateToDay(anchor)

	switch view {
	case ViewDay:
		return TimeRange{Start: day, End: day.AddDate(0, 0, 1)}
	case ViewWeek:
		// Week runs Sunday through the following Sunday (exclusive).
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return TimeRange{Start: start, End: start.AddDate(0, 0, 7)}
	case ViewMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return TimeRange{Start: start, End: start.AddDate(0, 1, 0)}
	case ViewYear:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
		return TimeRange{Start: start, End: start.AddDate(1, 0, 0)}
	default:
		panic(fmt.Sprintf("schedule: unknown view %q", view))
	}
}

// Next returns the range immediately after r for the given view.
func Next(view View, r TimeRange) TimeRange {
	return ComputeRange(view, r.End)
}

// Prev returns the range immediately before r for the given view.
func Prev(view View, r TimeRange) TimeRange {
	return ComputeRange(view, r.Start.Add(-time.Second))
}
