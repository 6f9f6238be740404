package schedule

import "time"

// ExternalEvent is a calendar entry owned by the external calendar.
// Start and end are both authoritative; there is no derived duration.
// The calendar reads these and may request a time patch, nothing else.
type ExternalEvent struct {
	ID    string
	Title string
	Start time.Time
	End   time.Time
}

// Interval returns the event's interval as drawn.
func (e *ExternalEvent) Interval() TimeRange {
	return TimeRange{Start: e.Start, End: e.End}
}

// EventPatch is a proposed change to an external event. Zero times are
// not valid; Title may be empty to leave the summary untouched.
type EventPatch struct {
	Start time.Time
	End   time.Time
	Title string
}
