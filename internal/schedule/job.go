// Package schedule defines the core domain types for shopcal.
package schedule

import (
	"errors"
	"time"
)

// Validation errors.
var (
	ErrInvalidStatus   = errors.New("invalid job status")
	ErrInvalidDuration = errors.New("service duration must be positive")
)

// Domain errors.
var (
	ErrJobNotFound = errors.New("job not found")
)

// Status represents the state of a job.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusEnRoute    Status = "en_route"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusEnRoute, StatusInProgress, StatusDone, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// Active returns true for statuses that should appear on the calendar.
func (s Status) Active() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// ParseStatus parses a status string, returning ErrInvalidStatus for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// Job represents a scheduled unit of work for a customer. Jobs are owned
// by the repository; the calendar only reads them and requests updates.
type Job struct {
	ID              int64
	CustomerName    string
	ServiceName     string
	DurationMinutes int // from the service definition
	ScheduledAt     time.Time
	ActualStart     *time.Time // recorded when work begins
	ActualEnd       *time.Time // recorded when work finishes
	Status          Status
	ExternalEventID string // id of the mirrored external calendar event, "" if none
	Address         string
	Notes           string
	CreatedAt       time.Time
}

// DisplayInterval returns the interval the job occupies on the calendar.
// Recorded actual times take precedence over the scheduled estimate:
//   - both actual start and end recorded: exactly that pair
//   - only actual start recorded: actual start + service duration
//   - neither: scheduled start + service duration
func (j *Job) DisplayInterval() TimeRange {
	dur := time.Duration(j.DurationMinutes) * time.Minute

	switch {
	case j.ActualStart != nil && j.ActualEnd != nil:
		return TimeRange{Start: *j.ActualStart, End: *j.ActualEnd}
	case j.ActualStart != nil:
		return TimeRange{Start: *j.ActualStart, End: j.ActualStart.Add(dur)}
	default:
		return TimeRange{Start: j.ScheduledAt, End: j.ScheduledAt.Add(dur)}
	}
}

// Mirrored returns true if the job has been pushed to the external calendar.
func (j *Job) Mirrored() bool {
	return j.ExternalEventID != ""
}

// IsScheduled returns true if the job has scheduled status.
func (j *Job) IsScheduled() bool {
	return j.Status == StatusScheduled
}

// Started returns true once an actual start time has been recorded.
func (j *Job) Started() bool {
	return j.ActualStart != nil
}
