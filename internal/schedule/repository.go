package schedule

import (
	"context"
	"time"
)

// ScheduleUpdate is a partial update to a job's schedule. Nil fields
// are left untouched.
type ScheduleUpdate struct {
	ScheduledAt *time.Time
	Notes       *string
	Status      *Status
}

// Repository defines the storage boundary for jobs. The calendar reads
// snapshots for a visible range and requests schedule updates; it never
// creates or destroys jobs itself.
type Repository interface {
	// CreateJob adds a new job.
	CreateJob(ctx context.Context, job *Job) error

	// GetJob retrieves a job by id, or ErrJobNotFound.
	GetJob(ctx context.Context, id int64) (*Job, error)

	// ListJobs returns jobs whose display interval starts within the
	// range. Callers pad the visible range by a day on each side so
	// boundary-spanning items still render.
	ListJobs(ctx context.Context, r TimeRange) ([]*Job, error)

	// UpdateJobSchedule applies a partial schedule update.
	UpdateJobSchedule(ctx context.Context, id int64, upd ScheduleUpdate) error

	// SetExternalEventID records the external mirror reference for a job.
	SetExternalEventID(ctx context.Context, id int64, eventID string) error

	// Close releases any resources held by the repository.
	Close() error
}
