// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mherran/shopcal/internal/schedule"
)

// SQLite implements schedule.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// migrate creates the schema if it does not exist.
func (s *SQLite) migrate() error {
	schemaSQL := `
		CREATE TABLE IF NOT EXISTS customers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS services (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL CHECK (duration_minutes > 0)
		);

		CREATE TABLE IF NOT EXISTS jobs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			customer_name TEXT NOT NULL,
			service_name TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL,
			scheduled_at TEXT NOT NULL,
			actual_start TEXT,
			actual_end TEXT,
			status TEXT NOT NULL DEFAULT 'scheduled',
			external_event_id TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_jobs_scheduled_at ON jobs(scheduled_at);
	`

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

const jobColumns = `id, customer_name, service_name, duration_minutes, scheduled_at,
       actual_start, actual_end, status, external_event_id, address, notes, created_at`

// CreateJob adds a new job to the repository.
func (s *SQLite) CreateJob(ctx context.Context, j *schedule.Job) error {
	if j.DurationMinutes <= 0 {
		return schedule.ErrInvalidDuration
	}
	if !j.Status.Valid() {
		return schedule.ErrInvalidStatus
	}

	query := `
		INSERT INTO jobs (
			customer_name, service_name, duration_minutes, scheduled_at,
			actual_start, actual_end, status, external_event_id, address, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		j.CustomerName,
		j.ServiceName,
		j.DurationMinutes,
		j.ScheduledAt.Format(time.RFC3339),
		nullTime(j.ActualStart),
		nullTime(j.ActualEnd),
		j.Status,
		j.ExternalEventID,
		j.Address,
		j.Notes,
		j.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting job: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	j.ID = id

	return nil
}

// GetJob retrieves a job by ID.
func (s *SQLite) GetJob(ctx context.Context, id int64) (*schedule.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`

	j, err := scanJob(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, schedule.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying job: %w", err)
	}
	return j, nil
}

// ListJobs returns jobs whose scheduled time falls within the range.
// The caller passes a range already padded past the visible window.
func (s *SQLite) ListJobs(ctx context.Context, r schedule.TimeRange) ([]*schedule.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE scheduled_at >= ? AND scheduled_at < ?
		ORDER BY scheduled_at
	`

	rows, err := s.db.QueryContext(ctx, query,
		r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("querying jobs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var jobs []*schedule.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}

	return jobs, nil
}

// UpdateJobSchedule applies a partial schedule update. Nil fields are
// left untouched.
func (s *SQLite) UpdateJobSchedule(ctx context.Context, id int64, upd schedule.ScheduleUpdate) error {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if upd.ScheduledAt != nil {
		sets = append(sets, "scheduled_at = ?")
		args = append(args, upd.ScheduledAt.Format(time.RFC3339))
	}
	if upd.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *upd.Notes)
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return schedule.ErrInvalidStatus
		}
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}

	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE jobs SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating job schedule: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return schedule.ErrJobNotFound
	}

	return nil
}

// SetExternalEventID records the external mirror reference for a job.
func (s *SQLite) SetExternalEventID(ctx context.Context, id int64, eventID string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET external_event_id = ? WHERE id = ?`, eventID, id)
	if err != nil {
		return fmt.Errorf("setting external event id: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return schedule.ErrJobNotFound
	}

	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*schedule.Job, error) {
	var (
		j           schedule.Job
		scheduledAt string
		actualStart sql.NullString
		actualEnd   sql.NullString
		createdAt   string
	)

	err := row.Scan(
		&j.ID,
		&j.CustomerName,
		&j.ServiceName,
		&j.DurationMinutes,
		&scheduledAt,
		&actualStart,
		&actualEnd,
		&j.Status,
		&j.ExternalEventID,
		&j.Address,
		&j.Notes,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if j.ScheduledAt, err = time.Parse(time.RFC3339, scheduledAt); err != nil {
		return nil, fmt.Errorf("parsing scheduled_at: %w", err)
	}
	if j.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if actualStart.Valid {
		t, err := time.Parse(time.RFC3339, actualStart.String)
		if err != nil {
			return nil, fmt.Errorf("parsing actual_start: %w", err)
		}
		j.ActualStart = &t
	}
	if actualEnd.Valid {
		t, err := time.Parse(time.RFC3339, actualEnd.String)
		if err != nil {
			return nil, fmt.Errorf("parsing actual_end: %w", err)
		}
		j.ActualEnd = &t
	}

	return &j, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
