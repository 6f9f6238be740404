package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mherran/shopcal/internal/db"
	"github.com/mherran/shopcal/internal/schedule"
	"github.com/mherran/shopcal/internal/slotmap"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// bookJob creates and inserts a job.
func bookJob(t *testing.T, repo *db.SQLite, customer, service string, minutes int, at time.Time) *schedule.Job {
	t.Helper()
	j := &schedule.Job{
		CustomerName:    customer,
		ServiceName:     service,
		DurationMinutes: minutes,
		ScheduledAt:     at,
		Status:          schedule.StatusScheduled,
		CreatedAt:       time.Now(),
	}
	if err := repo.CreateJob(context.Background(), j); err != nil {
		t.Fatalf("failed to insert job: %v", err)
	}
	return j
}

// TestDragRescheduleRoundTrip walks the full move path: book a job,
// drop it on a new slot, persist the proposal, and read it back.
func TestDragRescheduleRoundTrip(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	window := slotmap.Window{StartHour: 8, EndHour: 18, SlotMinutes: 30}

	booked := time.Date(2026, time.March, 18, 9, 0, 0, 0, time.UTC)
	j := bookJob(t, repo, "Ana Torres", "Oil change", 90, booked)

	// Simulate the drop: slot 12 on Friday is 14:00.
	payload := schedule.DragPayload{
		Kind:     schedule.KindJob,
		JobID:    j.ID,
		Title:    "Ana Torres · Oil change",
		Original: j.DisplayInterval(),
	}
	friday := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)
	mp := schedule.ProposalFromDrop(payload, window.FromIndex(friday, 12))

	if got := mp.ProposedEnd.Sub(mp.ProposedStart); got != 90*time.Minute {
		t.Fatalf("proposal duration = %v, want 90m", got)
	}

	notes := "moved per customer request"
	err := repo.UpdateJobSchedule(ctx, j.ID, schedule.ScheduleUpdate{
		ScheduledAt: &mp.ProposedStart,
		Notes:       &notes,
	})
	if err != nil {
		t.Fatalf("persisting move: %v", err)
	}

	got, err := repo.GetJob(ctx, j.ID)
	if err != nil {
		t.Fatalf("reading job back: %v", err)
	}
	want := time.Date(2026, time.March, 20, 14, 0, 0, 0, time.UTC)
	if !got.ScheduledAt.Equal(want) {
		t.Errorf("scheduled_at = %v, want %v", got.ScheduledAt, want)
	}
	if got.Notes != notes {
		t.Errorf("notes = %q, want %q", got.Notes, notes)
	}
	if got.DurationMinutes != 90 {
		t.Errorf("duration changed: %d", got.DurationMinutes)
	}
}

// TestWeekGridFromRepository checks that jobs loaded for a week land in
// the right day buckets after unification.
func TestWeekGridFromRepository(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	day := func(d, h int) time.Time {
		return time.Date(2026, time.March, d, h, 0, 0, 0, time.UTC)
	}
	bookJob(t, repo, "Ana Torres", "Oil change", 60, day(16, 9))
	bookJob(t, repo, "Luis Vega", "Brake check", 60, day(16, 11))
	bookJob(t, repo, "Mar Ruiz", "Tires", 60, day(19, 10))
	cancelled := bookJob(t, repo, "Gone Customer", "Detail", 60, day(17, 10))

	st := schedule.StatusCancelled
	if err := repo.UpdateJobSchedule(ctx, cancelled.ID, schedule.ScheduleUpdate{Status: &st}); err != nil {
		t.Fatalf("cancelling job: %v", err)
	}

	r := schedule.ComputeRange(schedule.ViewWeek, day(18, 12))
	jobs, err := repo.ListJobs(ctx, r)
	if err != nil {
		t.Fatalf("listing jobs: %v", err)
	}

	events := []*schedule.ExternalEvent{
		{ID: "evt-pickup", Title: "Parts pickup", Start: day(16, 13), End: day(16, 14)},
	}
	unified := schedule.Unify(jobs, events)

	if got := len(unified[schedule.DayKey(day(16, 0))]); got != 3 {
		t.Errorf("Monday items = %d, want 3 (two jobs + one event)", got)
	}
	if got := len(unified[schedule.DayKey(day(17, 0))]); got != 0 {
		t.Errorf("Tuesday items = %d, want 0 (cancelled job hidden)", got)
	}
	if got := len(unified[schedule.DayKey(day(19, 0))]); got != 1 {
		t.Errorf("Thursday items = %d, want 1", got)
	}
}

// TestMirroredEventSuppressedEndToEnd checks the dedup join between a
// stored job and its external mirror.
func TestMirroredEventSuppressedEndToEnd(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	at := time.Date(2026, time.March, 18, 9, 0, 0, 0, time.UTC)
	j := bookJob(t, repo, "Ana Torres", "Oil change", 60, at)
	if err := repo.SetExternalEventID(ctx, j.ID, "gcal-77"); err != nil {
		t.Fatalf("setting mirror id: %v", err)
	}

	r := schedule.ComputeRange(schedule.ViewWeek, at)
	jobs, err := repo.ListJobs(ctx, r)
	if err != nil {
		t.Fatalf("listing jobs: %v", err)
	}

	events := []*schedule.ExternalEvent{
		// The mirror copy, possibly at drifted times.
		{ID: "gcal-77", Title: "Ana Torres", Start: at.Add(5 * time.Minute), End: at.Add(65 * time.Minute)},
		{ID: "gcal-88", Title: "Unrelated", Start: at.Add(3 * time.Hour), End: at.Add(4 * time.Hour)},
	}
	unified := schedule.Unify(jobs, events)

	items := unified[schedule.DayKey(at)]
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 (job + unrelated event)", len(items))
	}
	for _, it := range items {
		if it.Kind == schedule.KindExternal && it.Event.ID == "gcal-77" {
			t.Error("mirrored event should be suppressed")
		}
	}
}
