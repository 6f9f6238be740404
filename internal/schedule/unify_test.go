package schedule

import (
	"testing"
	"time"
)

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

func TestUnifyPartitionsByDay(t *testing.T) {
	mon := date(2026, time.March, 16)
	tue := date(2026, time.March, 17)

	jobs := []*Job{
		{ID: 1, Status: StatusScheduled, ScheduledAt: at(mon, 9, 0), DurationMinutes: 60},
		{ID: 2, Status: StatusScheduled, ScheduledAt: at(tue, 10, 0), DurationMinutes: 30},
	}
	events := []*ExternalEvent{
		{ID: "e1", Title: "Call", Start: at(mon, 13, 0), End: at(mon, 13, 30)},
	}

	got := Unify(jobs, events)

	if len(got[DayKey(mon)]) != 2 {
		t.Errorf("monday items = %d, want 2", len(got[DayKey(mon)]))
	}
	if len(got[DayKey(tue)]) != 1 {
		t.Errorf("tuesday items = %d, want 1", len(got[DayKey(tue)]))
	}
}

func TestUnifyDedupSuppressesMirroredEvent(t *testing.T) {
	mon := date(2026, time.March, 16)

	jobs := []*Job{
		{ID: 1, Status: StatusScheduled, ScheduledAt: at(mon, 9, 0), DurationMinutes: 60, ExternalEventID: "gcal-42"},
	}
	events := []*ExternalEvent{
		{ID: "gcal-42", Title: "Mirror", Start: at(mon, 9, 0), End: at(mon, 10, 0)},
	}

	got := Unify(jobs, events)
	items := got[DayKey(mon)]
	if len(items) != 1 {
		t.Fatalf("items = %d, want exactly 1 (the job)", len(items))
	}
	if items[0].Kind != KindJob {
		t.Errorf("kind = %v, want KindJob", items[0].Kind)
	}
}

func TestUnifyStaleMirrorShowsBoth(t *testing.T) {
	mon := date(2026, time.March, 16)

	// The job references a mirror id that no longer matches the event.
	// Showing a duplicate beats silently hiding a real event.
	jobs := []*Job{
		{ID: 1, Status: StatusScheduled, ScheduledAt: at(mon, 9, 0), DurationMinutes: 60, ExternalEventID: "stale-id"},
	}
	events := []*ExternalEvent{
		{ID: "gcal-42", Title: "Real event", Start: at(mon, 9, 0), End: at(mon, 10, 0)},
	}

	got := Unify(jobs, events)
	if len(got[DayKey(mon)]) != 2 {
		t.Errorf("items = %d, want 2 (job and unmatched event)", len(got[DayKey(mon)]))
	}
}

func TestUnifyExcludesInactiveJobs(t *testing.T) {
	mon := date(2026, time.March, 16)

	jobs := []*Job{
		{ID: 1, Status: StatusCancelled, ScheduledAt: at(mon, 9, 0), DurationMinutes: 60},
		{ID: 2, Status: StatusNoShow, ScheduledAt: at(mon, 11, 0), DurationMinutes: 60},
	}

	got := Unify(jobs, nil)
	if len(got) != 0 {
		t.Errorf("map size = %d, want 0", len(got))
	}
}

func TestUnifyUsesDisplayIntervalDay(t *testing.T) {
	mon := date(2026, time.March, 16)
	tue := date(2026, time.March, 17)

	// Scheduled Monday but actually started Tuesday: partitions on Tuesday.
	actual := at(tue, 8, 0)
	jobs := []*Job{
		{ID: 1, Status: StatusInProgress, ScheduledAt: at(mon, 9, 0), DurationMinutes: 60, ActualStart: &actual},
	}

	got := Unify(jobs, nil)
	if len(got[DayKey(mon)]) != 0 {
		t.Error("job should not appear on scheduled day")
	}
	if len(got[DayKey(tue)]) != 1 {
		t.Error("job should appear on its actual day")
	}
}

func TestUnifyEmptyInputs(t *testing.T) {
	got := Unify(nil, nil)
	if len(got) != 0 {
		t.Errorf("map size = %d, want 0", len(got))
	}
}
