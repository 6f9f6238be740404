package tui

import (
	"testing"
	"time"

	"github.com/mherran/shopcal/internal/schedule"
	"github.com/mherran/shopcal/internal/slotmap"
)

var testWindow = slotmap.Window{StartHour: 8, EndHour: 18, SlotMinutes: 30}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func jobPayload() schedule.DragPayload {
	start := time.Date(2026, time.March, 18, 9, 0, 0, 0, time.UTC)
	return schedule.DragPayload{
		Kind:     schedule.KindJob,
		JobID:    7,
		Title:    "Ana Torres · Oil change",
		Original: schedule.TimeRange{Start: start, End: start.Add(60 * time.Minute)},
	}
}

func TestDropPreservesDuration(t *testing.T) {
	d := NewDragController()
	d.Start(jobPayload(), day(18), 2)

	// Drag to 14:00 on Friday the 20th: slot (14-8)*2 = 12.
	d.Hover(day(20), 12)

	mp, ok := d.Drop(testWindow)
	if !ok {
		t.Fatal("expected a proposal from a valid drop")
	}

	wantStart := time.Date(2026, time.March, 20, 14, 0, 0, 0, time.UTC)
	if !mp.ProposedStart.Equal(wantStart) {
		t.Errorf("start = %v, want %v", mp.ProposedStart, wantStart)
	}
	if got := mp.ProposedEnd.Sub(mp.ProposedStart); got != 60*time.Minute {
		t.Errorf("duration = %v, want 60m", got)
	}
	if mp.JobID != 7 || mp.Kind != schedule.KindJob {
		t.Errorf("identity lost: %+v", mp)
	}
	if d.State() != Dropped {
		t.Errorf("state = %v, want Dropped", d.State())
	}
}

func TestDropOutsideGridAbandons(t *testing.T) {
	d := NewDragController()
	d.Start(jobPayload(), day(18), 2)
	d.Hover(time.Time{}, -1)

	if _, ok := d.Drop(testWindow); ok {
		t.Fatal("drop outside the grid must not produce a proposal")
	}
	if d.State() != DragIdle {
		t.Errorf("state = %v, want DragIdle", d.State())
	}
}

func TestCancelResets(t *testing.T) {
	d := NewDragController()
	d.Start(jobPayload(), day(18), 2)
	d.Cancel()

	if d.State() != DragIdle {
		t.Errorf("state = %v, want DragIdle", d.State())
	}
	if _, ok := d.Drop(testWindow); ok {
		t.Error("drop after cancel must not produce a proposal")
	}
}

func TestHoverIgnoredWhenIdle(t *testing.T) {
	d := NewDragController()
	d.Hover(day(18), 4)
	if d.HoverSlot() != -1 {
		t.Errorf("hover slot = %d, want -1", d.HoverSlot())
	}
}

func TestStartReplacesInFlightDrag(t *testing.T) {
	d := NewDragController()
	d.Start(jobPayload(), day(18), 2)

	other := jobPayload()
	other.JobID = 9
	d.Start(other, day(19), 4)

	mp, ok := d.Drop(testWindow)
	if !ok {
		t.Fatal("expected proposal")
	}
	if mp.JobID != 9 {
		t.Errorf("job id = %d, want the replacing drag's 9", mp.JobID)
	}
}
