package schedule

import (
	"testing"
	"time"
)

func TestDisplayInterval(t *testing.T) {
	scheduled := time.Date(2026, time.March, 18, 9, 0, 0, 0, time.Local)
	started := scheduled.Add(20 * time.Minute)
	finished := scheduled.Add(95 * time.Minute)

	tests := []struct {
		name      string
		job       Job
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "scheduled only uses service duration",
			job:       Job{ScheduledAt: scheduled, DurationMinutes: 60},
			wantStart: scheduled,
			wantEnd:   scheduled.Add(60 * time.Minute),
		},
		{
			name:      "actual start overrides scheduled start",
			job:       Job{ScheduledAt: scheduled, DurationMinutes: 60, ActualStart: &started},
			wantStart: started,
			wantEnd:   started.Add(60 * time.Minute),
		},
		{
			name:      "recorded pair overrides everything",
			job:       Job{ScheduledAt: scheduled, DurationMinutes: 60, ActualStart: &started, ActualEnd: &finished},
			wantStart: started,
			wantEnd:   finished,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.job.DisplayInterval()
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", got.Start, tt.wantStart)
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", got.End, tt.wantEnd)
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusScheduled, StatusEnRoute, StatusInProgress, StatusDone, StatusCancelled, StatusNoShow} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("paused").Valid() {
		t.Error("unknown status should not be valid")
	}
}

func TestStatusActive(t *testing.T) {
	if StatusCancelled.Active() || StatusNoShow.Active() {
		t.Error("cancelled and no-show jobs should not appear on the calendar")
	}
	if !StatusScheduled.Active() || !StatusDone.Active() {
		t.Error("scheduled and done jobs should appear on the calendar")
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("en_route"); err != nil {
		t.Errorf("ParseStatus(en_route) error: %v", err)
	}
	if _, err := ParseStatus("nope"); err != ErrInvalidStatus {
		t.Errorf("ParseStatus(nope) = %v, want ErrInvalidStatus", err)
	}
}
