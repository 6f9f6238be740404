package schedule

import (
	"testing"
	"time"
)

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "9am", input: "09:00", want: 540},
		{name: "5pm", input: "17:00", want: 1020},
		{name: "with minutes", input: "09:30", want: 570},
		{name: "invalid short", input: "9:00", want: 0},
		{name: "empty", input: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeToMinutes(tt.input); got != tt.want {
				t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMinutesToTime(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  string
	}{
		{name: "midnight", input: 0, want: "00:00"},
		{name: "9am", input: 540, want: "09:00"},
		{name: "with minutes", input: 570, want: "09:30"},
		{name: "negative clamps to zero", input: -10, want: "00:00"},
		{name: "over 24h clamps", input: 1500, want: "23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinutesToTime(tt.input); got != tt.want {
				t.Errorf("MinutesToTime(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAtMinutes(t *testing.T) {
	day := time.Date(2026, time.March, 18, 17, 45, 12, 0, time.Local)
	got := AtMinutes(day, 9*60+15)
	want := time.Date(2026, time.March, 18, 9, 15, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("AtMinutes = %v, want %v", got, want)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, time.March, 18, 0, 0, 1, 0, time.Local)
	b := time.Date(2026, time.March, 18, 23, 59, 0, 0, time.Local)
	c := time.Date(2026, time.March, 19, 0, 0, 0, 0, time.Local)
	if !SameDay(a, b) {
		t.Error("same calendar day should match")
	}
	if SameDay(b, c) {
		t.Error("different days should not match")
	}
}
