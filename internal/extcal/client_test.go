package extcal

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mherran/shopcal/internal/config"
	"github.com/mherran/shopcal/internal/schedule"
)

const sampleFeed = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//shop//calendar//EN
BEGIN:VEVENT
UID:evt-pickup
DTSTAMP:20260316T120000Z
DTSTART:20260318T130000Z
DTEND:20260318T133000Z
SUMMARY:Parts pickup
END:VEVENT
BEGIN:VEVENT
UID:evt-inspection
DTSTAMP:20260316T120000Z
DTSTART:20260325T090000Z
DTEND:20260325T100000Z
SUMMARY:Annual inspection
END:VEVENT
BEGIN:VEVENT
DTSTAMP:20260316T120000Z
DTSTART:20260318T150000Z
DTEND:20260318T160000Z
SUMMARY:No UID entry
END:VEVENT
END:VCALENDAR
`

func testClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	return NewClient(config.CalendarConfig{
		FeedURL:  srv.URL,
		SyncURL:  srv.URL + "/sync",
		Token:    "test-token",
		CacheDir: t.TempDir(),
	})
}

func weekOfMarch15() schedule.TimeRange {
	return schedule.TimeRange{
		Start: time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 22, 0, 0, 0, 0, time.UTC),
	}
}

func TestListEventsFiltersToRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); !strings.Contains(got, "test-token") {
			t.Errorf("missing bearer token, got %q", got)
		}
		_, _ = io.WriteString(w, sampleFeed)
	}))
	defer srv.Close()

	c := testClient(t, srv)
	events, err := c.ListEvents(context.Background(), weekOfMarch15())
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}

	// The inspection on the 25th is outside the week; the UID-less
	// entry is dropped.
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].ID != "evt-pickup" || events[0].Title != "Parts pickup" {
		t.Errorf("got %+v", events[0])
	}
	if got := events[0].End.Sub(events[0].Start); got != 30*time.Minute {
		t.Errorf("duration = %v, want 30m", got)
	}
}

func TestListEventsNotConnected(t *testing.T) {
	c := NewClient(config.CalendarConfig{})
	if c.Connected() {
		t.Fatal("empty config should not be connected")
	}
	if _, err := c.ListEvents(context.Background(), weekOfMarch15()); err != ErrNotConnected {
		t.Errorf("err = %v, want ErrNotConnected", err)
	}
}

func TestListEventsUsesCacheOn304(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = io.WriteString(w, sampleFeed)
	}))
	defer srv.Close()

	c := testClient(t, srv)
	ctx := context.Background()

	if _, err := c.ListEvents(ctx, weekOfMarch15()); err != nil {
		t.Fatalf("first ListEvents: %v", err)
	}
	events, err := c.ListEvents(ctx, weekOfMarch15())
	if err != nil {
		t.Fatalf("second ListEvents: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if len(events) != 1 {
		t.Errorf("cached events = %d, want 1", len(events))
	}
}

func TestListEventsFallsBackToCacheOnServerError(t *testing.T) {
	fail := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, sampleFeed)
	}))
	defer srv.Close()

	c := testClient(t, srv)
	ctx := context.Background()

	if _, err := c.ListEvents(ctx, weekOfMarch15()); err != nil {
		t.Fatalf("priming fetch: %v", err)
	}

	fail = true
	events, err := c.ListEvents(ctx, weekOfMarch15())
	if err != nil {
		t.Fatalf("ListEvents with failing server: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("events from cache = %d, want 1", len(events))
	}
}

func TestPatchEvent(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
	}))
	defer srv.Close()

	c := testClient(t, srv)
	patch := schedule.EventPatch{
		Start: time.Date(2026, time.March, 18, 13, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 18, 13, 30, 0, 0, time.UTC),
		Title: "Parts pickup",
	}
	if err := c.PatchEvent(context.Background(), "evt-pickup", patch); err != nil {
		t.Fatalf("PatchEvent: %v", err)
	}

	if gotPath != "/events/evt-pickup" {
		t.Errorf("path = %q, want /events/evt-pickup", gotPath)
	}
	for _, want := range []string{"UID:evt-pickup", "DTSTART:20260318T130000Z", "DTEND:20260318T133000Z"} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("patch body missing %q:\n%s", want, gotBody)
		}
	}
}

func TestPatchEventRejectsInvertedRange(t *testing.T) {
	c := NewClient(config.CalendarConfig{FeedURL: "https://cal.example.com", Token: "t"})
	patch := schedule.EventPatch{
		Start: time.Date(2026, time.March, 18, 13, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 18, 13, 0, 0, 0, time.UTC),
	}
	if err := c.PatchEvent(context.Background(), "evt", patch); err == nil {
		t.Error("expected error for end <= start")
	}
}

func TestPatchEventServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := testClient(t, srv)
	patch := schedule.EventPatch{
		Start: time.Date(2026, time.March, 18, 13, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 18, 14, 0, 0, 0, time.UTC),
	}
	if err := c.PatchEvent(context.Background(), "evt", patch); err == nil {
		t.Error("expected error for 409 response")
	}
}

func TestRequestJobSync(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sync" {
			gotQuery = r.URL.RawQuery
		}
	}))
	defer srv.Close()

	c := testClient(t, srv)
	if err := c.RequestJobSync(context.Background(), 42); err != nil {
		t.Fatalf("RequestJobSync: %v", err)
	}
	if gotQuery != "job=42" {
		t.Errorf("query = %q, want job=42", gotQuery)
	}
}
