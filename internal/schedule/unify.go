package schedule

import (
	"strconv"
	"time"
)

// ItemKind distinguishes the two event sources.
type ItemKind int

const (
	KindJob ItemKind = iota
	KindExternal
)

// UnifiedItem is one render-ready calendar entry from either source.
// Exactly one of Job or Event is set, per Kind.
type UnifiedItem struct {
	Kind  ItemKind
	Job   *Job
	Event *ExternalEvent
}

// Interval returns the item's display interval.
func (it UnifiedItem) Interval() TimeRange {
	if it.Kind == KindJob {
		return it.Job.DisplayInterval()
	}
	return it.Event.Interval()
}

// Title returns the text drawn on the item's block.
func (it UnifiedItem) Title() string {
	if it.Kind == KindJob {
		if it.Job.ServiceName != "" {
			return it.Job.CustomerName + " · " + it.Job.ServiceName
		}
		return it.Job.CustomerName
	}
	return it.Event.Title
}

// Key returns a stable identity string, also used as the commit-lock key.
func (it UnifiedItem) Key() string {
	if it.Kind == KindJob {
		return jobKey(it.Job.ID)
	}
	return eventKey(it.Event.ID)
}

func jobKey(id int64) string {
	return "job:" + strconv.FormatInt(id, 10)
}

func eventKey(id string) string {
	return "evt:" + id
}

// DayKey returns the partition key for a timestamp: its calendar day
// in the timestamp's own location.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Unify merges jobs and external events into one collection per visible
// day, keyed by DayKey of the display-interval start.
//
// An external event is suppressed when its id matches the external
// mirror reference stored on any job in the input set, so a job that
// was already pushed to the external calendar is not drawn twice. The
// mirror id is the sole join condition; no time or title heuristics.
// A stale mirror reference simply fails to match and both items render,
// which is the safe failure mode.
//
// Ordering within a day is insertion order (jobs first, then events);
// overlapping items stack by z-order rather than being laid out side
// by side.
func Unify(jobs []*Job, events []*ExternalEvent) map[string][]UnifiedItem {
	out := make(map[string][]UnifiedItem)

	mirrored := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		if j == nil {
			continue
		}
		if j.ExternalEventID != "" {
			mirrored[j.ExternalEventID] = true
		}
	}

	for _, j := range jobs {
		if j == nil || !j.Status.Active() {
			continue
		}
		key := DayKey(j.DisplayInterval().Start)
		out[key] = append(out[key], UnifiedItem{Kind: KindJob, Job: j})
	}

	for _, e := range events {
		if e == nil || mirrored[e.ID] {
			continue
		}
		key := DayKey(e.Start)
		out[key] = append(out[key], UnifiedItem{Kind: KindExternal, Event: e})
	}

	return out
}
