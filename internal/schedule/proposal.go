package schedule

import "time"

// DragPayload is the transient state captured when a drag begins. It
// lives only for the duration of the gesture and is discarded on drop
// or cancellation.
type DragPayload struct {
	Kind     ItemKind
	JobID    int64  // set when Kind == KindJob
	EventID  string // set when Kind == KindExternal
	Title    string
	Original TimeRange
}

// MoveProposal is the user-editable record of a pending reschedule. It
// is created when a drop completes and discarded once committed or
// cancelled; it is never persisted itself.
type MoveProposal struct {
	Kind          ItemKind
	JobID         int64
	EventID       string
	ProposedStart time.Time
	ProposedEnd   time.Time
	Title         string // editable for external events only
	Notes         string // editable for jobs only
}

// ProposalFromDrop builds a duration-preserving proposal from a drag
// payload and the drop timestamp: the new end is the new start plus the
// original duration.
func ProposalFromDrop(p DragPayload, newStart time.Time) MoveProposal {
	return MoveProposal{
		Kind:          p.Kind,
		JobID:         p.JobID,
		EventID:       p.EventID,
		ProposedStart: newStart,
		ProposedEnd:   newStart.Add(p.Original.Duration()),
		Title:         p.Title,
	}
}

// Interval returns the proposed interval.
func (mp MoveProposal) Interval() TimeRange {
	return TimeRange{Start: mp.ProposedStart, End: mp.ProposedEnd}
}

// Key returns the same identity string UnifiedItem.Key yields for the
// underlying item, so a pending commit can lock it.
func (mp MoveProposal) Key() string {
	if mp.Kind == KindJob {
		return jobKey(mp.JobID)
	}
	return eventKey(mp.EventID)
}

// SetStart moves the proposal to a new start, preserving duration.
func (mp *MoveProposal) SetStart(start time.Time) {
	dur := mp.ProposedEnd.Sub(mp.ProposedStart)
	mp.ProposedStart = start
	mp.ProposedEnd = start.Add(dur)
}

// SetEnd adjusts the proposed end. Only meaningful for external events;
// a job's end is derived from its service duration and is not settable.
func (mp *MoveProposal) SetEnd(end time.Time) bool {
	if mp.Kind == KindJob || !end.After(mp.ProposedStart) {
		return false
	}
	mp.ProposedEnd = end
	return true
}
