package tui

import (
	"time"

	"github.com/mherran/shopcal/internal/schedule"
)

// FlowState tracks the move-confirmation lifecycle after a drop.
type FlowState int

const (
	FlowInactive FlowState = iota
	FlowProposed           // modal open, proposal shown as dropped
	FlowEditing            // a time field is being edited
	FlowCommitting
	FlowFailed // a persist failed; error shown, proposal retained
)

// Flow owns a pending move from drop until it is committed or
// cancelled. While a commit is in flight the underlying item is locked
// so a second move cannot race the first; a failed commit returns to
// Proposed with the proposal intact so the user can retry or cancel.
type Flow struct {
	state    FlowState
	proposal schedule.MoveProposal
	err      error

	notifySMS   bool
	notifyEmail bool

	locks map[string]bool
}

// NewFlow returns an inactive flow.
func NewFlow() *Flow {
	return &Flow{locks: make(map[string]bool)}
}

// State returns the current flow state.
func (f *Flow) State() FlowState { return f.state }

// Active reports whether a proposal is pending.
func (f *Flow) Active() bool { return f.state != FlowInactive }

// Proposal returns the pending proposal. Valid only while active.
func (f *Flow) Proposal() schedule.MoveProposal { return f.proposal }

// Err returns the persist error. Non-nil only in FlowFailed.
func (f *Flow) Err() error { return f.err }

// NotifySMS reports whether the SMS channel is selected.
func (f *Flow) NotifySMS() bool { return f.notifySMS }

// NotifyEmail reports whether the email channel is selected.
func (f *Flow) NotifyEmail() bool { return f.notifyEmail }

// Locked reports whether the item with the given key has a commit in
// flight. The grid uses this to block a new drag on that item.
func (f *Flow) Locked(key string) bool { return f.locks[key] }

// Propose opens the confirmation flow for a dropped proposal. A drop is
// refused while the item's previous commit is still in flight.
func (f *Flow) Propose(mp schedule.MoveProposal) bool {
	if f.locks[mp.Key()] {
		return false
	}
	f.state = FlowProposed
	f.proposal = mp
	f.err = nil
	f.notifySMS = false
	f.notifyEmail = false
	return true
}

// ToggleSMS flips the SMS notification channel. Jobs only.
func (f *Flow) ToggleSMS() {
	if f.proposal.Kind == schedule.KindJob {
		f.notifySMS = !f.notifySMS
	}
}

// ToggleEmail flips the email notification channel. Jobs only.
func (f *Flow) ToggleEmail() {
	if f.proposal.Kind == schedule.KindJob {
		f.notifyEmail = !f.notifyEmail
	}
}

// BeginEdit marks a time field as being edited.
func (f *Flow) BeginEdit() {
	if f.state == FlowProposed || f.state == FlowFailed {
		f.state = FlowEditing
	}
}

// EndEdit returns from editing to the proposed state.
func (f *Flow) EndEdit() {
	if f.state == FlowEditing {
		f.state = FlowProposed
	}
}

// SetStart applies an edited start time, preserving duration.
func (f *Flow) SetStart(start time.Time) {
	f.proposal.SetStart(start)
}

// SetEnd applies an edited end time. Returns false for jobs, whose end
// is derived from the service duration, and for an end at or before
// the start.
func (f *Flow) SetEnd(end time.Time) bool {
	return f.proposal.SetEnd(end)
}

// SetTitle applies an edited title. External events only.
func (f *Flow) SetTitle(title string) {
	if f.proposal.Kind == schedule.KindExternal {
		f.proposal.Title = title
	}
}

// SetNotes applies edited notes. Jobs only.
func (f *Flow) SetNotes(notes string) {
	if f.proposal.Kind == schedule.KindJob {
		f.proposal.Notes = notes
	}
}

// Commit moves to the committing state and locks the item. Returns the
// proposal to persist, or false if a commit is already in flight.
func (f *Flow) Commit() (schedule.MoveProposal, bool) {
	if f.state != FlowProposed && f.state != FlowEditing && f.state != FlowFailed {
		return schedule.MoveProposal{}, false
	}
	key := f.proposal.Key()
	if f.locks[key] {
		return schedule.MoveProposal{}, false
	}
	f.locks[key] = true
	f.state = FlowCommitting
	f.err = nil
	return f.proposal, true
}

// Succeed records a successful persist: the lock is released and the
// flow closes.
func (f *Flow) Succeed() {
	delete(f.locks, f.proposal.Key())
	f.reset()
}

// Fail records a failed persist: the lock is released and the flow
// moves to Failed with the proposal retained, so the stored times stay
// untouched and the user can retry or cancel with the error in view.
func (f *Flow) Fail(err error) {
	delete(f.locks, f.proposal.Key())
	if f.state == FlowCommitting {
		f.state = FlowFailed
		f.err = err
	}
}

// Reopen releases the commit lock and returns the flow to Proposed
// with the proposal retained. Used after the drop-time patch of an
// external event, whose confirmation stays open for further edits.
func (f *Flow) Reopen() {
	delete(f.locks, f.proposal.Key())
	if f.state == FlowCommitting {
		f.state = FlowProposed
	}
}

// Cancel discards the proposal with no persistence call. Has no effect
// while a commit is in flight.
func (f *Flow) Cancel() bool {
	if f.state == FlowCommitting || f.state == FlowInactive {
		return false
	}
	f.reset()
	return true
}

func (f *Flow) reset() {
	f.state = FlowInactive
	f.proposal = schedule.MoveProposal{}
	f.err = nil
	f.notifySMS = false
	f.notifyEmail = false
}
