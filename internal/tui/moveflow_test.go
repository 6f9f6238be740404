package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/mherran/shopcal/internal/schedule"
)

func jobProposal() schedule.MoveProposal {
	start := time.Date(2026, time.March, 20, 14, 0, 0, 0, time.UTC)
	return schedule.MoveProposal{
		Kind:          schedule.KindJob,
		JobID:         7,
		ProposedStart: start,
		ProposedEnd:   start.Add(60 * time.Minute),
		Title:         "Ana Torres · Oil change",
	}
}

func eventProposal() schedule.MoveProposal {
	start := time.Date(2026, time.March, 20, 13, 0, 0, 0, time.UTC)
	return schedule.MoveProposal{
		Kind:          schedule.KindExternal,
		EventID:       "evt-call",
		ProposedStart: start,
		ProposedEnd:   start.Add(30 * time.Minute),
		Title:         "Call",
	}
}

func TestCancelDiscardsCleanly(t *testing.T) {
	f := NewFlow()
	if !f.Propose(jobProposal()) {
		t.Fatal("propose refused")
	}

	if !f.Cancel() {
		t.Fatal("cancel refused")
	}
	if f.Active() {
		t.Error("flow still active after cancel")
	}
	if f.Locked("job:7") {
		t.Error("item locked after cancel")
	}
}

func TestFailRetainsProposalForRetry(t *testing.T) {
	f := NewFlow()
	f.Propose(jobProposal())

	mp, ok := f.Commit()
	if !ok {
		t.Fatal("commit refused")
	}
	if f.State() != FlowCommitting {
		t.Fatalf("state = %v, want FlowCommitting", f.State())
	}
	if !f.Locked(mp.Key()) {
		t.Error("item not locked during commit")
	}

	f.Fail(errors.New("disk full"))
	if f.State() != FlowFailed {
		t.Errorf("state = %v, want FlowFailed after failure", f.State())
	}
	if f.Err() == nil {
		t.Error("error not retained for display")
	}
	if f.Proposal().JobID != 7 {
		t.Error("proposal lost after failed commit")
	}
	if f.Locked(mp.Key()) {
		t.Error("lock not released after failure")
	}

	// Retry succeeds this time.
	if _, ok := f.Commit(); !ok {
		t.Fatal("retry commit refused")
	}
	f.Succeed()
	if f.Active() {
		t.Error("flow still active after success")
	}
	if f.Err() != nil {
		t.Error("error not cleared after success")
	}
}

func TestFailedCommitCanBeCancelled(t *testing.T) {
	f := NewFlow()
	f.Propose(jobProposal())
	f.Commit()
	f.Fail(errors.New("timeout"))

	if !f.Cancel() {
		t.Fatal("cancel refused after failure")
	}
	if f.Active() {
		t.Error("flow still active after cancel")
	}
}

func TestReopenKeepsProposalEditable(t *testing.T) {
	f := NewFlow()
	f.Propose(eventProposal())
	mp, _ := f.Commit()

	f.Reopen()
	if f.State() != FlowProposed {
		t.Errorf("state = %v, want FlowProposed after reopen", f.State())
	}
	if f.Locked(mp.Key()) {
		t.Error("lock not released on reopen")
	}
	if !f.SetEnd(f.Proposal().ProposedStart.Add(45 * time.Minute)) {
		t.Error("proposal not editable after reopen")
	}
}

func TestCancelBlockedWhileCommitting(t *testing.T) {
	f := NewFlow()
	f.Propose(jobProposal())
	f.Commit()

	if f.Cancel() {
		t.Error("cancel must be refused while committing")
	}
}

func TestProposeRefusedWhileItemLocked(t *testing.T) {
	f := NewFlow()
	f.Propose(jobProposal())
	f.Commit()

	// First commit still in flight; a second move of the same job is
	// refused.
	if f.Propose(jobProposal()) {
		t.Error("propose must be refused while the item is locked")
	}
}

func TestJobEndNotEditable(t *testing.T) {
	f := NewFlow()
	f.Propose(jobProposal())

	end := f.Proposal().ProposedEnd
	if f.SetEnd(end.Add(30 * time.Minute)) {
		t.Error("SetEnd must be refused for jobs")
	}
	if !f.Proposal().ProposedEnd.Equal(end) {
		t.Error("job end changed")
	}
}

func TestSetStartPreservesDuration(t *testing.T) {
	f := NewFlow()
	f.Propose(jobProposal())

	newStart := time.Date(2026, time.March, 20, 16, 30, 0, 0, time.UTC)
	f.SetStart(newStart)

	mp := f.Proposal()
	if !mp.ProposedStart.Equal(newStart) {
		t.Errorf("start = %v, want %v", mp.ProposedStart, newStart)
	}
	if got := mp.ProposedEnd.Sub(mp.ProposedStart); got != 60*time.Minute {
		t.Errorf("duration = %v, want 60m", got)
	}
}

func TestExternalEventEditableFields(t *testing.T) {
	f := NewFlow()
	f.Propose(eventProposal())

	if !f.SetEnd(f.Proposal().ProposedStart.Add(45 * time.Minute)) {
		t.Error("SetEnd refused for external event")
	}
	f.SetTitle("Supplier call")
	if f.Proposal().Title != "Supplier call" {
		t.Error("title edit not applied")
	}

	// Notification toggles are job-only.
	f.ToggleSMS()
	f.ToggleEmail()
	if f.NotifySMS() || f.NotifyEmail() {
		t.Error("notification toggles must be inert for external events")
	}
}

func TestNotifyTogglesForJobs(t *testing.T) {
	f := NewFlow()
	f.Propose(jobProposal())

	f.ToggleSMS()
	if !f.NotifySMS() {
		t.Error("SMS toggle not applied")
	}
	f.ToggleSMS()
	if f.NotifySMS() {
		t.Error("SMS toggle not cleared")
	}

	// A new proposal starts with clean toggles.
	f.Cancel()
	f.Propose(jobProposal())
	if f.NotifySMS() || f.NotifyEmail() {
		t.Error("toggles must reset for a new proposal")
	}
}
