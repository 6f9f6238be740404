// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mherran/shopcal/internal/extcal"
	"github.com/mherran/shopcal/internal/notify"
	"github.com/mherran/shopcal/internal/schedule"
)

// JobsLoadedMsg is sent when the jobs for the visible range are loaded.
type JobsLoadedMsg struct {
	Jobs []*schedule.Job
}

// EventsLoadedMsg is sent when external events are loaded. A degraded
// load (calendar unreachable, nothing cached) carries an empty list
// and the cause in Err; the grid still renders jobs.
type EventsLoadedMsg struct {
	Events []*schedule.ExternalEvent
	Err    error
}

// JobCommittedMsg is sent when a job move has been persisted.
type JobCommittedMsg struct {
	Job *schedule.Job
}

// EventPatchedMsg is sent when an external event patch was accepted.
type EventPatchedMsg struct {
	EventID string
}

// CommitFailedMsg is sent when persisting a move fails. The proposal
// stays open so the user can retry or cancel.
type CommitFailedMsg struct {
	Err error
}

// NotifySentMsg is sent after the reschedule notification attempt.
type NotifySentMsg struct {
	Err error
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadJobs loads jobs for a visible range, padded by a day on each side
// so blocks spilling over midnight boundaries still render. A read
// failure degrades to an empty day rather than blocking the grid.
func LoadJobs(repo schedule.Repository, r schedule.TimeRange) tea.Cmd {
	return func() tea.Msg {
		jobs, err := repo.ListJobs(context.Background(), r.Padded(24*time.Hour))
		if err != nil {
			return JobsLoadedMsg{Jobs: nil}
		}
		return JobsLoadedMsg{Jobs: jobs}
	}
}

// LoadEvents fetches external events for a visible range. When the
// calendar is not connected the grid simply gets no external lane.
func LoadEvents(client *extcal.Client, r schedule.TimeRange) tea.Cmd {
	return func() tea.Msg {
		if client == nil || !client.Connected() {
			return EventsLoadedMsg{}
		}
		events, err := client.ListEvents(context.Background(), r.Padded(24*time.Hour))
		if err != nil {
			return EventsLoadedMsg{Err: err}
		}
		return EventsLoadedMsg{Events: events}
	}
}

// CommitJobMove persists a job reschedule, then asks the calendar
// service to refresh the job's external mirror. The mirror push is
// best-effort; the job row is the source of truth.
func CommitJobMove(repo schedule.Repository, client *extcal.Client, mp schedule.MoveProposal) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		upd := schedule.ScheduleUpdate{ScheduledAt: &mp.ProposedStart}
		if mp.Notes != "" {
			upd.Notes = &mp.Notes
		}
		if err := repo.UpdateJobSchedule(ctx, mp.JobID, upd); err != nil {
			return CommitFailedMsg{Err: err}
		}

		job, err := repo.GetJob(ctx, mp.JobID)
		if err != nil {
			return CommitFailedMsg{Err: err}
		}

		if client != nil && client.Connected() && job.ExternalEventID != "" {
			_ = client.RequestJobSync(ctx, job.ID)
		}

		return JobCommittedMsg{Job: job}
	}
}

// CommitEventMove pushes new times for an external event. Nothing is
// written locally; the external calendar owns the event.
func CommitEventMove(client *extcal.Client, mp schedule.MoveProposal) tea.Cmd {
	return func() tea.Msg {
		if client == nil || !client.Connected() {
			return CommitFailedMsg{Err: extcal.ErrNotConnected}
		}

		patch := schedule.EventPatch{
			Start: mp.ProposedStart,
			End:   mp.ProposedEnd,
			Title: mp.Title,
		}
		if err := client.PatchEvent(context.Background(), mp.EventID, patch); err != nil {
			return CommitFailedMsg{Err: err}
		}

		return EventPatchedMsg{EventID: mp.EventID}
	}
}

// SendRescheduleNotice posts the customer notification for a committed
// job move. Fire-and-forget: a failure surfaces as a status message,
// never as a rollback.
func SendRescheduleNotice(n *notify.Notifier, r notify.Reschedule) tea.Cmd {
	return func() tea.Msg {
		return NotifySentMsg{Err: n.SendReschedule(context.Background(), r)}
	}
}

// ClearStatusAfter clears the status line after a delay.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
