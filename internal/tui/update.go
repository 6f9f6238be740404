package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mherran/shopcal/internal/schedule"
	"github.com/mherran/shopcal/internal/tui/commands"
)

const statusClearDelay = 4 * time.Second

// Update handles incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recompute()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case commands.JobsLoadedMsg:
		m.jobs = msg.Jobs
		m.loading = false
		m.recompute()
		return m, nil

	case refreshMsg:
		if msg.err == nil {
			m.events = msg.events
			m.recompute()
		}
		return m, m.waitForRefresh()

	case commands.EventsLoadedMsg:
		m.events = msg.Events
		m.recompute()
		if msg.Err != nil {
			m.statusMsg = "Calendar unavailable, showing jobs only"
			return m, commands.ClearStatusAfter(statusClearDelay)
		}
		return m, nil

	case commands.JobCommittedMsg:
		return m.handleJobCommitted(msg)

	case commands.EventPatchedMsg:
		if m.dropPatch {
			// The drop-time patch landed; refresh the feed and keep
			// the confirmation open for edits.
			m.dropPatch = false
			m.flow.Reopen()
			m.statusMsg = "Moved: " + m.committedTitle
			return m, tea.Batch(
				commands.LoadEvents(m.client, m.visible),
				commands.ClearStatusAfter(statusClearDelay),
			)
		}
		m.flow.Succeed()
		m.closeModal()
		m.statusMsg = "Rescheduled: " + m.committedTitle
		return m, tea.Batch(
			commands.LoadEvents(m.client, m.visible),
			commands.ClearStatusAfter(statusClearDelay),
		)

	case commands.CommitFailedMsg:
		// The proposal stays open for retry; nothing was persisted.
		m.flow.Fail(msg.Err)
		LogError("commit", msg.Err)
		return m, nil

	case commands.NotifySentMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Notification failed: %v", msg.Err)
			return m, commands.ClearStatusAfter(statusClearDelay)
		}
		return m, nil

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		return m, nil
	}

	return m, nil
}

// handleJobCommitted finalizes a job move: close the flow, fire the
// customer notification if one was selected, reload the week.
func (m *Model) handleJobCommitted(msg commands.JobCommittedMsg) (tea.Model, tea.Cmd) {
	m.flow.Succeed()
	m.closeModal()
	m.statusMsg = "Rescheduled: " + m.committedTitle

	cmds := []tea.Cmd{
		commands.LoadJobs(m.repo, m.visible),
		commands.ClearStatusAfter(statusClearDelay),
	}
	if m.hasNotice && m.notifier != nil && m.notifier.Enabled() {
		notice := m.pendingNotice
		notice.CustomerName = msg.Job.CustomerName
		notice.ServiceName = msg.Job.ServiceName
		cmds = append(cmds, commands.SendRescheduleNotice(m.notifier, notice))
	}
	m.hasNotice = false

	return m, tea.Batch(cmds...)
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeModal:
		return m.handleModalKeys(msg)
	case ModeDrag:
		if msg.String() == "esc" {
			m.drag.Cancel()
			m.mode = ModeNormal
			m.statusMsg = "Move cancelled"
			return m, commands.ClearStatusAfter(statusClearDelay)
		}
		return m, nil
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// View switching
	case "d":
		return m.switchView(schedule.ViewDay)
	case "w":
		return m.switchView(schedule.ViewWeek)
	case "m":
		return m.switchView(schedule.ViewMonth)
	case "y":
		return m.switchView(schedule.ViewYear)

	// Range navigation
	case "h", "left":
		m.anchor = schedule.Prev(m.view, m.visible).Start
		m.recompute()
		return m, m.reload()
	case "l", "right":
		m.anchor = schedule.Next(m.view, m.visible).Start
		m.recompute()
		return m, m.reload()
	case "t":
		m.anchor = time.Now()
		m.recompute()
		return m, m.reload()

	case "r":
		return m, m.reload()
	}

	return m, nil
}

// switchView changes the calendar view, keeping the anchor date.
func (m *Model) switchView(v schedule.View) (tea.Model, tea.Cmd) {
	if m.view == v {
		return m, nil
	}
	m.view = v
	m.recompute()
	return m, m.reload()
}

// closeModal resets all modal state.
func (m *Model) closeModal() {
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.detail = nil
	m.dropPatch = false
	m.editField = fieldNone
	m.editInput.Blur()
	m.editInput.SetValue("")
}
