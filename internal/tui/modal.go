package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mherran/shopcal/internal/notify"
	"github.com/mherran/shopcal/internal/schedule"
	"github.com/mherran/shopcal/internal/tui/commands"
)

const clockLayout = "15:04"

// handleModalKeys handles keys while a modal is open.
func (m *Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalMove:
		return m.handleMoveModalKeys(msg)
	case ModalDetail:
		return m.handleDetailKeys(msg)
	default:
		if msg.String() == "esc" {
			m.closeModal()
		}
		return m, nil
	}
}

// handleMoveModalKeys handles keys in the move confirmation modal.
func (m *Model) handleMoveModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.flow.State() {
	case FlowEditing:
		return m.handleMoveEditKeys(msg)
	case FlowCommitting:
		// Locked while the save is in flight.
		return m, nil
	}

	mp := m.flow.Proposal()

	switch msg.String() {
	case "esc":
		// For a job this discards the proposal with nothing persisted.
		// For an external event the drop-time patch already landed, so
		// closing just skips the second update.
		if m.flow.Cancel() {
			m.closeModal()
			if mp.Kind == schedule.KindJob {
				m.statusMsg = "Move cancelled"
				return m, commands.ClearStatusAfter(statusClearDelay)
			}
			return m, nil
		}
		return m, nil

	case "enter":
		return m.commitMove()

	case "s":
		m.flow.ToggleSMS()
		return m, nil
	case "e":
		m.flow.ToggleEmail()
		return m, nil

	case "S":
		return m.beginEdit(fieldStart, mp.ProposedStart.Format(clockLayout))

	case "E":
		if mp.Kind == schedule.KindJob {
			// A job's end follows its service duration.
			m.statusMsg = "End time follows the service duration"
			return m, commands.ClearStatusAfter(statusClearDelay)
		}
		return m.beginEdit(fieldEnd, mp.ProposedEnd.Format(clockLayout))

	case "t":
		if mp.Kind == schedule.KindExternal {
			return m.beginEdit(fieldTitle, mp.Title)
		}
		return m, nil

	case "n":
		if mp.Kind == schedule.KindJob {
			return m.beginEdit(fieldNotes, mp.Notes)
		}
		return m, nil
	}

	return m, nil
}

// beginEdit opens a text input over one proposal field.
func (m *Model) beginEdit(f moveField, initial string) (tea.Model, tea.Cmd) {
	m.flow.BeginEdit()
	m.editField = f
	m.editInput.SetValue(initial)
	m.editInput.CursorEnd()
	m.editInput.Focus()
	return m, textinput.Blink
}

// handleMoveEditKeys handles keys while a proposal field is edited.
func (m *Model) handleMoveEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.flow.EndEdit()
		m.editField = fieldNone
		m.editInput.Blur()
		m.editInput.SetValue("")
		return m, nil

	case "enter":
		return m.applyEdit()
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// applyEdit validates and applies the edited field to the proposal.
func (m *Model) applyEdit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.editInput.Value())
	mp := m.flow.Proposal()

	switch m.editField {
	case fieldStart:
		t, err := parseClock(value, mp.ProposedStart)
		if err != nil {
			m.statusMsg = "Enter a time like 14:30"
			return m, commands.ClearStatusAfter(statusClearDelay)
		}
		m.flow.SetStart(t)

	case fieldEnd:
		t, err := parseClock(value, mp.ProposedEnd)
		if err != nil {
			m.statusMsg = "Enter a time like 14:30"
			return m, commands.ClearStatusAfter(statusClearDelay)
		}
		if !m.flow.SetEnd(t) {
			m.statusMsg = "End must be after start"
			return m, commands.ClearStatusAfter(statusClearDelay)
		}

	case fieldTitle:
		if value != "" {
			m.flow.SetTitle(value)
		}

	case fieldNotes:
		m.flow.SetNotes(value)
	}

	m.flow.EndEdit()
	m.editField = fieldNone
	m.editInput.Blur()
	m.editInput.SetValue("")
	return m, nil
}

// commitMove starts persisting the proposal through the path matching
// its kind: job moves write locally, external moves patch the calendar.
func (m *Model) commitMove() (tea.Model, tea.Cmd) {
	mp, ok := m.flow.Commit()
	if !ok {
		return m, nil
	}

	m.committedTitle = mp.Title
	m.statusMsg = "Saving…"

	if mp.Kind == schedule.KindJob {
		m.hasNotice = m.flow.NotifySMS() || m.flow.NotifyEmail()
		m.pendingNotice = notify.Reschedule{
			JobID:     mp.JobID,
			NewStart:  mp.ProposedStart,
			NewEnd:    mp.ProposedEnd,
			SendSMS:   m.flow.NotifySMS(),
			SendEmail: m.flow.NotifyEmail(),
		}
		return m, commands.CommitJobMove(m.repo, m.client, mp)
	}

	return m, commands.CommitEventMove(m.client, mp)
}

// handleDetailKeys handles keys in the detail modal.
func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.closeModal()
		return m, nil

	case "c":
		if m.detail != nil && m.detail.Kind == schedule.KindJob && m.detail.Job.Address != "" {
			if err := clipboard.WriteAll(m.detail.Job.Address); err != nil {
				m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
			} else {
				m.statusMsg = "Copied address"
			}
			return m, commands.ClearStatusAfter(statusClearDelay)
		}
	}
	return m, nil
}

// parseClock parses "HH:MM" onto the day of ref.
func parseClock(s string, ref time.Time) (time.Time, error) {
	t, err := time.ParseInLocation(clockLayout, s, ref.Location())
	if err != nil {
		return time.Time{}, err
	}
	return schedule.AtMinutes(ref, t.Hour()*60+t.Minute()), nil
}
