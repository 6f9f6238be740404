package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mherran/shopcal/internal/schedule"
	"github.com/mherran/shopcal/internal/tui/commands"
)

// handleMouseMsg drives the drag controller from raw mouse events.
// Press captures the payload, motion updates the drop target, release
// resolves into a proposal (or a plain click into the detail modal).
func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeModal {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.handlePress(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if m.drag.State() == Dragging {
			day, slot, ok := m.layout.hit(msg.X, msg.Y)
			if !ok {
				m.drag.Hover(day, -1)
			} else {
				m.drag.Hover(day, slot)
			}
		}
		return m, nil

	case tea.MouseActionRelease:
		return m.handleRelease(msg.X, msg.Y)
	}

	return m, nil
}

// handlePress begins a drag when the press lands on a block.
func (m *Model) handlePress(x, y int) (tea.Model, tea.Cmd) {
	day, slot, ok := m.layout.hit(x, y)
	if !ok {
		return m, nil
	}

	item, found := itemAt(m.unified, m.window, day, slot)
	if !found {
		return m, nil
	}

	if m.flow.Locked(item.Key()) {
		m.statusMsg = "Still saving previous move"
		return m, commands.ClearStatusAfter(statusClearDelay)
	}

	payload := schedule.DragPayload{
		Kind:     item.Kind,
		Title:    item.Title(),
		Original: item.Interval(),
	}
	if item.Kind == schedule.KindJob {
		payload.JobID = item.Job.ID
	} else {
		payload.EventID = item.Event.ID
	}

	m.drag.Start(payload, day, slot)
	m.mode = ModeDrag
	m.pressDay = day
	m.pressSlot = slot
	LogDrag("press", day, slot, item.Key())
	return m, nil
}

// handleRelease resolves the gesture. A release on the press cell is a
// click and opens the detail modal; anywhere else it is a drop.
func (m *Model) handleRelease(x, y int) (tea.Model, tea.Cmd) {
	if m.drag.State() != Dragging {
		return m, nil
	}
	m.mode = ModeNormal

	day, slot, ok := m.layout.hit(x, y)
	if ok && slot == m.pressSlot && schedule.SameDay(day, m.pressDay) {
		// Plain click: show the item instead of moving it.
		item, found := itemAt(m.unified, m.window, day, slot)
		m.drag.Cancel()
		if found {
			m.detail = &item
			m.mode = ModeModal
			m.modalType = ModalDetail
		}
		return m, nil
	}

	mp, dropped := m.drag.Drop(m.window)
	m.drag.Finish()
	if !dropped {
		// Released outside the grid: the item stays where it was.
		LogDrag("abandoned", day, slot, "")
		return m, nil
	}

	if !m.flow.Propose(mp) {
		m.statusMsg = "Still saving previous move"
		return m, commands.ClearStatusAfter(statusClearDelay)
	}

	m.mode = ModeModal
	m.modalType = ModalMove
	LogDrag("dropped", day, slot, mp.Key())

	// External events are patched immediately on drop; the
	// confirmation then stays open for edits, and a second explicit
	// update persists again. Jobs wait for the confirmation so the
	// customer notification can be chosen first.
	if mp.Kind == schedule.KindExternal {
		committed, ok := m.flow.Commit()
		if !ok {
			return m, nil
		}
		m.dropPatch = true
		m.committedTitle = committed.Title
		return m, commands.CommitEventMove(m.client, committed)
	}
	return m, nil
}
