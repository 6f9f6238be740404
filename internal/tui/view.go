package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mherran/shopcal/internal/schedule"
)

const footerLines = 2

// View renders the full screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	switch m.view {
	case schedule.ViewDay, schedule.ViewWeek:
		b.WriteString(m.renderSlotGrid())
	case schedule.ViewMonth:
		b.WriteString(m.renderMonth())
	case schedule.ViewYear:
		b.WriteString(m.renderYear())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	if m.mode == ModeModal {
		return m.overlayModal(b.String())
	}
	return b.String()
}

// renderTitle renders the top bar with the visible range.
func (m Model) renderTitle() string {
	var label string
	switch m.view {
	case schedule.ViewDay:
		label = m.visible.Start.Format("Monday, Jan 2 2006")
	case schedule.ViewWeek:
		last := m.visible.End.AddDate(0, 0, -1)
		label = fmt.Sprintf("Week of %s – %s",
			m.visible.Start.Format("Jan 2"), last.Format("Jan 2 2006"))
	case schedule.ViewMonth:
		label = m.visible.Start.Format("January 2006")
	case schedule.ViewYear:
		label = m.visible.Start.Format("2006")
	}

	title := m.styles.TitleStyle.Render("shopcal") + "  " + label
	if m.loading {
		title += "  " + m.styles.HelpStyle.Render("loading…")
	}
	return title
}

// renderSlotGrid renders the day or week slot grid.
func (m Model) renderSlotGrid() string {
	g := m.layout
	if len(g.days) == 0 {
		return ""
	}

	var b strings.Builder

	// Day header row
	b.WriteString(strings.Repeat(" ", timeColWidth))
	now := time.Now()
	for _, day := range g.days {
		style := m.styles.DayHeaderStyle
		if schedule.SameDay(day, now) {
			style = m.styles.DayHeaderTodayStyle
		}
		label := day.Format("Mon 2")
		b.WriteString(style.Render(padCell(label, g.colWidth)))
	}
	b.WriteString("\n")

	for row := 0; row < g.visible; row++ {
		slot := row + g.scroll
		mins := (m.window.StartHour * 60) + slot*m.window.SlotMinutes
		b.WriteString(m.styles.TimeColumnStyle.Render(
			padCell(schedule.MinutesToTime(mins), timeColWidth)))

		for _, day := range g.days {
			b.WriteString(m.renderCell(day, slot))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderCell renders a single (day, slot) cell.
func (m Model) renderCell(day time.Time, slot int) string {
	w := m.layout.colWidth

	// Drop target preview while dragging
	if m.drag.State() == Dragging && m.drag.HoverSlot() == slot &&
		!m.drag.HoverDay().IsZero() && schedule.SameDay(m.drag.HoverDay(), day) {
		return m.styles.DropTargetStyle.Render(padCell(" "+m.drag.Payload().Title, w))
	}

	item, found := itemAt(m.unified, m.window, day, slot)
	if !found {
		return m.styles.EmptyCellStyle.Render(padCell(" ·", w))
	}

	// The dragged item renders dimmed at its origin
	if m.drag.State() == Dragging && m.drag.Payload().Kind == item.Kind &&
		samePayloadItem(m.drag.Payload(), item) {
		return m.styles.DragSourceStyle.Render(padCell(" "+item.Title(), w))
	}

	start, _ := m.layout.span(item.Interval())
	text := " "
	if slot == start {
		text = " " + item.Title()
	}

	return m.styles.blockStyle(m.itemBlockKind(item)).Render(padCell(text, w))
}

// itemBlockKind classifies an item for styling.
func (m Model) itemBlockKind(item schedule.UnifiedItem) blockKind {
	if m.flow.Locked(item.Key()) {
		return blockLocked
	}

	now := time.Now()
	past := item.Interval().End.Before(now)

	if item.Kind == schedule.KindJob {
		if item.Job.Status == schedule.StatusInProgress {
			return blockJobCurrent
		}
		if past {
			return blockJobPast
		}
		return blockJob
	}
	if past {
		return blockExternalPast
	}
	return blockExternal
}

// samePayloadItem reports whether the payload refers to this item.
func samePayloadItem(p schedule.DragPayload, item schedule.UnifiedItem) bool {
	if item.Kind == schedule.KindJob {
		return p.JobID == item.Job.ID
	}
	return p.EventID == item.Event.ID
}

// renderMonth renders the month summary: a weekday-aligned grid of day
// cells with item counts.
func (m Model) renderMonth() string {
	var b strings.Builder

	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for _, n := range names {
		b.WriteString(m.styles.DayHeaderStyle.Render(padCell(n, 8)))
	}
	b.WriteString("\n")

	day := m.visible.Start
	// Lead-in blanks up to the first weekday
	for i := 0; i < int(day.Weekday()); i++ {
		b.WriteString(strings.Repeat(" ", 8))
	}

	now := time.Now()
	for day.Before(m.visible.End) {
		count := dayCount(m.unified, day)

		style := m.styles.SummaryDayStyle
		if count > 0 {
			style = m.styles.SummaryDayBusyStyle
		}
		if schedule.SameDay(day, now) {
			style = m.styles.SummaryDayTodayStyle
		}

		cell := fmt.Sprintf("%2d", day.Day())
		if count > 0 {
			cell += fmt.Sprintf(" ·%d", count)
		}
		b.WriteString(style.Render(padCell(cell, 8)))

		if day.Weekday() == time.Saturday {
			b.WriteString("\n")
		}
		day = day.AddDate(0, 0, 1)
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderYear renders per-month item totals for the year.
func (m Model) renderYear() string {
	var b strings.Builder

	start := m.visible.Start
	for i := 0; i < 12; i++ {
		monthStart := start.AddDate(0, i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		total := 0
		for day := monthStart; day.Before(monthEnd); day = day.AddDate(0, 0, 1) {
			total += dayCount(m.unified, day)
		}

		style := m.styles.SummaryDayStyle
		if total > 0 {
			style = m.styles.SummaryDayBusyStyle
		}
		line := fmt.Sprintf("%-12s %3d scheduled", monthStart.Format("January"), total)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderFooter renders the status line and key help.
func (m Model) renderFooter() string {
	status := m.statusMsg
	if m.mode == ModeDrag {
		status = m.styles.WarningStyle.Render(" moving: " + m.drag.Payload().Title + " ")
	} else if status != "" {
		status = m.styles.StatusStyle.Render(" " + status + " ")
	}

	help := m.styles.HelpStyle.Render(
		"d/w/m/y views · h/l navigate · t today · r reload · drag to reschedule · q quit")

	return status + "\n" + help
}

// overlayModal draws the open modal centered over the grid.
func (m Model) overlayModal(base string) string {
	var content string
	switch m.modalType {
	case ModalMove:
		content = m.renderMoveModal()
	case ModalDetail:
		content = m.renderDetailModal()
	default:
		return base
	}

	modal := m.styles.ModalStyle.Render(content)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}
	return base + "\n" + modal
}

// renderMoveModal renders the move confirmation dialog.
func (m Model) renderMoveModal() string {
	mp := m.flow.Proposal()
	var b strings.Builder

	b.WriteString(m.styles.ModalTitleStyle.Render("Confirm move"))
	b.WriteString("\n\n")

	b.WriteString(m.styles.ModalLabelStyle.Render("Item   "))
	b.WriteString(m.styles.ModalValueStyle.Render(mp.Title))
	b.WriteString("\n")

	b.WriteString(m.styles.ModalLabelStyle.Render("Day    "))
	b.WriteString(m.styles.ModalValueStyle.Render(mp.ProposedStart.Format("Mon, Jan 2 2006")))
	b.WriteString("\n")

	b.WriteString(m.styles.ModalLabelStyle.Render("Start  "))
	if m.flow.State() == FlowEditing && m.editField == fieldStart {
		b.WriteString(m.editInput.View())
	} else {
		b.WriteString(m.styles.ModalValueStyle.Render(mp.ProposedStart.Format(clockLayout)))
	}
	b.WriteString("\n")

	b.WriteString(m.styles.ModalLabelStyle.Render("End    "))
	switch {
	case m.flow.State() == FlowEditing && m.editField == fieldEnd:
		b.WriteString(m.editInput.View())
	case mp.Kind == schedule.KindJob:
		b.WriteString(m.styles.ModalLockedStyle.Render(
			mp.ProposedEnd.Format(clockLayout) + " (from service duration)"))
	default:
		b.WriteString(m.styles.ModalValueStyle.Render(mp.ProposedEnd.Format(clockLayout)))
	}
	b.WriteString("\n")

	if mp.Kind == schedule.KindJob {
		b.WriteString(m.styles.ModalLabelStyle.Render("Notes  "))
		if m.flow.State() == FlowEditing && m.editField == fieldNotes {
			b.WriteString(m.editInput.View())
		} else {
			b.WriteString(m.styles.ModalValueStyle.Render(mp.Notes))
		}
		b.WriteString("\n\n")
		b.WriteString(m.renderToggle("[s] SMS", m.flow.NotifySMS()))
		b.WriteString("  ")
		b.WriteString(m.renderToggle("[e] Email", m.flow.NotifyEmail()))
		b.WriteString("\n")
	} else if m.flow.State() == FlowEditing && m.editField == fieldTitle {
		b.WriteString(m.styles.ModalLabelStyle.Render("Title  "))
		b.WriteString(m.editInput.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.flow.State() {
	case FlowCommitting:
		b.WriteString(m.styles.ModalHintStyle.Render("Saving…"))
	case FlowEditing:
		b.WriteString(m.styles.ModalHintStyle.Render("Enter apply · Esc back"))
	case FlowFailed:
		b.WriteString(m.styles.WarningStyle.Render(fmt.Sprintf(" Save failed: %v ", m.flow.Err())))
		b.WriteString("\n")
		b.WriteString(m.styles.ModalHintStyle.Render("Enter retry · Esc cancel"))
	default:
		var hint string
		if mp.Kind == schedule.KindJob {
			hint = "Enter save · Esc cancel · S start · n notes"
		} else {
			hint = "Enter update · Esc close · S start · E end · t title"
		}
		b.WriteString(m.styles.ModalHintStyle.Render(hint))
	}

	return b.String()
}

// renderToggle renders a notification channel toggle.
func (m Model) renderToggle(label string, on bool) string {
	if on {
		return m.styles.ToggleOnStyle.Render(" " + label + " ✓ ")
	}
	return m.styles.ToggleOffStyle.Render(" " + label + " ")
}

// renderDetailModal renders the read-only item detail dialog.
func (m Model) renderDetailModal() string {
	if m.detail == nil {
		return ""
	}
	it := *m.detail
	iv := it.Interval()

	var b strings.Builder
	b.WriteString(m.styles.ModalTitleStyle.Render(it.Title()))
	b.WriteString("\n\n")

	b.WriteString(m.styles.ModalLabelStyle.Render("When   "))
	b.WriteString(m.styles.ModalValueStyle.Render(fmt.Sprintf("%s  %s – %s",
		iv.Start.Format("Mon, Jan 2"), iv.Start.Format(clockLayout), iv.End.Format(clockLayout))))
	b.WriteString("\n")

	if it.Kind == schedule.KindJob {
		j := it.Job
		b.WriteString(m.styles.ModalLabelStyle.Render("Status "))
		b.WriteString(m.styles.ModalValueStyle.Render(string(j.Status)))
		b.WriteString("\n")
		if j.Address != "" {
			b.WriteString(m.styles.ModalLabelStyle.Render("Where  "))
			b.WriteString(m.styles.ModalValueStyle.Render(j.Address))
			b.WriteString("\n")
		}
		if j.Notes != "" {
			b.WriteString(m.styles.ModalLabelStyle.Render("Notes  "))
			b.WriteString(m.styles.ModalValueStyle.Render(j.Notes))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.ModalHintStyle.Render("c copy address · Esc close"))
	} else {
		b.WriteString(m.styles.ModalLabelStyle.Render("Source "))
		b.WriteString(m.styles.ModalValueStyle.Render("external calendar"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.ModalHintStyle.Render("Esc close"))
	}

	return b.String()
}

// padCell pads or truncates s to exactly width cells.
func padCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > width {
		if width > 1 {
			return string(runes[:width-1]) + "…"
		}
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}
