package tui

import (
	"time"

	"github.com/mherran/shopcal/internal/schedule"
	"github.com/mherran/shopcal/internal/slotmap"
)

// DragState tracks the lifecycle of a mouse drag on the grid.
type DragState int

const (
	DragIdle DragState = iota
	Dragging
	Dropped
)

// DragController owns an in-flight drag gesture. It holds the payload
// captured at press time plus the current hover target, and resolves
// the gesture into a move proposal on release. It never mutates the
// dragged item itself.
type DragController struct {
	state   DragState
	payload schedule.DragPayload

	hoverDay  time.Time // zero when the pointer is outside any day column
	hoverSlot int       // -1 when the pointer is outside the slot rows
}

// NewDragController returns an idle controller.
func NewDragController() *DragController {
	return &DragController{hoverSlot: -1}
}

// State returns the current drag state.
func (d *DragController) State() DragState { return d.state }

// Payload returns the captured payload. Valid only while not idle.
func (d *DragController) Payload() schedule.DragPayload { return d.payload }

// HoverSlot returns the slot index currently under the pointer, or -1.
func (d *DragController) HoverSlot() int { return d.hoverSlot }

// HoverDay returns the day currently under the pointer.
func (d *DragController) HoverDay() time.Time { return d.hoverDay }

// Start begins a drag over the given item. Starting while a gesture is
// already in flight replaces it, which covers a missed release event.
func (d *DragController) Start(p schedule.DragPayload, day time.Time, slot int) {
	d.state = Dragging
	d.payload = p
	d.hoverDay = day
	d.hoverSlot = slot
}

// Hover updates the drop target while dragging. A pointer outside the
// grid is recorded as (zero day, -1) so Drop can reject it.
func (d *DragController) Hover(day time.Time, slot int) {
	if d.state != Dragging {
		return
	}
	d.hoverDay = day
	d.hoverSlot = slot
}

// Drop resolves the gesture. A release over a valid cell yields a
// duration-preserving proposal whose start is the hovered slot's time
// on the hovered day; a release outside the grid abandons the drag with
// no proposal and no change to the item.
func (d *DragController) Drop(w slotmap.Window) (schedule.MoveProposal, bool) {
	if d.state != Dragging {
		return schedule.MoveProposal{}, false
	}

	if d.hoverDay.IsZero() || d.hoverSlot < 0 || d.hoverSlot >= w.TotalSlots() {
		d.reset()
		return schedule.MoveProposal{}, false
	}

	newStart := w.FromIndex(d.hoverDay, d.hoverSlot)
	mp := schedule.ProposalFromDrop(d.payload, newStart)

	d.state = Dropped
	return mp, true
}

// Cancel abandons the gesture without a proposal.
func (d *DragController) Cancel() {
	d.reset()
}

// Finish returns the controller to idle after the proposal has been
// handed off to the confirmation flow.
func (d *DragController) Finish() {
	d.reset()
}

func (d *DragController) reset() {
	d.state = DragIdle
	d.payload = schedule.DragPayload{}
	d.hoverDay = time.Time{}
	d.hoverSlot = -1
}
