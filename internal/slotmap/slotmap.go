// Package slotmap converts wall-clock timestamps to discrete grid rows
// and back, and defines the row geometry of the calendar grid. All
// functions are pure; the working-hours window and slot size come from
// configuration.
package slotmap

import (
	"time"

	"github.com/mherran/shopcal/internal/schedule"
)

// Window describes the visible working-hours window of the grid.
type Window struct {
	StartHour   int // first visible hour, e.g. 8
	EndHour     int // first hour past the window, e.g. 18
	SlotMinutes int // row granularity, must divide 60 evenly
}

// TotalSlots returns the number of rows in the window.
func (w Window) TotalSlots() int {
	return (w.EndHour - w.StartHour) * 60 / w.SlotMinutes
}

// ToIndex maps a timestamp to its grid row. Times outside the window
// clamp to the nearest boundary slot, so a drag that overshoots the
// grid edge still resolves to a valid drop slot.
func (w Window) ToIndex(t time.Time) int {
	mins := (t.Hour()-w.StartHour)*60 + t.Minute()
	idx := mins / w.SlotMinutes
	if mins < 0 {
		// integer division truncates toward zero; force the floor
		idx = 0
	}
	return w.clamp(idx)
}

// FromIndex is the inverse mapping: the timestamp at the start of the
// given row on dayAnchor's calendar day. Out-of-range indices clamp.
func (w Window) FromIndex(dayAnchor time.Time, idx int) time.Time {
	idx = w.clamp(idx)
	mins := w.StartHour*60 + idx*w.SlotMinutes
	return schedule.AtMinutes(dayAnchor, mins)
}

// Span returns the inclusive start row and exclusive end row covered
// by an interval. End is at least start+1 so every item spans a row.
func (w Window) Span(r schedule.TimeRange) (start, end int) {
	start = w.ToIndex(r.Start)

	endMins := (r.End.Hour()-w.StartHour)*60 + r.End.Minute()
	end = endMins / w.SlotMinutes
	if endMins%w.SlotMinutes != 0 {
		end++
	}
	if end > w.TotalSlots() {
		end = w.TotalSlots()
	}
	if end <= start {
		end = start + 1
	}
	return start, end
}

func (w Window) clamp(idx int) int {
	if idx < 0 {
		return 0
	}
	if max := w.TotalSlots() - 1; idx > max {
		return max
	}
	return idx
}

// Geometry defines the fixed row sizing of rendered blocks.
type Geometry struct {
	SlotHeight int // rows (or pixels) per slot
	Gutter     int // gap shaved off the bottom of each block
}

// BlockTop returns the vertical offset of a block starting at startSlot.
func (g Geometry) BlockTop(startSlot int) int {
	return startSlot * g.SlotHeight
}

// BlockHeight returns the rendered height for a block spanning the
// given number of slots. Every block gets at least one visible row,
// even for zero-duration or sub-slot items.
func (g Geometry) BlockHeight(slotsSpanned int) int {
	if slotsSpanned < 1 {
		slotsSpanned = 1
	}
	h := slotsSpanned*g.SlotHeight - g.Gutter
	if h < 1 {
		h = 1
	}
	return h
}
