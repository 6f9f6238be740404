package tui

import (
	"time"

	"github.com/mherran/shopcal/internal/schedule"
	"github.com/mherran/shopcal/internal/slotmap"
)

// Fixed chrome around the grid.
const (
	timeColWidth = 7 // "HH:MM  "
	headerLines  = 2 // title row + day header row
	minColWidth  = 10
)

// gridLayout maps between terminal cells and (day, slot) grid
// coordinates for the day and week views.
type gridLayout struct {
	window   slotmap.Window
	days     []time.Time // day column anchors, left to right
	originX  int         // first column cell after the time gutter
	originY  int         // first slot row
	colWidth int
	rowLines int // terminal lines per slot
	scroll   int // first visible slot index
	visible  int // visible slot rows
}

// buildLayout computes the grid layout for the current view, range and
// terminal size. Only day and week views have slot grids.
func buildLayout(view schedule.View, r schedule.TimeRange, w slotmap.Window, width, height int) gridLayout {
	var days []time.Time
	switch view {
	case schedule.ViewDay:
		days = []time.Time{r.Start}
	case schedule.ViewWeek:
		days = make([]time.Time, 7)
		for i := range days {
			days[i] = r.Start.AddDate(0, 0, i)
		}
	default:
		return gridLayout{window: w}
	}

	colWidth := minColWidth
	if width > 0 {
		if cw := (width - timeColWidth) / len(days); cw > colWidth {
			colWidth = cw
		}
	}

	visible := height - headerLines - footerLines
	if visible < 1 {
		visible = 1
	}
	if visible > w.TotalSlots() {
		visible = w.TotalSlots()
	}

	return gridLayout{
		window:   w,
		days:     days,
		originX:  timeColWidth,
		originY:  headerLines,
		colWidth: colWidth,
		rowLines: 1,
		visible:  visible,
	}
}

// hit maps a terminal cell to a (day, slot) grid position. Positions in
// the gutter, header, or past the last column report ok false.
func (g gridLayout) hit(x, y int) (day time.Time, slot int, ok bool) {
	if len(g.days) == 0 {
		return time.Time{}, -1, false
	}
	if x < g.originX || y < g.originY {
		return time.Time{}, -1, false
	}

	col := (x - g.originX) / g.colWidth
	if col >= len(g.days) {
		return time.Time{}, -1, false
	}

	row := (y-g.originY)/g.rowLines + g.scroll
	if row >= g.window.TotalSlots() || row-g.scroll >= g.visible {
		return time.Time{}, -1, false
	}

	return g.days[col], row, true
}

// slotOf returns the slot index of a timestamp within the window.
func (g gridLayout) slotOf(t time.Time) int {
	return g.window.ToIndex(t)
}

// span returns the slot rows an item covers.
func (g gridLayout) span(iv schedule.TimeRange) (start, end int) {
	return g.window.Span(iv)
}

// itemAt returns the item drawn at a grid cell: the last item in the
// day's collection covering the slot, matching the z-order used when
// rendering stacked overlaps.
func itemAt(unified map[string][]schedule.UnifiedItem, w slotmap.Window, day time.Time, slot int) (schedule.UnifiedItem, bool) {
	items := unified[schedule.DayKey(day)]
	var found schedule.UnifiedItem
	ok := false
	for _, it := range items {
		start, end := w.Span(it.Interval())
		if slot >= start && slot < end {
			found = it
			ok = true
		}
	}
	return found, ok
}

// dayCount returns how many items land on a day. Used by the month and
// year summaries.
func dayCount(unified map[string][]schedule.UnifiedItem, day time.Time) int {
	return len(unified[schedule.DayKey(day)])
}
