package extcal

import (
	"bytes"
	"errors"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/mherran/shopcal/internal/schedule"
)

// parseFeed parses an ICS payload into external events. Events missing
// a UID or usable times are skipped rather than failing the whole feed.
func parseFeed(body []byte) ([]*schedule.ExternalEvent, error) {
	if len(body) == 0 {
		return nil, errors.New("empty feed body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]*schedule.ExternalEvent, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
		if uid == nil || uid.Value == "" {
			continue
		}

		start, err := ve.GetStartAt()
		if err != nil || start.IsZero() {
			continue
		}
		// Feed times arrive in the feed's zone; the grid partitions by
		// local day, so normalize here.
		start = start.In(time.Local)
		end, err := ve.GetEndAt()
		if err != nil || !end.After(start) {
			// No usable DTEND: render as a point-in-time entry.
			end = start
		} else {
			end = end.In(time.Local)
		}

		title := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			title = p.Value
		}

		events = append(events, &schedule.ExternalEvent{
			ID:    uid.Value,
			Title: title,
			Start: start,
			End:   end,
		})
	}

	return events, nil
}

// serializeEvent builds a single-VEVENT calendar body for a patch PUT.
func serializeEvent(id string, patch schedule.EventPatch) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodRequest)

	ve := cal.AddEvent(id)
	ve.SetDtStampTime(patch.Start)
	ve.SetStartAt(patch.Start)
	ve.SetEndAt(patch.End)
	if patch.Title != "" {
		ve.SetSummary(patch.Title)
	}

	return cal.Serialize()
}
