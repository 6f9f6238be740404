// Package extcal talks to the shop's external calendar: a read-only ICS
// feed for listing events, plus per-event PUT endpoints for rescheduling
// entries that belong to the external calendar.
package extcal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/mherran/shopcal/internal/config"
	"github.com/mherran/shopcal/internal/schedule"
)

// ErrNotConnected is returned when no calendar feed is configured.
var ErrNotConnected = errors.New("external calendar not connected")

// requestTimeout bounds every calendar round trip so a hung server
// cannot leave the UI stuck in a committing state.
const requestTimeout = 15 * time.Second

// Client fetches and patches external calendar events.
type Client struct {
	feedURL string
	syncURL string
	http    *http.Client
	cache   *feedCache
}

// NewClient builds a calendar client from config. A client built from
// an unconfigured calendar section is valid but reports Connected()
// false and fails every call with ErrNotConnected.
func NewClient(cfg config.CalendarConfig) *Client {
	var hc *http.Client
	if cfg.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		hc = oauth2.NewClient(context.Background(), src)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = requestTimeout

	return &Client{
		feedURL: cfg.FeedURL,
		syncURL: cfg.SyncURL,
		http:    hc,
		cache:   newFeedCache(cfg.CacheDir),
	}
}

// Connected reports whether a calendar feed is configured.
func (c *Client) Connected() bool {
	return c.feedURL != ""
}

// ListEvents fetches the feed and returns events overlapping the range,
// sorted by start time. On fetch failure it falls back to the last
// cached body; only when both fail does it return an error.
func (c *Client) ListEvents(ctx context.Context, r schedule.TimeRange) ([]*schedule.ExternalEvent, error) {
	if !c.Connected() {
		return nil, ErrNotConnected
	}

	body, err := c.fetchFeed(ctx)
	if err != nil {
		if _, cached := c.cache.load(c.feedURL); len(cached) > 0 {
			body = cached
		} else {
			return nil, err
		}
	}

	all, err := parseFeed(body)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar feed: %w", err)
	}

	events := make([]*schedule.ExternalEvent, 0, len(all))
	for _, ev := range all {
		if ev.Start.Before(r.End) && ev.End.After(r.Start) {
			events = append(events, ev)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})

	return events, nil
}

// fetchFeed performs a conditional GET of the feed. A 304 response
// resolves to the cached body.
func (c *Client) fetchFeed(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request: %w", err)
	}

	meta, cached := c.cache.load(c.feedURL)
	if len(cached) > 0 {
		if meta.ETag != "" {
			req.Header.Set("If-None-Match", meta.ETag)
		}
		if meta.LastModified != "" {
			req.Header.Set("If-Modified-Since", meta.LastModified)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotModified && len(cached) > 0 {
		return cached, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar feed returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading calendar feed: %w", err)
	}

	_ = c.cache.save(c.feedURL, cacheMeta{
		URL:          c.feedURL,
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
	}, body)

	return body, nil
}

// PatchEvent pushes new times for an event the external calendar owns.
func (c *Client) PatchEvent(ctx context.Context, eventID string, patch schedule.EventPatch) error {
	if !c.Connected() {
		return ErrNotConnected
	}
	if eventID == "" {
		return errors.New("empty event id")
	}
	if !patch.End.After(patch.Start) {
		return errors.New("patch end must be after start")
	}

	url := strings.TrimSuffix(c.feedURL, "/") + "/events/" + eventID
	body := serializeEvent(eventID, patch)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("building patch request: %w", err)
	}
	req.Header.Set("Content-Type", "text/calendar")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("patching event %s: %w", eventID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("patching event %s: server returned %s", eventID, resp.Status)
	}

	return nil
}

// RequestJobSync asks the calendar service to refresh its mirrored copy
// of a job. The calendar is not the source of truth for jobs, so a
// failure here only delays the mirror catching up.
func (c *Client) RequestJobSync(ctx context.Context, jobID int64) error {
	if !c.Connected() || c.syncURL == "" {
		return ErrNotConnected
	}

	url := fmt.Sprintf("%s?job=%d", c.syncURL, jobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("building sync request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting job sync: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("requesting job sync: server returned %s", resp.Status)
	}

	return nil
}
