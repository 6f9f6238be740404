// Package syncd runs the periodic calendar refresh while the planner
// is open, so the external lane stays current without manual reloads.
package syncd

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mherran/shopcal/internal/schedule"
)

// EventLister is the slice of the calendar client the daemon needs.
type EventLister interface {
	Connected() bool
	ListEvents(ctx context.Context, r schedule.TimeRange) ([]*schedule.ExternalEvent, error)
}

// Refresh is delivered to the subscriber after each scheduled fetch.
type Refresh struct {
	Events []*schedule.ExternalEvent
	Err    error
	At     time.Time
}

// Daemon periodically refreshes the external calendar feed for a range
// the UI keeps current via SetRange.
type Daemon struct {
	client   EventLister
	cron     *cron.Cron
	out      chan Refresh
	schedule string

	mu      sync.Mutex
	current schedule.TimeRange
}

// New builds a daemon that fetches on the given cron schedule
// (e.g. "@every 15m") for the initial range.
func New(client EventLister, spec string, initial schedule.TimeRange) *Daemon {
	return &Daemon{
		client:   client,
		cron:     cron.New(),
		out:      make(chan Refresh, 1),
		current:  initial,
		schedule: spec,
	}
}

// Updates returns the channel refreshes are delivered on. A slow reader
// only ever misses intermediate refreshes, never the latest one.
func (d *Daemon) Updates() <-chan Refresh {
	return d.out
}

// SetRange points subsequent refreshes at a new visible range.
func (d *Daemon) SetRange(r schedule.TimeRange) {
	d.mu.Lock()
	d.current = r
	d.mu.Unlock()
}

// Start begins scheduled fetching. It returns an error only for an
// unparsable schedule spec. Stop via the context.
func (d *Daemon) Start(ctx context.Context) error {
	if _, err := d.cron.AddFunc(d.schedule, func() { d.refresh(ctx) }); err != nil {
		return err
	}
	d.cron.Start()

	go func() {
		<-ctx.Done()
		d.cron.Stop()
	}()

	return nil
}

func (d *Daemon) refresh(ctx context.Context) {
	if !d.client.Connected() {
		return
	}

	d.mu.Lock()
	r := d.current
	d.mu.Unlock()

	events, err := d.client.ListEvents(ctx, r.Padded(24*time.Hour))
	res := Refresh{Events: events, Err: err, At: time.Now()}

	// Replace a stale undelivered refresh instead of blocking.
	select {
	case d.out <- res:
	default:
		select {
		case <-d.out:
		default:
		}
		d.out <- res
	}
}
