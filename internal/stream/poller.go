package stream

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ron-Caster/POP-Messenger/internal/models"
)

// Store is the slice of the message store the poller needs.
type Store interface {
	Since(viewer string, afterID uint) ([]models.Message, error)
}

// Event is one server-pushed message as seen on the wire.
type Event struct {
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// EmitFunc pushes one event to the client. Returning false closes the
// stream (client gone or write failed).
type EmitFunc func(Event) bool

// Poller runs the per-connection live update loop. One Poller is shared
// by all connections; Run carries the per-connection state.
type Poller struct {
	store      Store
	notifier   *Notifier
	interval   time.Duration
	backoff    time.Duration
	maxRetries int
	log        *slog.Logger
}

func NewPoller(store Store, notifier *Notifier, interval, backoff time.Duration, maxRetries int, log *slog.Logger) *Poller {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	if backoff <= 0 {
		backoff = time.Second
	}
	if maxRetries <= 0 {
		maxRetries = 10
	}
	if log == nil {
		log = slog.Default()
	}
	return &Poller{
		store:      store,
		notifier:   notifier,
		interval:   interval,
		backoff:    backoff,
		maxRetries: maxRetries,
		log:        log,
	}
}

// Run polls the store for messages addressed to or from viewer and emits
// each one in (created_at, id) order, advancing past a message only
// after it was emitted. Delivery is therefore at-least-once and in-order
// per connection.
//
// The loop ends when ctx is cancelled (client disconnect), when emit
// returns false, or after maxRetries consecutive store failures. Store
// failures short of the cap are logged and retried after a backoff;
// success resets the failure count.
func (p *Poller) Run(ctx context.Context, viewer string, emit EmitFunc) error {
	var wake <-chan struct{}
	if p.notifier != nil {
		ch, cancel := p.notifier.Subscribe()
		defer cancel()
		wake = ch
	}

	var lastID uint
	failures := 0

	for {
		msgs, err := p.store.Since(viewer, lastID)
		if err != nil {
			failures++
			if failures >= p.maxRetries {
				p.log.Error("stream poll giving up",
					"viewer", viewer, "failures", failures, "err", err)
				return fmt.Errorf("poll messages for %s: %w", viewer, err)
			}
			p.log.Warn("stream poll failed, retrying",
				"viewer", viewer, "failures", failures, "err", err)
			if !sleep(ctx, p.backoff) {
				return nil
			}
			continue
		}
		failures = 0

		for _, m := range msgs {
			ok := emit(Event{
				Sender:    m.Sender,
				Receiver:  m.Receiver,
				Message:   m.Body,
				Timestamp: m.CreatedAt,
			})
			if !ok {
				return nil
			}
			lastID = m.ID
		}

		// wait for the next tick, or earlier if the store signals an
		// append, or stop on disconnect
		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		case <-wake:
			timer.Stop()
		}
	}
}

// sleep waits d or until ctx is cancelled; false means cancelled.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
