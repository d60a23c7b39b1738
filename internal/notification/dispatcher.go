// Package notification delivers best-effort notifications to users.
//
// A Dispatcher receives a batch (one notification kind, many recipients)
// after the triggering state change has committed and delivers it in the
// background: one attempt per recipient, independent of every other
// recipient, bounded in concurrency and time. Failures are logged and never
// reported back to the caller.
package notification

import (
	"context"
	"log"
	"sync"
	"time"

	"hostelcare/backend/internal/models"

	"golang.org/x/sync/errgroup"
)

// Payload is the recipient-independent part of a notification.
type Payload struct {
	SenderID    string
	Title       string
	Message     string
	RelatedID   string
	RelatedKind string
}

// Sink performs a single delivery attempt.
type Sink interface {
	Deliver(ctx context.Context, n *models.Notification) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, n *models.Notification) error

func (f SinkFunc) Deliver(ctx context.Context, n *models.Notification) error {
	return f(ctx, n)
}

type Dispatcher struct {
	sink        Sink
	timeout     time.Duration
	concurrency int

	// mu guards stopped and orders wg.Add before wg.Wait.
	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher delivering through sink with at most
// concurrency attempts in flight per batch, each limited to timeout.
func NewDispatcher(sink Sink, timeout time.Duration, concurrency int) *Dispatcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Dispatcher{sink: sink, timeout: timeout, concurrency: concurrency}
}

// Notify schedules delivery of a kind notification to every recipient and
// returns immediately. Empty and repeated recipient ids are skipped.
// Cancellation of ctx does not stop delivery. Batches arriving after Wait
// was called are dropped.
func (d *Dispatcher) Notify(ctx context.Context, kind string, recipients []string, p Payload) {
	batch := buildBatch(kind, recipients, p)
	if len(batch) == 0 {
		return
	}

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		log.Printf("WARN: Dispatcher stopped, dropping %s notification for %d recipients (%s %s)", kind, len(batch), p.RelatedKind, p.RelatedID)
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	go func() {
		defer d.wg.Done()

		var g errgroup.Group
		g.SetLimit(d.concurrency)
		for i := range batch {
			n := &batch[i]
			g.Go(func() error {
				d.deliver(ctx, n)
				return nil
			})
		}
		_ = g.Wait()
	}()
}

// Wait stops accepting new batches and blocks until every scheduled batch
// has been attempted.
func (d *Dispatcher) Wait() {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, n *models.Notification) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: Notification sink panicked for recipient %s (%s %s): %v", n.RecipientID, n.RelatedKind, n.RelatedID, r)
		}
	}()

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := d.sink.Deliver(ctx, n); err != nil {
		log.Printf("ERROR: Failed to deliver %s notification to %s (%s %s): %v", n.Type, n.RecipientID, n.RelatedKind, n.RelatedID, err)
	}
}

func buildBatch(kind string, recipients []string, p Payload) []models.Notification {
	seen := make(map[string]struct{}, len(recipients))
	batch := make([]models.Notification, 0, len(recipients))
	for _, r := range recipients {
		if r == "" {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		batch = append(batch, models.Notification{
			RecipientID: r,
			SenderID:    p.SenderID,
			Type:        kind,
			Title:       p.Title,
			Message:     p.Message,
			RelatedID:   p.RelatedID,
			RelatedKind: p.RelatedKind,
		})
	}
	return batch
}
