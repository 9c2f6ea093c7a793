package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clinicore/account-system/internal/core/domain"
	"github.com/clinicore/account-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher decouples audit writes from request handling: entries are fanned
// out to a fixed set of workers, sharded by target id so a single account's
// trail keeps its order. It satisfies ports.AuditRecorder, so the
// orchestrator never blocks on the audit sink.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	sink    ports.AuditRecorder
	log     zerolog.Logger
}

var _ ports.AuditRecorder = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers writing
// to sink. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.AuditRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry for its shard. The call is non-blocking up to
// channelBuffer capacity.
func (d *Dispatcher) Record(_ context.Context, entry domain.AuditEntry) error {
	d.workers[d.shardIndex(entry.TargetID)] <- entry
	return nil
}

// shardIndex maps a target id deterministically to a worker index.
func (d *Dispatcher) shardIndex(targetID int64) int {
	if targetID < 0 {
		targetID = -targetID
	}
	return int(targetID) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.Record(ctx, entry); err != nil {
				d.log.Error().Err(err).
					Str("action", entry.Action).
					Int("worker_id", id).
					Msg("audit write failed")
			}
		}
	}
}
