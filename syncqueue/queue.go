// Package syncqueue propagates local mutations to the remote store with
// at-least-once delivery: operations are appended to a persistent log as
// they happen and flushed oldest-first when connectivity returns.
package syncqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/sprintnotes/sprintnotes/localstore"
	"github.com/sprintnotes/sprintnotes/models"
)

// ErrMissingEntityID is the only enqueue-time validation failure; payloads
// are opaque and stored verbatim.
var ErrMissingEntityID = errors.New("syncqueue: entity id is required")

// Deliverer hands one operation to the remote store. A nil error means the
// remote confirmed it; anything else leaves the operation pending.
type Deliverer interface {
	Deliver(ctx context.Context, op models.SyncOperation) error
}

type Queue struct {
	store  *localstore.Store
	remote Deliverer

	flushing atomic.Bool

	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	now         func() time.Time
}

type Option func(*Queue)

// WithMaxAttempts sets how many delivery failures park an operation on the
// dead-letter path.
func WithMaxAttempts(n int) Option {
	return func(q *Queue) { q.maxAttempts = n }
}

// WithBackoff sets the base and cap of the per-operation retry delay.
func WithBackoff(base, max time.Duration) Option {
	return func(q *Queue) { q.baseDelay = base; q.maxDelay = max }
}

// WithClock overrides the queue's clock. Tests use this to step through
// backoff windows.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

func New(store *localstore.Store, remote Deliverer, opts ...Option) *Queue {
	q := &Queue{
		store:       store,
		remote:      remote,
		maxAttempts: 8,
		baseDelay:   2 * time.Second,
		maxDelay:    5 * time.Minute,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue records a mutation intent. Local-only, always synchronous, never
// blocks on the network.
func (q *Queue) Enqueue(t models.OpType, entity models.EntityKind, entityID string, payload any) error {
	if entityID == "" {
		return ErrMissingEntityID
	}
	var data []byte
	switch p := payload.(type) {
	case nil:
	case []byte:
		data = p
	case json.RawMessage:
		data = p
	default:
		raw, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("syncqueue: encode payload: %w", err)
		}
		data = raw
	}
	now := q.now()
	op := models.SyncOperation{
		Type:          t,
		Entity:        entity,
		EntityID:      entityID,
		Data:          data,
		Timestamp:     now,
		NextAttemptAt: now,
	}
	return q.store.AppendOperation(&op)
}

// Record satisfies ordering.Recorder.
func (q *Queue) Record(t models.OpType, entity models.EntityKind, entityID string, payload any) error {
	return q.Enqueue(t, entity, entityID, payload)
}

// Pending returns the count behind the "N pending" indicator.
func (q *Queue) Pending() (int64, error) {
	return q.store.PendingCount()
}

// Abandoned surfaces the dead-letter log.
func (q *Queue) Abandoned() ([]models.SyncOperation, error) {
	return q.store.AbandonedOperations()
}

// Flushing reports whether a flush is currently in flight.
func (q *Queue) Flushing() bool {
	return q.flushing.Load()
}

// Flush delivers every eligible pending operation, oldest first. It is
// single-flight: a call that overlaps a running flush returns immediately
// without touching the log, because the next online transition will pick
// up whatever is left. Operations targeting the same entity are attempted
// strictly in enqueue order; a failure or backoff window on one blocks the
// rest of that entity's operations until the next flush, while other
// entities keep flowing.
func (q *Queue) Flush(ctx context.Context) error {
	if !q.flushing.CompareAndSwap(false, true) {
		return nil
	}
	defer q.flushing.Store(false)

	ops, err := q.store.PendingOperations()
	if err != nil {
		return err
	}

	blocked := make(map[string]bool)
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := string(op.Entity) + "/" + op.EntityID
		if blocked[key] {
			continue
		}
		if q.now().Before(op.NextAttemptAt) {
			blocked[key] = true
			continue
		}

		if err := q.remote.Deliver(ctx, op); err != nil {
			blocked[key] = true
			attempts := op.Attempts + 1
			if attempts >= q.maxAttempts {
				log.Printf("syncqueue: abandoning op %d (%s %s %s) after %d attempts: %v",
					op.ID, op.Type, op.Entity, op.EntityID, attempts, err)
				if dbErr := q.store.AbandonOperation(op.ID, err.Error()); dbErr != nil {
					return dbErr
				}
				if dbErr := q.store.SetEntitySyncStatus(op.Entity, op.EntityID, models.SyncStatusConflict); dbErr != nil {
					return dbErr
				}
				continue
			}
			next := q.now().Add(q.backoff(attempts))
			if dbErr := q.store.RecordFailure(op.ID, err.Error(), attempts, next); dbErr != nil {
				return dbErr
			}
			continue
		}

		if err := q.store.SettleOperation(op.ID); err != nil {
			return err
		}
		if err := q.store.SetEntitySyncStatus(op.Entity, op.EntityID, models.SyncStatusSynced); err != nil {
			return err
		}
	}
	return nil
}

// backoff returns the delay before attempt n+1: capped exponential with
// half-width jitter so a flapping connection doesn't line every retry up.
func (q *Queue) backoff(attempts int) time.Duration {
	d := q.baseDelay
	for i := 1; i < attempts && d < q.maxDelay; i++ {
		d *= 2
	}
	if d > q.maxDelay {
		d = q.maxDelay
	}
	half := d / 2
	return half + time.Duration(rand.Int63n(int64(half)+1))
}

// Run flushes whenever the connectivity signal reports an offline-to-online
// edge and work is pending. It returns when ctx is cancelled or the signal
// channel closes.
func (q *Queue) Run(ctx context.Context, online <-chan bool) {
	for {
		select {
		case <-ctx.Done():
			return
		case up, ok := <-online:
			if !ok {
				return
			}
			if !up {
				continue
			}
			n, err := q.Pending()
			if err != nil {
				log.Printf("syncqueue: pending count: %v", err)
				continue
			}
			if n == 0 {
				continue
			}
			if err := q.Flush(ctx); err != nil {
				log.Printf("syncqueue: flush: %v", err)
			}
		}
	}
}
