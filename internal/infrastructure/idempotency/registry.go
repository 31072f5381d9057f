package idempotency

import (
	"log"
	"sync"
	"time"

	"loja_checkout/internal/usecase/interfaces"
)

const (
	// DefaultBusyTimeout bounds how long an in-flight claim can block other
	// attempts when its owner never signals completion.
	DefaultBusyTimeout = 30 * time.Second
	// DefaultReleaseGrace is how long an uncompleted claim lingers after the
	// attempt settles, absorbing trailing concurrent submissions.
	DefaultReleaseGrace = 1500 * time.Millisecond
)

type stage int

const (
	stageInFlight stage = iota
	stageCompleted
)

type record struct {
	stage      stage
	nonce      uint64
	insertedAt time.Time
	expiresAt  time.Time
}

// Registry is the process-wide payment-id tracking table. One instance is
// shared by every orchestration flow; the at-most-one-order invariant must
// hold system-wide, not per component.
//
// Completed records are retained for the process lifetime so a remounted or
// retried flow cannot recreate an order for an id that already produced one.
// In-flight records expire after the busy timeout as a safety net against a
// caller that crashed without completing or releasing its ticket.
type Registry struct {
	mu      sync.Mutex
	records map[string]*record

	nonce       uint64
	busyTimeout time.Duration
	now         func() time.Time
}

var _ interfaces.IIdempotencyRegistry = (*Registry)(nil)

func NewRegistry() *Registry {
	return NewRegistryWithTimeout(DefaultBusyTimeout)
}

func NewRegistryWithTimeout(busyTimeout time.Duration) *Registry {
	if busyTimeout <= 0 {
		busyTimeout = DefaultBusyTimeout
	}
	return &Registry{
		records:     make(map[string]*record),
		busyTimeout: busyTimeout,
		now:         time.Now,
	}
}

// BeginAttempt claims a payment id. The duplicate check and the insert run
// under one lock acquisition: between them there is no suspension point, so
// for any payment id the first caller wins and every interleaved caller
// fails fast.
func (r *Registry) BeginAttempt(paymentID string) (interfaces.IdempotencyTicket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if rec, ok := r.records[paymentID]; ok {
		switch {
		case rec.stage == stageCompleted:
			return interfaces.IdempotencyTicket{}, interfaces.ErrAlreadyCompleted
		case now.Before(rec.expiresAt):
			return interfaces.IdempotencyTicket{}, interfaces.ErrAlreadyInProgress
		default:
			// Busy timeout elapsed without completion; the claim is stale
			// and may be taken over.
			log.Printf("[idempotency][registry] reclaiming stale in-flight record payment_id=%s age=%s", paymentID, now.Sub(rec.insertedAt))
		}
	}

	r.nonce++
	r.records[paymentID] = &record{
		stage:      stageInFlight,
		nonce:      r.nonce,
		insertedAt: now,
		expiresAt:  now.Add(r.busyTimeout),
	}
	return interfaces.IdempotencyTicket{PaymentID: paymentID, Nonce: r.nonce}, nil
}

// CompleteAttempt marks the claim as completed. The record is retained, not
// deleted: later attempts with the same payment id must see
// ErrAlreadyCompleted even from unrelated orchestration instances.
func (r *Registry) CompleteAttempt(ticket interfaces.IdempotencyTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[ticket.PaymentID]
	if !ok || rec.nonce != ticket.Nonce || rec.stage != stageInFlight {
		return interfaces.ErrUnknownTicket
	}
	rec.stage = stageCompleted
	return nil
}

// ReleaseAfter clears the claim after the grace period if it is still in
// flight by then. Completed records are left alone. Callers schedule it on
// every exit path; on the success path it is a no-op by the time it fires.
func (r *Registry) ReleaseAfter(ticket interfaces.IdempotencyTicket, d time.Duration) {
	if d <= 0 {
		d = DefaultReleaseGrace
	}
	time.AfterFunc(d, func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		rec, ok := r.records[ticket.PaymentID]
		if !ok || rec.nonce != ticket.Nonce || rec.stage != stageInFlight {
			return
		}
		delete(r.records, ticket.PaymentID)
	})
}

// Len reports how many records the registry currently holds.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
