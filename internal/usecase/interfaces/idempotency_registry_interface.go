package interfaces

import (
	"errors"
	"time"
)

var (
	// ErrAlreadyInProgress means another attempt for the same payment id is
	// currently in flight.
	ErrAlreadyInProgress = errors.New("payment id already in progress")
	// ErrAlreadyCompleted means an order was already created for this payment
	// id within the registry's retention window.
	ErrAlreadyCompleted = errors.New("payment id already completed")
	// ErrUnknownTicket means the ticket no longer matches a live record
	// (expired, superseded or never issued).
	ErrUnknownTicket = errors.New("unknown idempotency ticket")
)

// IdempotencyTicket is the handle for an in-flight claim on a payment id.
// Nonce ties the ticket to one specific attempt so a stale ticket cannot
// complete a newer claim on the same id.
type IdempotencyTicket struct {
	PaymentID string
	Nonce     uint64
}

// IIdempotencyRegistry tracks payment ids being processed or already
// processed, shared across every orchestration instance in the process.
//
// BeginAttempt is an atomic check-and-insert: for a given payment id the
// first caller wins, concurrent callers fail fast with ErrAlreadyInProgress,
// and callers arriving after completion get ErrAlreadyCompleted.

type IIdempotencyRegistry interface {
	BeginAttempt(paymentID string) (IdempotencyTicket, error)
	CompleteAttempt(ticket IdempotencyTicket) error
	ReleaseAfter(ticket IdempotencyTicket, d time.Duration)
}
