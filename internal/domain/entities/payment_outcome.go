package entities

// OutcomeStatus is the normalized status vocabulary for a payment attempt.
// Any external status string is normalized to this set before the rest of the
// pipeline sees it.

type OutcomeStatus string

const (
	OutcomeStatusPending      OutcomeStatus = "pending"
	OutcomeStatusConfirmed    OutcomeStatus = "confirmed"
	OutcomeStatusFailed       OutcomeStatus = "failed"
	OutcomeStatusManualReview OutcomeStatus = "manual_review"
)

// PaymentOutcome is the result of one payment submission. Produced once by
// the card/pix processors and consumed by the checkout orchestrator; expected
// failures travel in Status + ErrorMessage, never as a Go error.
type PaymentOutcome struct {
	PaymentID    string        `json:"payment_id"`
	Status       OutcomeStatus `json:"status"`
	Brand        string        `json:"brand,omitempty"`
	CardDetails  *CardDetails  `json:"card_details,omitempty"`
	PixDetails   *PixDetails   `json:"pix_details,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`

	// GatewayMessage keeps the raw provider message for internal logging.
	// Never shown to the buyer.
	GatewayMessage string `json:"-"`
}

// CheckoutSettings gates how card and PIX submissions are routed.
//
// ManualCardProcessing=true (or CardEnabled=false) sends every card payment
// to the manual-review path without contacting the gateway; ManualCardStatus
// is the provider-style status synthesized for those outcomes.
type CheckoutSettings struct {
	CardEnabled          bool
	ManualCardProcessing bool
	ManualCardStatus     string
	PixEnabled           bool
	PixExpirationMinutes int
	SandboxMode          bool
}
