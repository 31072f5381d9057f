package usecase

import (
	"strings"

	"loja_checkout/internal/domain/entities"
)

// NormalizePaymentStatus maps any provider status string onto the internal
// vocabulary. Matching is case-insensitive; unrecognized values default to
// pending so an unknown provider state never fails or confirms an order.
func NormalizePaymentStatus(raw string) entities.OutcomeStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "approved", "confirmed", "accredited", "paid":
		return entities.OutcomeStatusConfirmed
	case "rejected", "declined", "failed", "cancelled", "charged_back":
		return entities.OutcomeStatusFailed
	case "manual_review", "in_analysis", "analysis", "in_mediation":
		return entities.OutcomeStatusManualReview
	default:
		return entities.OutcomeStatusPending
	}
}

// OrderStatusForOutcome derives the persisted order status from a payment
// outcome: only a confirmed charge produces a PAID order, everything else
// that still warrants an order starts as PENDING.
func OrderStatusForOutcome(status entities.OutcomeStatus) entities.OrderPaymentStatus {
	if status == entities.OutcomeStatusConfirmed {
		return entities.OrderPaymentStatusPaid
	}
	return entities.OrderPaymentStatusPending
}

// StatusView is the user-facing rendering of a payment outcome. It drives
// both the HTTP response and the buyer notification.
type StatusView struct {
	Status      entities.OutcomeStatus `json:"status"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Severity    string                 `json:"severity"`
}

// ResolveStatusView derives the terminal screen for an outcome.
func ResolveStatusView(outcome entities.PaymentOutcome) StatusView {
	switch outcome.Status {
	case entities.OutcomeStatusConfirmed:
		return StatusView{
			Status:      outcome.Status,
			Title:       "Payment approved",
			Description: "Your payment was approved and your order is confirmed.",
			Severity:    "success",
		}
	case entities.OutcomeStatusManualReview:
		return StatusView{
			Status:      outcome.Status,
			Title:       "Payment under review",
			Description: "Your payment was received and is being reviewed. You will be notified once it is confirmed.",
			Severity:    "info",
		}
	case entities.OutcomeStatusFailed:
		msg := outcome.ErrorMessage
		if msg == "" {
			msg = MsgPaymentRetry
		}
		return StatusView{
			Status:      outcome.Status,
			Title:       "Payment failed",
			Description: msg,
			Severity:    "error",
		}
	default:
		return StatusView{
			Status:      entities.OutcomeStatusPending,
			Title:       "Payment pending",
			Description: "Your payment is pending confirmation.",
			Severity:    "info",
		}
	}
}
