package usecase

import (
	"context"
	"log"

	"loja_checkout/internal/domain/card"
	"loja_checkout/internal/domain/entities"
	"loja_checkout/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// Buyer-facing messages. Raw gateway errors stay in the logs.
const (
	MsgPaymentRetry    = "We could not process your payment. Please try again."
	MsgPaymentDeclined = "Payment declined by the card issuer. Check the card data or use another card."
	MsgCardUnavailable = "Card payment is currently unavailable."
)

// CheckoutContext carries the submission-scoped data the processor needs
// beyond the card itself.
type CheckoutContext struct {
	Amount        float64
	Description   string
	PayerEmail    string
	PayerDocument string
	Settings      entities.CheckoutSettings
}

// ICardPaymentProcessor validates card input and routes it to automatic
// (gateway) or manual (merchant review) processing. Expected failures are
// reported through the outcome, never as an error.

type ICardPaymentProcessor interface {
	ProcessCardPayment(ctx context.Context, data entities.CardData, cctx CheckoutContext) entities.PaymentOutcome
}

type CardPaymentProcessor struct {
	gateway interfaces.IPaymentGateway
}

var _ ICardPaymentProcessor = (*CardPaymentProcessor)(nil)

func NewCardPaymentProcessor(gateway interfaces.IPaymentGateway) *CardPaymentProcessor {
	return &CardPaymentProcessor{gateway: gateway}
}

// ProcessCardPayment runs one submission through the state machine:
// validating -> routing -> manual review | automatic -> completed/failed.
//
// Routing: manualCardProcessing=true or card payments disabled sends the
// submission to manual review and the gateway is never contacted.
func (p *CardPaymentProcessor) ProcessCardPayment(ctx context.Context, data entities.CardData, cctx CheckoutContext) entities.PaymentOutcome {
	if ferr := card.Validate(data); ferr != nil {
		log.Printf("[card][usecase] validation failed field=%s", ferr.Field)
		return entities.PaymentOutcome{
			Status:       entities.OutcomeStatusFailed,
			ErrorMessage: ferr.Message,
		}
	}

	brand := card.DetectBrand(data.Number)
	details := &entities.CardDetails{
		Brand:        brand,
		MaskedNumber: card.MaskNumber(data.Number),
		HolderName:   data.HolderName,
	}

	if cctx.Settings.ManualCardProcessing || !cctx.Settings.CardEnabled {
		return p.manualReviewOutcome(cctx.Settings, brand, details)
	}
	return p.automaticOutcome(ctx, data, cctx, brand, details)
}

// manualReviewOutcome synthesizes an outcome without contacting the gateway.
// The payment id is generated locally; a back-office operator confirms the
// payment out of band.
func (p *CardPaymentProcessor) manualReviewOutcome(settings entities.CheckoutSettings, brand string, details *entities.CardDetails) entities.PaymentOutcome {
	status := entities.OutcomeStatusManualReview
	if settings.ManualCardStatus != "" {
		status = NormalizePaymentStatus(settings.ManualCardStatus)
	}
	paymentID := uuid.NewString()
	log.Printf("[card][usecase] routed to manual review payment_id=%s brand=%s status=%s", paymentID, brand, status)
	return entities.PaymentOutcome{
		PaymentID:   paymentID,
		Status:      status,
		Brand:       brand,
		CardDetails: details,
	}
}

func (p *CardPaymentProcessor) automaticOutcome(ctx context.Context, data entities.CardData, cctx CheckoutContext, brand string, details *entities.CardDetails) entities.PaymentOutcome {
	if p.gateway == nil {
		log.Printf("[card][usecase] gateway not configured")
		return entities.PaymentOutcome{
			Status:       entities.OutcomeStatusFailed,
			Brand:        brand,
			ErrorMessage: MsgCardUnavailable,
		}
	}

	result, err := p.gateway.ChargeCard(ctx, interfaces.CardChargeRequest{
		Amount:        cctx.Amount,
		Description:   cctx.Description,
		Brand:         brand,
		HolderName:    data.HolderName,
		Number:        card.OnlyDigits(data.Number),
		ExpiryMonth:   data.ExpiryMonth,
		ExpiryYear:    data.ExpiryYear,
		CVV:           data.CVV,
		PayerEmail:    cctx.PayerEmail,
		PayerDocument: card.OnlyDigits(cctx.PayerDocument),
	})
	if err != nil {
		log.Printf("[card][usecase] gateway charge failed brand=%s err=%v", brand, err)
		return entities.PaymentOutcome{
			Status:         entities.OutcomeStatusFailed,
			Brand:          brand,
			ErrorMessage:   MsgPaymentRetry,
			GatewayMessage: err.Error(),
		}
	}

	log.Printf("[card][usecase] gateway charge settled transaction_id=%s status=%s", result.TransactionID, result.Status)
	switch result.Status {
	case interfaces.ChargeStatusApproved:
		return entities.PaymentOutcome{
			PaymentID:   result.TransactionID,
			Status:      entities.OutcomeStatusConfirmed,
			Brand:       brand,
			CardDetails: details,
		}
	case interfaces.ChargeStatusDeclined:
		return entities.PaymentOutcome{
			PaymentID:      result.TransactionID,
			Status:         entities.OutcomeStatusFailed,
			Brand:          brand,
			ErrorMessage:   MsgPaymentDeclined,
			GatewayMessage: result.Message,
		}
	default:
		// Providers occasionally answer with an in-between state even on the
		// synchronous path; keep the order pending rather than failing it.
		return entities.PaymentOutcome{
			PaymentID:      result.TransactionID,
			Status:         NormalizePaymentStatus(result.Status),
			Brand:          brand,
			CardDetails:    details,
			GatewayMessage: result.Message,
		}
	}
}
