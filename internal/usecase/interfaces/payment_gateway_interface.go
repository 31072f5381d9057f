package interfaces

import (
	"context"
	"time"
)

const (
	ChargeStatusApproved = "approved"
	ChargeStatusDeclined = "declined"
)

// CardChargeRequest is the gateway-facing card charge input. The full card
// data never leaves this request; the adapter tokenizes it before charging.
type CardChargeRequest struct {
	Amount        float64
	Description   string
	Brand         string
	HolderName    string
	Number        string
	ExpiryMonth   string
	ExpiryYear    string
	CVV           string
	PayerEmail    string
	PayerDocument string
}

// CardChargeResult reports the provider decision. Transport/infrastructure
// failures come back as a Go error instead; a declined charge is not an error.
type CardChargeResult struct {
	TransactionID string
	Status        string
	Message       string
}

type PixChargeRequest struct {
	Amount        float64
	Description   string
	PayerEmail    string
	PayerName     string
	PayerDocument string
	ExpiresAt     time.Time
}

type PixChargeResult struct {
	TransactionID string
	Status        string
	QRCode        string
	CopyPasteCode string
}

// IPaymentGateway abstracts the external payment provider (Mercado Pago).

type IPaymentGateway interface {
	ChargeCard(ctx context.Context, req CardChargeRequest) (CardChargeResult, error)
	CreatePixCharge(ctx context.Context, req PixChargeRequest) (PixChargeResult, error)
}
