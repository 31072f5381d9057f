package entities

import "time"

// PaymentMethod identifies how the buyer paid for an order.

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "CARD"
	PaymentMethodPix  PaymentMethod = "PIX"
)

// OrderPaymentStatus is the persisted payment state of an order.
//
// Orders created from a confirmed gateway charge start as PAID; manual-review
// and PIX orders start as PENDING and are moved by the back office (or a
// gateway webhook, out of this service) through UpdateStatus.

type OrderPaymentStatus string

const (
	OrderPaymentStatusPending OrderPaymentStatus = "PENDING"
	OrderPaymentStatusPaid    OrderPaymentStatus = "PAID"
	OrderPaymentStatusFailed  OrderPaymentStatus = "FAILED"
)

// CardDetails is the displayable card summary stored with a card order.
// Only the masked number is ever persisted.
type CardDetails struct {
	Brand        string `json:"brand"`
	MaskedNumber string `json:"masked_number"`
	HolderName   string `json:"holder_name"`
}

// PixDetails carries the PIX charge data the buyer needs to complete payment.
type PixDetails struct {
	QRCode        string    `json:"qr_code,omitempty"`
	CopyPasteCode string    `json:"copy_paste_code,omitempty"`
	ExpiresAt     time.Time `json:"expires_at,omitempty"`
}

// Order is the persisted order entity.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (payment_id-index): payment_id
//
// PaymentID is the idempotency key: for a given payment id at most one order
// may exist. The repository enforces it with a conditional write on top of
// the in-process registry guard.

type Order struct {
	ID            string             `json:"id"`
	Customer      Customer           `json:"customer"`
	ProductID     string             `json:"product_id"`
	PaymentID     string             `json:"payment_id"`
	PaymentMethod PaymentMethod      `json:"payment_method"`
	PaymentStatus OrderPaymentStatus `json:"payment_status"`
	Amount        float64            `json:"amount"`
	CardDetails   *CardDetails       `json:"card_details,omitempty"`
	PixDetails    *PixDetails        `json:"pix_details,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}
