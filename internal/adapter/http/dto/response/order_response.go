package response

import (
	"time"

	"loja_checkout/internal/domain/entities"
	"loja_checkout/internal/usecase"
)

type CardDetailsResponse struct {
	Brand        string `json:"brand"`
	MaskedNumber string `json:"masked_number"`
	HolderName   string `json:"holder_name"`
}

type PixDetailsResponse struct {
	QRCode        string     `json:"qr_code,omitempty"`
	CopyPasteCode string     `json:"copy_paste_code,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

type OrderResponse struct {
	ID            string               `json:"id"`
	PaymentID     string               `json:"payment_id"`
	ProductID     string               `json:"product_id"`
	PaymentMethod string               `json:"payment_method"`
	PaymentStatus string               `json:"payment_status"`
	Amount        float64              `json:"amount"`
	CustomerName  string               `json:"customer_name"`
	CustomerEmail string               `json:"customer_email"`
	CardDetails   *CardDetailsResponse `json:"card_details,omitempty"`
	PixDetails    *PixDetailsResponse  `json:"pix_details,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	res := OrderResponse{
		ID:            o.ID,
		PaymentID:     o.PaymentID,
		ProductID:     o.ProductID,
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		Amount:        o.Amount,
		CustomerName:  o.Customer.Name,
		CustomerEmail: o.Customer.Email,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if o.CardDetails != nil {
		res.CardDetails = &CardDetailsResponse{
			Brand:        o.CardDetails.Brand,
			MaskedNumber: o.CardDetails.MaskedNumber,
			HolderName:   o.CardDetails.HolderName,
		}
	}
	if o.PixDetails != nil {
		res.PixDetails = &PixDetailsResponse{
			QRCode:        o.PixDetails.QRCode,
			CopyPasteCode: o.PixDetails.CopyPasteCode,
		}
		if !o.PixDetails.ExpiresAt.IsZero() {
			expiresAt := o.PixDetails.ExpiresAt
			res.PixDetails.ExpiresAt = &expiresAt
		}
	}
	return res
}

// CheckoutResponse is the terminal state of a checkout submission: the
// normalized outcome, the user-facing status view and, on success, the
// created order plus the route the storefront should navigate to.
type CheckoutResponse struct {
	PaymentID   string              `json:"payment_id,omitempty"`
	Status      string              `json:"status"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Severity    string              `json:"severity"`
	Order       *OrderResponse      `json:"order,omitempty"`
	PixDetails  *PixDetailsResponse `json:"pix_details,omitempty"`
	RedirectTo  string              `json:"redirect_to,omitempty"`
}

func FromCheckoutResult(r usecase.CheckoutResult) CheckoutResponse {
	res := CheckoutResponse{
		PaymentID:   r.Outcome.PaymentID,
		Status:      string(r.View.Status),
		Title:       r.View.Title,
		Description: r.View.Description,
		Severity:    r.View.Severity,
		RedirectTo:  r.RedirectTo,
	}
	if r.Order != nil {
		order := FromOrder(*r.Order)
		res.Order = &order
		res.PixDetails = order.PixDetails
	}
	return res
}
