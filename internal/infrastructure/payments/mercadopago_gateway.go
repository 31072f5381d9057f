package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"loja_checkout/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/cardtoken"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway adapts the Mercado Pago SDK to the IPaymentGateway
// port. Card charges tokenize the card first; raw card data never reaches
// the payment create call.
//
// Requests are assembled as raw JSON and decoded into the SDK request types,
// keeping the adapter tolerant to schema drift between SDK versions.
type MercadoPagoGateway struct {
	payments payment.Client
	tokens   cardtoken.Client
	mockMode bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true}, nil
	}

	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	if strings.HasPrefix(strings.TrimSpace(accessToken), "TEST-") {
		log.Printf("[payment][gateway] sandbox credentials detected")
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		payments: payment.NewClient(cfg),
		tokens:   cardtoken.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) ChargeCard(ctx context.Context, req interfaces.CardChargeRequest) (interfaces.CardChargeResult, error) {
	if g != nil && g.mockMode {
		id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		log.Printf("[payment][gateway] mock card charge approved transaction_id=%s brand=%s amount=%.2f", id, req.Brand, req.Amount)
		return interfaces.CardChargeResult{
			TransactionID: id,
			Status:        interfaces.ChargeStatusApproved,
			Message:       "accredited",
		}, nil
	}

	if g == nil || g.payments == nil || g.tokens == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return interfaces.CardChargeResult{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] card charge start brand=%s amount=%.2f", req.Brand, req.Amount)

	tokenReq, err := decodePayload[cardtoken.Request](map[string]any{
		"card_number":      req.Number,
		"expiration_month": strings.TrimSpace(req.ExpiryMonth),
		"expiration_year":  expiryYearFull(req.ExpiryYear),
		"security_code":    req.CVV,
		"cardholder": map[string]any{
			"name": req.HolderName,
			"identification": map[string]any{
				"type":   "CPF",
				"number": req.PayerDocument,
			},
		},
	})
	if err != nil {
		return interfaces.CardChargeResult{}, err
	}

	token, err := g.tokens.Create(ctx, tokenReq)
	if err != nil {
		log.Printf("[payment][gateway] card tokenization failed err=%v", err)
		return interfaces.CardChargeResult{}, err
	}

	payReq, err := decodePayload[payment.Request](map[string]any{
		"transaction_amount": req.Amount,
		"description":        req.Description,
		"token":              token.ID,
		"installments":       1,
		"payment_method_id":  req.Brand,
		"payer": map[string]any{
			"email": req.PayerEmail,
			"identification": map[string]any{
				"type":   "CPF",
				"number": req.PayerDocument,
			},
		},
	})
	if err != nil {
		return interfaces.CardChargeResult{}, err
	}

	resp, err := g.payments.Create(ctx, payReq)
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed err=%v", err)
		return interfaces.CardChargeResult{}, err
	}
	log.Printf("[payment][gateway] card charge settled provider_payment_id=%d provider_status=%s detail=%s", resp.ID, resp.Status, resp.StatusDetail)

	result := interfaces.CardChargeResult{
		TransactionID: fmt.Sprintf("%d", resp.ID),
		Message:       resp.StatusDetail,
	}
	switch strings.ToLower(resp.Status) {
	case "approved":
		result.Status = interfaces.ChargeStatusApproved
	case "rejected", "cancelled":
		result.Status = interfaces.ChargeStatusDeclined
	default:
		result.Status = resp.Status
	}
	return result, nil
}

func (g *MercadoPagoGateway) CreatePixCharge(ctx context.Context, req interfaces.PixChargeRequest) (interfaces.PixChargeResult, error) {
	if g != nil && g.mockMode {
		id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		log.Printf("[payment][gateway] mock pix charge created transaction_id=%s amount=%.2f", id, req.Amount)
		return interfaces.PixChargeResult{
			TransactionID: id,
			Status:        "pending",
			QRCode:        "mock-qr-code-base64",
			CopyPasteCode: "00020126mockpixcopypaste" + id,
		}, nil
	}

	if g == nil || g.payments == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return interfaces.PixChargeResult{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] pix charge start amount=%.2f", req.Amount)

	payload := map[string]any{
		"transaction_amount": req.Amount,
		"description":        req.Description,
		"payment_method_id":  "pix",
		"payer": map[string]any{
			"email":      req.PayerEmail,
			"first_name": req.PayerName,
			"identification": map[string]any{
				"type":   "CPF",
				"number": req.PayerDocument,
			},
		},
	}
	if !req.ExpiresAt.IsZero() {
		payload["date_of_expiration"] = req.ExpiresAt.UTC().Format("2006-01-02T15:04:05.000-07:00")
	}
	payReq, err := decodePayload[payment.Request](payload)
	if err != nil {
		return interfaces.PixChargeResult{}, err
	}

	resp, err := g.payments.Create(ctx, payReq)
	if err != nil {
		log.Printf("[payment][gateway] sdk pix create failed err=%v", err)
		return interfaces.PixChargeResult{}, err
	}
	log.Printf("[payment][gateway] pix charge created provider_payment_id=%d provider_status=%s", resp.ID, resp.Status)

	return interfaces.PixChargeResult{
		TransactionID: fmt.Sprintf("%d", resp.ID),
		Status:        resp.Status,
		QRCode:        resp.PointOfInteraction.TransactionData.QRCodeBase64,
		CopyPasteCode: resp.PointOfInteraction.TransactionData.QRCode,
	}, nil
}

func decodePayload[T any](payload map[string]any) (T, error) {
	var out T
	b, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, err
	}
	return out, nil
}

// expiryYearFull widens the two-digit checkout year to the four digits the
// provider expects.
func expiryYearFull(yy string) string {
	yy = strings.TrimSpace(yy)
	if len(yy) == 2 {
		return "20" + yy
	}
	return yy
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
