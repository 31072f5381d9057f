package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"loja_checkout/internal/domain/card"
	"loja_checkout/internal/domain/entities"
	"loja_checkout/internal/usecase/interfaces"
)

var (
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrProductNotFound      = errors.New("product not found")
	ErrPixDisabled          = errors.New("pix payments are disabled")
)

// CheckoutSession is the per-buyer submission state. It survives across
// requests of the same checkout flow (held by the caller, passed by pointer)
// so a rapid resubmission is caught before any work starts.
type CheckoutSession struct {
	mu         sync.Mutex
	submitting bool
}

func (s *CheckoutSession) beginSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return false
	}
	s.submitting = true
	return true
}

func (s *CheckoutSession) endSubmit() {
	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
}

// Submitting reports whether a submission is currently in flight.
func (s *CheckoutSession) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// CheckoutResult is the terminal state of one submission.
type CheckoutResult struct {
	Order      *entities.Order        `json:"order,omitempty"`
	Outcome    entities.PaymentOutcome `json:"outcome"`
	View       StatusView             `json:"view"`
	RedirectTo string                 `json:"redirect_to,omitempty"`
}

// ICheckoutUseCase drives one checkout submission end to end: payment
// processing, order creation (exactly once per payment id) and notification.

type ICheckoutUseCase interface {
	SubmitCard(ctx context.Context, session *CheckoutSession, productRef string, customer entities.Customer, data entities.CardData) (CheckoutResult, error)
	SubmitPix(ctx context.Context, session *CheckoutSession, productRef string, customer entities.Customer, data entities.PixData) (CheckoutResult, error)
}

type CheckoutUseCase struct {
	products      interfaces.IProductRepository
	gateway       interfaces.IPaymentGateway
	cardProcessor ICardPaymentProcessor
	orders        IOrderUseCase
	notifier      interfaces.INotifier
	settings      entities.CheckoutSettings

	// onPaymentComplete, when set, is invoked with the freshly created order
	// after a successful submission.
	onPaymentComplete func(order entities.Order)
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(
	products interfaces.IProductRepository,
	gateway interfaces.IPaymentGateway,
	cardProcessor ICardPaymentProcessor,
	orders IOrderUseCase,
	notifier interfaces.INotifier,
	settings entities.CheckoutSettings,
	onPaymentComplete func(order entities.Order),
) *CheckoutUseCase {
	return &CheckoutUseCase{
		products:          products,
		gateway:           gateway,
		cardProcessor:     cardProcessor,
		orders:            orders,
		notifier:          notifier,
		settings:          settings,
		onPaymentComplete: onPaymentComplete,
	}
}

// SubmitCard handles one card form submission.
//
// The session flag is reset on every exit path, including panics: anything
// unexpected below this boundary is converted into a generic failed outcome
// instead of a 500 with a wedged session.
func (u *CheckoutUseCase) SubmitCard(ctx context.Context, session *CheckoutSession, productRef string, customer entities.Customer, data entities.CardData) (result CheckoutResult, err error) {
	if session == nil {
		session = &CheckoutSession{}
	}
	if !session.beginSubmit() {
		log.Printf("[checkout][usecase] card submission suppressed, session busy")
		return CheckoutResult{}, ErrSubmissionInProgress
	}
	defer session.endSubmit()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[checkout][usecase] panic recovered during card submission: %v", r)
			result = u.failedResult(ctx, MsgPaymentRetry)
			err = nil
		}
	}()

	product, err := u.resolveProduct(ctx, productRef)
	if err != nil {
		return CheckoutResult{}, err
	}

	outcome := u.cardProcessor.ProcessCardPayment(ctx, data, CheckoutContext{
		Amount:        product.Price,
		Description:   product.Name,
		PayerEmail:    customer.Email,
		PayerDocument: customer.Document,
		Settings:      u.settings,
	})
	if outcome.Status == entities.OutcomeStatusFailed {
		if outcome.GatewayMessage != "" {
			log.Printf("[checkout][usecase] card payment failed gateway_message=%q", outcome.GatewayMessage)
		}
		view := ResolveStatusView(outcome)
		u.notify(ctx, view, outcome.PaymentID)
		return CheckoutResult{Outcome: outcome, View: view}, nil
	}

	return u.finishSubmission(ctx, product, customer, outcome, entities.PaymentMethodCard)
}

// SubmitPix creates a PIX charge and the matching pending order.
func (u *CheckoutUseCase) SubmitPix(ctx context.Context, session *CheckoutSession, productRef string, customer entities.Customer, data entities.PixData) (result CheckoutResult, err error) {
	if session == nil {
		session = &CheckoutSession{}
	}
	if !session.beginSubmit() {
		log.Printf("[checkout][usecase] pix submission suppressed, session busy")
		return CheckoutResult{}, ErrSubmissionInProgress
	}
	defer session.endSubmit()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[checkout][usecase] panic recovered during pix submission: %v", r)
			result = u.failedResult(ctx, MsgPaymentRetry)
			err = nil
		}
	}()

	if !u.settings.PixEnabled {
		return CheckoutResult{}, ErrPixDisabled
	}
	if u.gateway == nil {
		return u.failedResult(ctx, MsgPaymentRetry), nil
	}

	product, err := u.resolveProduct(ctx, productRef)
	if err != nil {
		return CheckoutResult{}, err
	}

	payerName := strings.TrimSpace(data.PayerName)
	if payerName == "" {
		payerName = customer.Name
	}
	payerDocument := data.PayerDocument
	if card.OnlyDigits(payerDocument) == "" {
		payerDocument = customer.Document
	}

	expiration := time.Duration(u.settings.PixExpirationMinutes) * time.Minute
	if expiration <= 0 {
		expiration = 30 * time.Minute
	}
	charge, err := u.gateway.CreatePixCharge(ctx, interfaces.PixChargeRequest{
		Amount:        product.Price,
		Description:   product.Name,
		PayerEmail:    customer.Email,
		PayerName:     payerName,
		PayerDocument: card.OnlyDigits(payerDocument),
		ExpiresAt:     time.Now().UTC().Add(expiration),
	})
	if err != nil {
		log.Printf("[checkout][usecase] pix charge failed err=%v", err)
		return u.failedResult(ctx, MsgPaymentRetry), nil
	}

	outcome := entities.PaymentOutcome{
		PaymentID: charge.TransactionID,
		Status:    NormalizePaymentStatus(charge.Status),
		PixDetails: &entities.PixDetails{
			QRCode:        charge.QRCode,
			CopyPasteCode: charge.CopyPasteCode,
			ExpiresAt:     time.Now().UTC().Add(expiration),
		},
	}
	if outcome.Status == entities.OutcomeStatusConfirmed {
		// A PIX charge is never synchronously confirmed; guard against a
		// provider quirk by keeping the order pending until settlement.
		outcome.Status = entities.OutcomeStatusPending
	}

	return u.finishSubmission(ctx, product, customer, outcome, entities.PaymentMethodPix)
}

// finishSubmission drives order creation exactly once per payment id and
// shapes the terminal result.
func (u *CheckoutUseCase) finishSubmission(ctx context.Context, product entities.Product, customer entities.Customer, outcome entities.PaymentOutcome, method entities.PaymentMethod) (CheckoutResult, error) {
	order, err := u.orders.CreateOrder(ctx, CreateOrderInput{
		PaymentID:     outcome.PaymentID,
		Status:        OrderStatusForOutcome(outcome.Status),
		Customer:      customer,
		Product:       product,
		PaymentMethod: method,
		CardDetails:   outcome.CardDetails,
		PixDetails:    outcome.PixDetails,
	})
	if err != nil {
		if IsDuplicatePayment(err) {
			// Expected concurrency artifact: another submission for the same
			// payment id got there first. Not a buyer-facing failure.
			log.Printf("[checkout][usecase] duplicate order creation suppressed payment_id=%s err=%v", outcome.PaymentID, err)
			view := ResolveStatusView(outcome)
			return CheckoutResult{Outcome: outcome, View: view, RedirectTo: paymentStatusRoute(outcome.PaymentID)}, nil
		}
		var ferr *CustomerFieldError
		if errors.As(err, &ferr) {
			return CheckoutResult{}, err
		}
		// Possibly a charged payment without a persisted order; flag it loudly
		// for reconciliation.
		log.Printf("[checkout][usecase] order creation failed after payment payment_id=%s status=%s err=%v", outcome.PaymentID, outcome.Status, err)
		u.notify(ctx, StatusView{
			Title:       "Order persistence failure",
			Description: fmt.Sprintf("Payment %s settled as %s but the order could not be persisted.", outcome.PaymentID, outcome.Status),
			Severity:    interfaces.NotificationSeverityError,
		}, outcome.PaymentID)
		return CheckoutResult{}, err
	}

	view := ResolveStatusView(outcome)
	u.notify(ctx, view, outcome.PaymentID)
	if u.onPaymentComplete != nil {
		u.onPaymentComplete(order)
	}
	return CheckoutResult{
		Order:      &order,
		Outcome:    outcome,
		View:       view,
		RedirectTo: paymentStatusRoute(order.PaymentID),
	}, nil
}

func (u *CheckoutUseCase) resolveProduct(ctx context.Context, ref string) (entities.Product, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return entities.Product{}, ErrProductNotFound
	}
	if p, err := u.products.GetBySlug(ctx, ref); err == nil && p.ID != "" {
		return p, nil
	}
	p, err := u.products.GetByID(ctx, ref)
	if err != nil {
		return entities.Product{}, err
	}
	if p.ID == "" {
		return entities.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (u *CheckoutUseCase) failedResult(ctx context.Context, message string) CheckoutResult {
	outcome := entities.PaymentOutcome{
		Status:       entities.OutcomeStatusFailed,
		ErrorMessage: message,
	}
	view := ResolveStatusView(outcome)
	u.notify(ctx, view, "")
	return CheckoutResult{Outcome: outcome, View: view}
}

func (u *CheckoutUseCase) notify(ctx context.Context, view StatusView, paymentID string) {
	if u.notifier == nil {
		return
	}
	n := interfaces.Notification{
		Title:       view.Title,
		Description: view.Description,
		Severity:    view.Severity,
		Duration:    5 * time.Second,
	}
	if paymentID != "" {
		n.Metadata = map[string]string{"payment_id": paymentID}
	}
	u.notifier.Notify(ctx, n)
}

func paymentStatusRoute(paymentID string) string {
	return "/v1/orders/payment/" + paymentID
}
