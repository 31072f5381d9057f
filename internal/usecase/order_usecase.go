package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"loja_checkout/internal/domain/card"
	"loja_checkout/internal/domain/entities"
	"loja_checkout/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidPaymentID   = errors.New("invalid payment id")
	ErrInvalidOrderID     = errors.New("invalid order id")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidMethod      = errors.New("invalid payment method")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderPersistence   = errors.New("order persistence failed")
)

// CustomerFieldError reports the first customer field that failed
// validation. Fail-fast: one field per error, never an accumulated list.
type CustomerFieldError struct {
	Field   string
	Message string
}

func (e *CustomerFieldError) Error() string { return e.Field + ": " + e.Message }

// IsDuplicatePayment reports whether err is the expected concurrency
// artifact of a payment id that is already claimed or already produced an
// order. Callers suppress these instead of surfacing them to the buyer.
func IsDuplicatePayment(err error) bool {
	return errors.Is(err, interfaces.ErrAlreadyInProgress) || errors.Is(err, interfaces.ErrAlreadyCompleted)
}

// CreateOrderInput carries everything needed to persist one order for one
// payment id.
type CreateOrderInput struct {
	PaymentID     string
	Status        entities.OrderPaymentStatus
	Customer      entities.Customer
	Product       entities.Product
	PaymentMethod entities.PaymentMethod
	CardDetails   *entities.CardDetails
	PixDetails    *entities.PixDetails

	// OnCompleted, when set, is invoked after the order is resolved. The
	// second argument distinguishes a freshly created order from one that
	// already existed for this payment id.
	OnCompleted func(order entities.Order, created bool)
}

// IOrderUseCase exposes order creation plus the order-store maintenance
// operations used by the back office.

type IOrderUseCase interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	GetByPaymentID(ctx context.Context, paymentID string) (entities.Order, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderPaymentStatus) (entities.Order, error)
	Delete(ctx context.Context, id string) error
	DeleteByMethod(ctx context.Context, method entities.PaymentMethod) error
}

type OrderUseCase struct {
	repo         interfaces.IOrderRepository
	registry     interfaces.IIdempotencyRegistry
	notifier     interfaces.INotifier
	releaseGrace time.Duration
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(repo interfaces.IOrderRepository, registry interfaces.IIdempotencyRegistry, notifier interfaces.INotifier, releaseGrace time.Duration) *OrderUseCase {
	return &OrderUseCase{repo: repo, registry: registry, notifier: notifier, releaseGrace: releaseGrace}
}

// CreateOrder persists at most one order for the input's payment id.
//
// The registry claim happens before anything else; a duplicate claim returns
// immediately without touching the store. The claim is released on a grace
// timer on every exit path, win or lose, so a failed attempt frees the id
// and a crashed one cannot wedge the registry.
func (u *OrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (entities.Order, error) {
	paymentID := strings.TrimSpace(input.PaymentID)
	log.Printf("[order][usecase] create start payment_id=%s method=%s", paymentID, input.PaymentMethod)
	if paymentID == "" {
		return entities.Order{}, ErrInvalidPaymentID
	}
	if u.repo == nil {
		return entities.Order{}, errors.New("order repository not configured")
	}
	if u.registry == nil {
		return entities.Order{}, errors.New("idempotency registry not configured")
	}

	ticket, err := u.registry.BeginAttempt(paymentID)
	if err != nil {
		log.Printf("[order][usecase] duplicate attempt suppressed payment_id=%s err=%v", paymentID, err)
		if errors.Is(err, interfaces.ErrAlreadyCompleted) && input.OnCompleted != nil {
			if existing, lookupErr := u.repo.GetByPaymentID(ctx, paymentID); lookupErr == nil && existing.ID != "" {
				input.OnCompleted(existing, false)
			}
		}
		return entities.Order{}, err
	}
	defer u.registry.ReleaseAfter(ticket, u.releaseGrace)

	if ferr := validateCustomer(input.Customer); ferr != nil {
		log.Printf("[order][usecase] customer validation failed payment_id=%s field=%s", paymentID, ferr.Field)
		return entities.Order{}, ferr
	}

	status := input.Status
	if status == "" {
		status = entities.OrderPaymentStatusPending
	}
	now := time.Now().UTC()
	o := entities.Order{
		ID:            uuid.NewString(),
		Customer:      sanitizeCustomer(input.Customer),
		ProductID:     input.Product.ID,
		PaymentID:     paymentID,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: status,
		Amount:        input.Product.Price,
		CardDetails:   input.CardDetails,
		PixDetails:    input.PixDetails,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := u.repo.Insert(ctx, o)
	if err != nil {
		log.Printf("[order][usecase] insert failed payment_id=%s order_id=%s err=%v", paymentID, o.ID, err)
		return entities.Order{}, fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}

	if cerr := u.registry.CompleteAttempt(ticket); cerr != nil {
		// The claim expired mid-flight; the order is already persisted, so
		// only log it.
		log.Printf("[order][usecase] complete-attempt failed payment_id=%s err=%v", paymentID, cerr)
	}

	log.Printf("[order][usecase] create success payment_id=%s order_id=%s status=%s", paymentID, created.ID, created.PaymentStatus)
	if u.notifier != nil {
		u.notifier.Notify(ctx, interfaces.Notification{
			Title:       "Order created",
			Description: fmt.Sprintf("Order %s created for product %s", created.ID, created.ProductID),
			Severity:    interfaces.NotificationSeveritySuccess,
			Metadata: map[string]string{
				"order_id":        created.ID,
				"payment_id":      created.PaymentID,
				"payment_method":  string(created.PaymentMethod),
				"payment_status":  string(created.PaymentStatus),
				"freshly_created": "true",
			},
		})
	}
	if input.OnCompleted != nil {
		input.OnCompleted(created, true)
	}
	return created, nil
}

// validateCustomer fails on the first missing field. The address block is
// optional as a whole but required in full once street is present.
func validateCustomer(c entities.Customer) *CustomerFieldError {
	if strings.TrimSpace(c.Name) == "" {
		return &CustomerFieldError{Field: "name", Message: "name is required"}
	}
	email := strings.TrimSpace(c.Email)
	if email == "" || !strings.Contains(email, "@") {
		return &CustomerFieldError{Field: "email", Message: "a valid email is required"}
	}
	if card.OnlyDigits(c.Document) == "" {
		return &CustomerFieldError{Field: "document", Message: "document is required"}
	}

	if strings.TrimSpace(c.Address.Street) != "" {
		switch {
		case strings.TrimSpace(c.Address.Number) == "":
			return &CustomerFieldError{Field: "address.number", Message: "address number is required"}
		case strings.TrimSpace(c.Address.City) == "":
			return &CustomerFieldError{Field: "address.city", Message: "address city is required"}
		case strings.TrimSpace(c.Address.State) == "":
			return &CustomerFieldError{Field: "address.state", Message: "address state is required"}
		case card.OnlyDigits(c.Address.ZipCode) == "":
			return &CustomerFieldError{Field: "address.zip_code", Message: "address zip code is required"}
		}
	}
	return nil
}

func sanitizeCustomer(c entities.Customer) entities.Customer {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Document = card.OnlyDigits(c.Document)
	c.Address.ZipCode = card.OnlyDigits(c.Address.ZipCode)
	return c
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) GetByPaymentID(ctx context.Context, paymentID string) (entities.Order, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.Order{}, ErrInvalidPaymentID
	}
	o, err := u.repo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, status entities.OrderPaymentStatus) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	switch status {
	case entities.OrderPaymentStatusPending, entities.OrderPaymentStatusPaid, entities.OrderPaymentStatusFailed:
	default:
		return entities.Order{}, ErrInvalidOrderStatus
	}

	o, err := u.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	log.Printf("[order][usecase] status updated order_id=%s status=%s", id, status)
	return o, nil
}

func (u *OrderUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidOrderID
	}
	return u.repo.Delete(ctx, id)
}

func (u *OrderUseCase) DeleteByMethod(ctx context.Context, method entities.PaymentMethod) error {
	switch method {
	case entities.PaymentMethodCard, entities.PaymentMethodPix:
	default:
		return ErrInvalidMethod
	}
	return u.repo.DeleteByMethod(ctx, method)
}
