package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"loja_checkout/internal/domain/entities"
	"loja_checkout/internal/infrastructure/idempotency"
	"loja_checkout/internal/usecase/interfaces"
	mock_interfaces "loja_checkout/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type panicProcessor struct{}

func (panicProcessor) ProcessCardPayment(_ context.Context, _ entities.CardData, _ CheckoutContext) entities.PaymentOutcome {
	panic("boom")
}

func expectProduct(products *mock_interfaces.MockIProductRepository) {
	products.EXPECT().GetBySlug(gomock.Any(), "keyboard").Return(entities.Product{
		ID:    "prod-1",
		Slug:  "keyboard",
		Name:  "Keyboard",
		Price: 150.0,
	}, nil)
}

func TestCheckoutUseCase_SubmitCard_SessionGuard(t *testing.T) {
	t.Run("busy session is rejected before any work", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		products := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewCheckoutUseCase(products, nil, NewCardPaymentProcessor(nil), nil, nil, entities.CheckoutSettings{}, nil)

		session := &CheckoutSession{}
		if !session.beginSubmit() {
			t.Fatalf("fresh session should accept a submission")
		}

		_, err := uc.SubmitCard(context.Background(), session, "keyboard", validCustomer(), validCardData())
		if !errors.Is(err, ErrSubmissionInProgress) {
			t.Fatalf("expected ErrSubmissionInProgress, got %v", err)
		}
		if !session.Submitting() {
			t.Fatalf("original submission should still hold the session")
		}
	})

	t.Run("nil session is tolerated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		products := mock_interfaces.NewMockIProductRepository(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		uc := NewCheckoutUseCase(products, nil, NewCardPaymentProcessor(nil), nil, notifier, entities.CheckoutSettings{CardEnabled: true}, nil)

		expectProduct(products)
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

		result, err := uc.SubmitCard(context.Background(), nil, "keyboard", validCustomer(), validCardData())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcome.Status != entities.OutcomeStatusFailed {
			t.Fatalf("nil gateway should fail the payment, got %s", result.Outcome.Status)
		}
	})
}

func TestCheckoutUseCase_SubmitCard_ProductResolution(t *testing.T) {
	t.Run("unknown product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		products := mock_interfaces.NewMockIProductRepository(ctrl)
		uc := NewCheckoutUseCase(products, nil, NewCardPaymentProcessor(nil), nil, nil, entities.CheckoutSettings{CardEnabled: true}, nil)

		products.EXPECT().GetBySlug(gomock.Any(), "ghost").Return(entities.Product{}, errors.New("not found"))
		products.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.Product{}, nil)

		session := &CheckoutSession{}
		_, err := uc.SubmitCard(context.Background(), session, "ghost", validCustomer(), validCardData())
		if !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
		if session.Submitting() {
			t.Fatalf("session must be released")
		}
	})

	t.Run("empty ref", func(t *testing.T) {
		uc := NewCheckoutUseCase(nil, nil, NewCardPaymentProcessor(nil), nil, nil, entities.CheckoutSettings{CardEnabled: true}, nil)
		_, err := uc.SubmitCard(context.Background(), &CheckoutSession{}, "  ", validCustomer(), validCardData())
		if !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("falls back to id lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		products := mock_interfaces.NewMockIProductRepository(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		uc := NewCheckoutUseCase(products, nil, NewCardPaymentProcessor(nil), nil, notifier, entities.CheckoutSettings{CardEnabled: true}, nil)

		products.EXPECT().GetBySlug(gomock.Any(), "prod-1").Return(entities.Product{}, errors.New("no slug"))
		products.EXPECT().GetByID(gomock.Any(), "prod-1").Return(entities.Product{ID: "prod-1", Price: 10}, nil)
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

		result, err := uc.SubmitCard(context.Background(), &CheckoutSession{}, "prod-1", validCustomer(), validCardData())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcome.Status != entities.OutcomeStatusFailed {
			t.Fatalf("unexpected outcome: %+v", result.Outcome)
		}
	})
}

func TestCheckoutUseCase_SubmitCard_ManualRouting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	products := mock_interfaces.NewMockIProductRepository(ctrl)
	// No gateway expectations: manual routing must never contact it.
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	repo := mock_interfaces.NewMockIOrderRepository(ctrl)
	notifier := mock_interfaces.NewMockINotifier(ctrl)

	settings := entities.CheckoutSettings{CardEnabled: true, ManualCardProcessing: true}
	orders := NewOrderUseCase(repo, idempotency.NewRegistry(), nil, time.Millisecond)

	var completed []entities.Order
	uc := NewCheckoutUseCase(products, gateway, NewCardPaymentProcessor(gateway), orders, notifier, settings, func(o entities.Order) {
		completed = append(completed, o)
	})

	expectProduct(products)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o entities.Order) (entities.Order, error) { return o, nil },
	)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

	session := &CheckoutSession{}
	result, err := uc.SubmitCard(context.Background(), session, "keyboard", validCustomer(), validCardData())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome.Status != entities.OutcomeStatusManualReview {
		t.Fatalf("expected manual_review, got %s", result.Outcome.Status)
	}
	if result.Order == nil || result.Order.PaymentStatus != entities.OrderPaymentStatusPending {
		t.Fatalf("manual review must persist a pending order: %+v", result.Order)
	}
	if result.RedirectTo != "/v1/orders/payment/"+result.Outcome.PaymentID {
		t.Fatalf("unexpected redirect: %s", result.RedirectTo)
	}
	if len(completed) != 1 || completed[0].ID != result.Order.ID {
		t.Fatalf("completion callback not invoked with the created order")
	}
	if session.Submitting() {
		t.Fatalf("session must be released")
	}
}

// A settled charge whose order cannot be persisted must surface as a
// persistence error without charging again; the session is released so the
// buyer can retry.
func TestCheckoutUseCase_SubmitCard_InsertFailureIsolation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	products := mock_interfaces.NewMockIProductRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	repo := mock_interfaces.NewMockIOrderRepository(ctrl)
	notifier := mock_interfaces.NewMockINotifier(ctrl)

	settings := entities.CheckoutSettings{CardEnabled: true}
	orders := NewOrderUseCase(repo, idempotency.NewRegistry(), nil, time.Millisecond)
	uc := NewCheckoutUseCase(products, gateway, NewCardPaymentProcessor(gateway), orders, notifier, settings, nil)

	expectProduct(products)
	gateway.EXPECT().ChargeCard(gomock.Any(), gomock.Any()).Return(interfaces.CardChargeResult{
		TransactionID: "mp-1",
		Status:        interfaces.ChargeStatusApproved,
	}, nil).Times(1)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(entities.Order{}, errors.New("dynamo down"))
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

	session := &CheckoutSession{}
	_, err := uc.SubmitCard(context.Background(), session, "keyboard", validCustomer(), validCardData())
	if !errors.Is(err, ErrOrderPersistence) {
		t.Fatalf("expected ErrOrderPersistence, got %v", err)
	}
	if session.Submitting() {
		t.Fatalf("session must be released after failure")
	}
}

func TestCheckoutUseCase_SubmitCard_DuplicateSuppression(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	products := mock_interfaces.NewMockIProductRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	repo := mock_interfaces.NewMockIOrderRepository(ctrl)

	registry := idempotency.NewRegistry()
	// Another flow already holds the claim for this payment id.
	if _, err := registry.BeginAttempt("mp-1"); err != nil {
		t.Fatalf("setup claim failed: %v", err)
	}

	settings := entities.CheckoutSettings{CardEnabled: true}
	orders := NewOrderUseCase(repo, registry, nil, time.Millisecond)
	uc := NewCheckoutUseCase(products, gateway, NewCardPaymentProcessor(gateway), orders, nil, settings, nil)

	expectProduct(products)
	gateway.EXPECT().ChargeCard(gomock.Any(), gomock.Any()).Return(interfaces.CardChargeResult{
		TransactionID: "mp-1",
		Status:        interfaces.ChargeStatusApproved,
	}, nil)

	result, err := uc.SubmitCard(context.Background(), &CheckoutSession{}, "keyboard", validCustomer(), validCardData())
	if err != nil {
		t.Fatalf("duplicate must be suppressed, got %v", err)
	}
	if result.Order != nil {
		t.Fatalf("no order should be returned for a suppressed duplicate")
	}
	if result.RedirectTo != "/v1/orders/payment/mp-1" {
		t.Fatalf("unexpected redirect: %s", result.RedirectTo)
	}
}

func TestCheckoutUseCase_SubmitCard_CustomerValidationSurfaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	products := mock_interfaces.NewMockIProductRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	repo := mock_interfaces.NewMockIOrderRepository(ctrl)

	settings := entities.CheckoutSettings{CardEnabled: true}
	orders := NewOrderUseCase(repo, idempotency.NewRegistry(), nil, time.Millisecond)
	uc := NewCheckoutUseCase(products, gateway, NewCardPaymentProcessor(gateway), orders, nil, settings, nil)

	expectProduct(products)
	gateway.EXPECT().ChargeCard(gomock.Any(), gomock.Any()).Return(interfaces.CardChargeResult{
		TransactionID: "mp-1",
		Status:        interfaces.ChargeStatusApproved,
	}, nil)

	customer := validCustomer()
	customer.Email = "not-an-email"

	_, err := uc.SubmitCard(context.Background(), &CheckoutSession{}, "keyboard", customer, validCardData())
	var ferr *CustomerFieldError
	if !errors.As(err, &ferr) || ferr.Field != "email" {
		t.Fatalf("expected email field error, got %v", err)
	}
}

func TestCheckoutUseCase_SubmitCard_PanicRecovery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	products := mock_interfaces.NewMockIProductRepository(ctrl)
	notifier := mock_interfaces.NewMockINotifier(ctrl)
	uc := NewCheckoutUseCase(products, nil, panicProcessor{}, nil, notifier, entities.CheckoutSettings{CardEnabled: true}, nil)

	expectProduct(products)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

	session := &CheckoutSession{}
	result, err := uc.SubmitCard(context.Background(), session, "keyboard", validCustomer(), validCardData())
	if err != nil {
		t.Fatalf("panic must not surface as an error, got %v", err)
	}
	if result.Outcome.Status != entities.OutcomeStatusFailed || result.Outcome.ErrorMessage != MsgPaymentRetry {
		t.Fatalf("unexpected outcome: %+v", result.Outcome)
	}
	if session.Submitting() {
		t.Fatalf("session must be released after a panic")
	}
}

func TestCheckoutUseCase_SubmitPix(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		uc := NewCheckoutUseCase(nil, nil, nil, nil, nil, entities.CheckoutSettings{PixEnabled: false}, nil)
		_, err := uc.SubmitPix(context.Background(), &CheckoutSession{}, "keyboard", validCustomer(), entities.PixData{})
		if !errors.Is(err, ErrPixDisabled) {
			t.Fatalf("expected ErrPixDisabled, got %v", err)
		}
	})

	t.Run("nil gateway fails gracefully", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		uc := NewCheckoutUseCase(nil, nil, nil, nil, notifier, entities.CheckoutSettings{PixEnabled: true}, nil)

		notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

		result, err := uc.SubmitPix(context.Background(), &CheckoutSession{}, "keyboard", validCustomer(), entities.PixData{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcome.Status != entities.OutcomeStatusFailed {
			t.Fatalf("unexpected outcome: %+v", result.Outcome)
		}
	})

	t.Run("charge error fails gracefully", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		products := mock_interfaces.NewMockIProductRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		uc := NewCheckoutUseCase(products, gateway, nil, nil, notifier, entities.CheckoutSettings{PixEnabled: true}, nil)

		expectProduct(products)
		gateway.EXPECT().CreatePixCharge(gomock.Any(), gomock.Any()).Return(interfaces.PixChargeResult{}, errors.New("gateway down"))
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

		result, err := uc.SubmitPix(context.Background(), &CheckoutSession{}, "keyboard", validCustomer(), entities.PixData{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcome.Status != entities.OutcomeStatusFailed {
			t.Fatalf("unexpected outcome: %+v", result.Outcome)
		}
	})

	t.Run("success creates pending order with pix details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		products := mock_interfaces.NewMockIProductRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)

		orders := NewOrderUseCase(repo, idempotency.NewRegistry(), nil, time.Millisecond)
		uc := NewCheckoutUseCase(products, gateway, nil, orders, notifier, entities.CheckoutSettings{PixEnabled: true, PixExpirationMinutes: 15}, nil)

		expectProduct(products)
		gateway.EXPECT().CreatePixCharge(gomock.Any(), gomock.AssignableToTypeOf(interfaces.PixChargeRequest{})).DoAndReturn(
			func(_ context.Context, req interfaces.PixChargeRequest) (interfaces.PixChargeResult, error) {
				if req.PayerName != "Joao Silva" {
					t.Fatalf("payer name should fall back to the customer, got %q", req.PayerName)
				}
				if req.PayerDocument != "12345678900" {
					t.Fatalf("payer document should fall back to the customer, got %q", req.PayerDocument)
				}
				if req.ExpiresAt.IsZero() {
					t.Fatalf("expiration must be set")
				}
				return interfaces.PixChargeResult{
					TransactionID: "pix-1",
					Status:        "pending",
					QRCode:        "qr-data",
					CopyPasteCode: "copy-paste",
				}, nil
			},
		)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) {
				if o.PaymentMethod != entities.PaymentMethodPix {
					t.Fatalf("expected PIX order, got %s", o.PaymentMethod)
				}
				if o.PixDetails == nil || o.PixDetails.CopyPasteCode != "copy-paste" {
					t.Fatalf("pix details must be persisted: %+v", o.PixDetails)
				}
				return o, nil
			},
		)
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

		result, err := uc.SubmitPix(context.Background(), &CheckoutSession{}, "keyboard", validCustomer(), entities.PixData{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Order == nil || result.Order.PaymentStatus != entities.OrderPaymentStatusPending {
			t.Fatalf("expected pending order, got %+v", result.Order)
		}
		if result.Outcome.PixDetails == nil || result.Outcome.PixDetails.QRCode != "qr-data" {
			t.Fatalf("unexpected outcome: %+v", result.Outcome)
		}
	})

	t.Run("synchronously approved charge is forced pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		products := mock_interfaces.NewMockIProductRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)

		orders := NewOrderUseCase(repo, idempotency.NewRegistry(), nil, time.Millisecond)
		uc := NewCheckoutUseCase(products, gateway, nil, orders, notifier, entities.CheckoutSettings{PixEnabled: true}, nil)

		expectProduct(products)
		gateway.EXPECT().CreatePixCharge(gomock.Any(), gomock.Any()).Return(interfaces.PixChargeResult{
			TransactionID: "pix-2",
			Status:        "approved",
		}, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) { return o, nil },
		)
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any())

		result, err := uc.SubmitPix(context.Background(), &CheckoutSession{}, "keyboard", validCustomer(), entities.PixData{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcome.Status != entities.OutcomeStatusPending {
			t.Fatalf("pix must not confirm synchronously, got %s", result.Outcome.Status)
		}
		if result.Order.PaymentStatus != entities.OrderPaymentStatusPending {
			t.Fatalf("expected pending order, got %s", result.Order.PaymentStatus)
		}
	})
}
