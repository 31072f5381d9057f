package handlers

import (
	"errors"
	"log"
	"net/http"
	"sync"

	"loja_checkout/internal/adapter/http/dto/request"
	"loja_checkout/internal/adapter/http/dto/response"
	"loja_checkout/internal/usecase"
	"loja_checkout/pkg"

	"github.com/gin-gonic/gin"
)

// SessionHeader correlates requests of one checkout flow so a rapid
// resubmission from the same buyer is caught by the session flag. Requests
// without the header get an isolated session; the payment-id registry still
// guards them.
const SessionHeader = "X-Checkout-Session"

// CheckoutHandler handles HTTP requests for checkout submissions.

type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase

	mu       sync.Mutex
	sessions map[string]*usecase.CheckoutSession
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc, sessions: make(map[string]*usecase.CheckoutSession)}
}

func (h *CheckoutHandler) sessionFor(c *gin.Context) *usecase.CheckoutSession {
	key := c.GetHeader(SessionHeader)
	if key == "" {
		return &usecase.CheckoutSession{}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[key]
	if !ok {
		s = &usecase.CheckoutSession{}
		h.sessions[key] = s
	}
	return s
}

// SubmitCardPayment runs one card checkout submission.
func (h *CheckoutHandler) SubmitCardPayment(c *gin.Context) {
	var req request.CardCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[checkout][handler] invalid card payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] card submission start product=%s", req.Product)

	result, err := h.usecase.SubmitCard(c.Request.Context(), h.sessionFor(c), req.Product, req.Customer.ToEntity(), req.Card.ToEntity())
	if err != nil {
		log.Printf("[checkout][handler] card submission failed product=%s err=%v", req.Product, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] card submission settled product=%s payment_id=%s status=%s", req.Product, result.Outcome.PaymentID, result.Outcome.Status)

	c.JSON(http.StatusOK, response.FromCheckoutResult(result))
}

// SubmitPixPayment creates a PIX charge and its pending order.
func (h *CheckoutHandler) SubmitPixPayment(c *gin.Context) {
	var req request.PixCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[checkout][handler] invalid pix payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] pix submission start product=%s", req.Product)

	result, err := h.usecase.SubmitPix(c.Request.Context(), h.sessionFor(c), req.Product, req.Customer.ToEntity(), req.Pix.ToEntity())
	if err != nil {
		log.Printf("[checkout][handler] pix submission failed product=%s err=%v", req.Product, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] pix submission settled product=%s payment_id=%s status=%s", req.Product, result.Outcome.PaymentID, result.Outcome.Status)

	c.JSON(http.StatusOK, response.FromCheckoutResult(result))
}

func mapCheckoutError(err error) *pkg.AppError {
	var ferr *usecase.CustomerFieldError
	switch {
	case errors.As(err, &ferr):
		return pkg.NewDomainErrorSimple("VALIDATION_ERROR", ferr.Message, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrSubmissionInProgress):
		return pkg.NewDomainErrorSimple("SUBMISSION_IN_PROGRESS", "Your payment is already being processed", http.StatusConflict)
	case errors.Is(err, usecase.ErrProductNotFound):
		return pkg.NewDomainErrorSimple("PRODUCT_NOT_FOUND", "Product not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPixDisabled):
		return pkg.NewDomainErrorSimple("PIX_DISABLED", "PIX payments are not available", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderPersistence):
		return pkg.NewDomainErrorSimple("ORDER_PERSISTENCE", "We could not complete your order. Please contact support.", http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
