package handlers

import (
	"errors"
	"log"
	"net/http"

	"loja_checkout/internal/adapter/http/dto/request"
	"loja_checkout/internal/adapter/http/dto/response"
	"loja_checkout/internal/domain/entities"
	"loja_checkout/internal/usecase"
	"loja_checkout/pkg"

	"github.com/gin-gonic/gin"
)

// OrderHandler handles HTTP requests for the order store (reads and
// back-office maintenance; orders are only ever created through checkout).

type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	id := c.Param("id")
	o, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[order][handler] get failed order_id=%s err=%v", id, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// GetOrderByPaymentID is the payment-status lookup the storefront lands on
// after a submission.
func (h *OrderHandler) GetOrderByPaymentID(c *gin.Context) {
	paymentID := c.Param("payment_id")
	o, err := h.usecase.GetByPaymentID(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[order][handler] get-by-payment failed payment_id=%s err=%v", paymentID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")
	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	o, err := h.usecase.UpdateStatus(c.Request.Context(), id, entities.OrderPaymentStatus(req.Status))
	if err != nil {
		log.Printf("[order][handler] status update failed order_id=%s status=%s err=%v", id, req.Status, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[order][handler] status updated order_id=%s status=%s", id, req.Status)
	c.JSON(http.StatusOK, response.FromOrder(o))
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id := c.Param("id")
	if err := h.usecase.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[order][handler] delete failed order_id=%s err=%v", id, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteOrdersByMethod removes every order paid with the given method
// (?method=CARD|PIX). Used by back-office cleanup tooling.
func (h *OrderHandler) DeleteOrdersByMethod(c *gin.Context) {
	method := c.Query("method")
	if err := h.usecase.DeleteByMethod(c.Request.Context(), entities.PaymentMethod(method)); err != nil {
		log.Printf("[order][handler] delete-by-method failed method=%s err=%v", method, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidOrderStatus), errors.Is(err, usecase.ErrInvalidMethod):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
