package interfaces

import (
	"context"
	"loja_checkout/internal/domain/entities"
)

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// Insert must reject a second order carrying the same payment_id: the
// in-process registry is the first line of defense, the conditional write is
// the storage-level backstop.

type IOrderRepository interface {
	Insert(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	GetByPaymentID(ctx context.Context, paymentID string) (entities.Order, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderPaymentStatus) (entities.Order, error)
	Delete(ctx context.Context, id string) error
	DeleteByMethod(ctx context.Context, method entities.PaymentMethod) error
}
