package request

// UpdateOrderStatusRequest is the back-office payload for order status
// transitions (PENDING, PAID, FAILED).
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
