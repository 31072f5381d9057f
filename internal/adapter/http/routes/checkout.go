package routes

import (
	"loja_checkout/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathCheckout = "/checkout"
	PathOrders   = "/orders"
	PathProducts = "/products"
)

func addCheckoutRoutes(rg *gin.RouterGroup, checkoutHandler *handlers.CheckoutHandler) {
	checkout := rg.Group(PathCheckout)
	{
		checkout.POST("/card", checkoutHandler.SubmitCardPayment)
		checkout.POST("/pix", checkoutHandler.SubmitPixPayment)
	}
}

func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.GET("/:id", orderHandler.GetOrderByID)
		orders.GET("/payment/:payment_id", orderHandler.GetOrderByPaymentID)
		orders.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
		orders.DELETE("/:id", orderHandler.DeleteOrder)
		orders.DELETE("", orderHandler.DeleteOrdersByMethod)
	}
}

func addProductRoutes(rg *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	products := rg.Group(PathProducts)
	{
		products.GET("/:ref", productHandler.GetProductByRef)
	}
}
