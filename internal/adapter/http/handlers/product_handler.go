package handlers

import (
	"errors"
	"net/http"

	"loja_checkout/internal/adapter/http/dto/response"
	"loja_checkout/internal/usecase"
	"loja_checkout/pkg"

	"github.com/gin-gonic/gin"
)

// ProductHandler serves the read-only product lookups used by the checkout
// page.

type ProductHandler struct {
	usecase usecase.IProductUseCase
}

func NewProductHandler(uc usecase.IProductUseCase) *ProductHandler {
	return &ProductHandler{usecase: uc}
}

// GetProductByRef resolves by slug first, then by id.
func (h *ProductHandler) GetProductByRef(c *gin.Context) {
	ref := c.Param("ref")
	p, err := h.usecase.GetByRef(c.Request.Context(), ref)
	if err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			appErr := pkg.NewDomainErrorSimple("PRODUCT_NOT_FOUND", "Product not found", http.StatusNotFound)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromProduct(p))
}
