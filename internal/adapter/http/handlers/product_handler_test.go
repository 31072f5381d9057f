package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"loja_checkout/internal/adapter/http/handlers/mocks"
	"loja_checkout/internal/domain/entities"
	"loja_checkout/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestProductHandler_GetProductByRef(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(h *ProductHandler) *gin.Engine {
		r := gin.New()
		r.GET("/v1/products/:ref", h.GetProductByRef)
		return r
	}

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		uc.EXPECT().GetByRef(gomock.Any(), "ghost").Return(entities.Product{}, usecase.ErrProductNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/ghost", nil)
		w := httptest.NewRecorder()
		newRouter(h).ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("internal error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		uc.EXPECT().GetByRef(gomock.Any(), "keyboard").Return(entities.Product{}, errors.New("db"))

		req := httptest.NewRequest(http.MethodGet, "/v1/products/keyboard", nil)
		w := httptest.NewRecorder()
		newRouter(h).ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProductUseCase(ctrl)
		h := NewProductHandler(uc)

		uc.EXPECT().GetByRef(gomock.Any(), "keyboard").Return(entities.Product{ID: "prod-1", Slug: "keyboard", Name: "Keyboard", Price: 150}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/products/keyboard", nil)
		w := httptest.NewRecorder()
		newRouter(h).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "prod-1" || body["slug"] != "keyboard" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}
