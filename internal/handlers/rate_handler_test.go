package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"caja/internal/testutil"
)

func setupRateRouter(t *testing.T) *gin.Engine {
	t.Helper()
	handler := NewRateHandler(testutil.NewStaticRates(t), testutil.NewStaticPrices(t))

	r := gin.New()
	r.GET("/rates/:code", handler.GetCurrencyInfo)
	r.GET("/products/:code", handler.GetProductInfo)
	return r
}

func TestRateHandler_GetCurrencyInfo(t *testing.T) {
	t.Run("returns quote record", func(t *testing.T) {
		r := setupRateRouter(t)

		rec := doRequest(r, "GET", "/rates/2", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["buy_rate"] != "2" || result["sell_rate"] != "4" {
			t.Errorf("unexpected rates: %v", result)
		}
	})

	t.Run("unknown currency returns 404", func(t *testing.T) {
		r := setupRateRouter(t)

		rec := doRequest(r, "GET", "/rates/99", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CURRENCY_NOT_FOUND")
	})

	t.Run("non-numeric code returns 400", func(t *testing.T) {
		r := setupRateRouter(t)

		rec := doRequest(r, "GET", "/rates/usd", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestRateHandler_GetProductInfo(t *testing.T) {
	t.Run("returns price record", func(t *testing.T) {
		r := setupRateRouter(t)

		rec := doRequest(r, "GET", "/products/30", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["price"] != "12500" {
			t.Errorf("expected price 12500, got %v", result["price"])
		}
	})

	t.Run("unknown product returns 404", func(t *testing.T) {
		r := setupRateRouter(t)

		rec := doRequest(r, "GET", "/products/99", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PRODUCT_NOT_FOUND")
	})
}
