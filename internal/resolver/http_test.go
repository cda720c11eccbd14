package resolver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"caja/internal/resolver"
	"caja/internal/testutil"
)

func TestHTTPRateResolver(t *testing.T) {
	t.Run("fetches_quote_record", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/rates/2" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"code":2,"description":"US Dollar","buy_rate":"2","sell_rate":"4"}`))
		}))
		defer server.Close()

		r := resolver.NewHTTPRateResolver(server.URL)

		info, err := r.CurrencyInfo(2)
		testutil.AssertNoError(t, err)
		if info.Description != "US Dollar" {
			t.Errorf("expected US Dollar, got %s", info.Description)
		}
		testutil.AssertDecimalEqual(t, info.BuyRate, "2")
		testutil.AssertDecimalEqual(t, info.SellRate, "4")

		buy, err := r.Quote(2, resolver.SideBuy)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, buy, "2")

		sell, err := r.Quote(2, resolver.SideSell)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, sell, "4")
	})

	t.Run("non_200_surfaces_as_unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		r := resolver.NewHTTPRateResolver(server.URL)
		_, err := r.Quote(99, resolver.SideBuy)
		testutil.AssertAppError(t, err, "RESOLVER_UNAVAILABLE")
	})

	t.Run("unreachable_service", func(t *testing.T) {
		r := resolver.NewHTTPRateResolver("http://127.0.0.1:1")
		_, err := r.Quote(2, resolver.SideBuy)
		testutil.AssertAppError(t, err, "RESOLVER_UNAVAILABLE")
	})

	t.Run("bad_json_body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		r := resolver.NewHTTPRateResolver(server.URL)
		_, err := r.CurrencyInfo(2)
		testutil.AssertAppError(t, err, "RESOLVER_UNAVAILABLE")
	})
}

func TestHTTPPriceResolver(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/30" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":30,"description":"Gold coin","price":"12500"}`))
	}))
	defer server.Close()

	r := resolver.NewHTTPPriceResolver(server.URL)

	price, err := r.Price(30)
	testutil.AssertNoError(t, err)
	testutil.AssertDecimalEqual(t, price, "12500")

	info, err := r.ProductInfo(30)
	testutil.AssertNoError(t, err)
	if info.Description != "Gold coin" {
		t.Errorf("expected Gold coin, got %s", info.Description)
	}
}

func TestStaticResolvers(t *testing.T) {
	rates := testutil.NewStaticRates(t)

	_, err := rates.Quote(99, resolver.SideBuy)
	testutil.AssertAppError(t, err, "CURRENCY_NOT_FOUND")
	if calls := rates.Calls.Load(); calls != 1 {
		t.Errorf("expected 1 recorded call, got %d", calls)
	}

	prices := testutil.NewStaticPrices(t)
	_, err = prices.Price(99)
	testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")

	info, err := prices.ProductInfo(10)
	testutil.AssertNoError(t, err)
	testutil.AssertDecimalEqual(t, info.Price, "100")
}
