package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caja/internal/resolver"
)

// RateHandler proxies quote lookups to the central rate service.
type RateHandler struct {
	rates  resolver.RateResolver
	prices resolver.PriceResolver
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rates resolver.RateResolver, prices resolver.PriceResolver) *RateHandler {
	return &RateHandler{rates: rates, prices: prices}
}

// GetCurrencyInfo returns the full quote record for a currency.
func (h *RateHandler) GetCurrencyInfo(c *gin.Context) {
	code, err := parsePathInt(c, "code")
	if err != nil {
		respondWithError(c, err)
		return
	}

	info, err := h.rates.CurrencyInfo(code)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetProductInfo returns the full price record for a product.
func (h *RateHandler) GetProductInfo(c *gin.Context) {
	code, err := parsePathInt(c, "code")
	if err != nil {
		respondWithError(c, err)
		return
	}

	info, err := h.prices.ProductInfo(code)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}
