package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"caja/internal/engine"
	apperrors "caja/internal/errors"
	"caja/internal/models"
)

// CurrencyHandler registers and lists the session's currencies.
type CurrencyHandler struct {
	engine *engine.Engine
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(eng *engine.Engine) *CurrencyHandler {
	return &CurrencyHandler{engine: eng}
}

// RegisterCurrencyRequest is the payload for opening a currency at the till.
type RegisterCurrencyRequest struct {
	Code            int             `json:"code" binding:"gte=0"`
	Name            string          `json:"name" binding:"required,min=1,max=100"`
	StartingBalance decimal.Decimal `json:"starting_balance" binding:"gte=0"`
}

// CurrencyResponse represents one currency with its derived balance.
type CurrencyResponse struct {
	Code            int             `json:"code"`
	Name            string          `json:"name"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
	Credits         decimal.Decimal `json:"credits"`
	Debits          decimal.Decimal `json:"debits"`
	CreditCount     int             `json:"credit_count"`
	DebitCount      int             `json:"debit_count"`
	Balance         decimal.Decimal `json:"balance"`
}

func toCurrencyResponse(c *models.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:            c.Code,
		Name:            c.Name,
		StartingBalance: c.StartingBalance,
		Credits:         c.Credits,
		Debits:          c.Debits,
		CreditCount:     c.CreditCount,
		DebitCount:      c.DebitCount,
		Balance:         c.Balance(),
	}
}

// Register opens a currency for the session.
func (h *CurrencyHandler) Register(c *gin.Context) {
	var req RegisterCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	currency := models.NewCurrencyWithBalance(req.Code, req.Name, req.StartingBalance)
	if err := h.engine.RegisterCurrency(currency); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCurrencyResponse(currency))
}

// List returns every currency registered at the till.
func (h *CurrencyHandler) List(c *gin.Context) {
	currencies := h.engine.Currencies().All()
	out := make([]CurrencyResponse, 0, len(currencies))
	for _, cur := range currencies {
		out = append(out, toCurrencyResponse(cur))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// Get returns one currency by code.
func (h *CurrencyHandler) Get(c *gin.Context) {
	code, err := parsePathInt(c, "code")
	if err != nil {
		respondWithError(c, err)
		return
	}

	currency, err := h.engine.Currencies().FindByCode(code)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCurrencyResponse(currency))
}
