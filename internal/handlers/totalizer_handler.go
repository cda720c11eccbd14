package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caja/internal/engine"
)

// TotalizerHandler lists the session's totalizers.
type TotalizerHandler struct {
	engine *engine.Engine
}

// NewTotalizerHandler creates a new TotalizerHandler.
func NewTotalizerHandler(eng *engine.Engine) *TotalizerHandler {
	return &TotalizerHandler{engine: eng}
}

// List returns every totalizer with its running amount and counters.
func (h *TotalizerHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.engine.Totalizers().All()})
}

// Get returns one totalizer by code.
func (h *TotalizerHandler) Get(c *gin.Context) {
	code, err := parsePathInt(c, "code")
	if err != nil {
		respondWithError(c, err)
		return
	}

	totalizer, err := h.engine.Totalizers().FindByCode(code)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, totalizer)
}
