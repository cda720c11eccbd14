package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caja/internal/config"
	"caja/internal/engine"
	"caja/internal/export"
	"caja/internal/logger"
	"caja/internal/middleware"
)

// AdminHandler covers the session-level operations: exporting a
// snapshot of the registries and resetting for a new trading day.
type AdminHandler struct {
	engine *engine.Engine
	cfg    *config.Config
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(eng *engine.Engine, cfg *config.Config) *AdminHandler {
	return &AdminHandler{engine: eng, cfg: cfg}
}

// ExportResponse reports what one snapshot wrote.
type ExportResponse struct {
	Path       string `json:"path"`
	Currencies int    `json:"currencies"`
	Totalizers int    `json:"totalizers"`
	Movements  int    `json:"movements"`
}

// Export writes a point-in-time snapshot of the session to the
// configured snapshot store.
func (h *AdminHandler) Export(c *gin.Context) {
	exporter, err := export.NewExporter(h.cfg.ExportPath)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer exporter.Close()

	currencies := h.engine.Currencies().All()
	totalizers := h.engine.Totalizers().All()
	movements := h.engine.Movements().All()

	if err := exporter.Snapshot(currencies, totalizers, movements); err != nil {
		respondWithError(c, err)
		return
	}

	teller, _ := middleware.TellerID(c)
	logger.Get().Infow("session snapshot exported",
		"teller", teller,
		"path", h.cfg.ExportPath,
		"movements", len(movements),
	)
	c.JSON(http.StatusOK, ExportResponse{
		Path:       h.cfg.ExportPath,
		Currencies: len(currencies),
		Totalizers: len(totalizers),
		Movements:  len(movements),
	})
}

// ResetResponse reports the zero-sum checks of a session reset.
type ResetResponse struct {
	CurrenciesZero bool `json:"currencies_zero"`
	TotalizersZero bool `json:"totalizers_zero"`
}

// Reset zeroes every currency and totalizer and clears the movement
// log, starting a fresh trading day.
func (h *AdminHandler) Reset(c *gin.Context) {
	currenciesZero, totalizersZero := h.engine.ResetSession()

	teller, _ := middleware.TellerID(c)
	logger.Get().Infow("session reset requested",
		"teller", teller,
		"currencies_zero", currenciesZero,
		"totalizers_zero", totalizersZero,
	)
	c.JSON(http.StatusOK, ResetResponse{
		CurrenciesZero: currenciesZero,
		TotalizersZero: totalizersZero,
	})
}
