package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caja/internal/catalog"
)

// CatalogHandler exposes the loaded transaction catalog, read-only.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// ListTypes returns every configured transaction type in catalog order.
func (h *CatalogHandler) ListTypes(c *gin.Context) {
	types := h.catalog.Types()
	out := make([]transactionTypeResponse, 0, len(types))
	for _, tt := range types {
		out = append(out, transactionTypeResponse{
			Code:        tt.Code,
			Subcode:     tt.Subcode,
			Description: tt.Description,
			Kind:        tt.Kind.String(),
			Currencies:  tt.Currencies,
			Effects:     tt.Effects,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// ListTotalizers returns the configured totalizer definitions.
func (h *CatalogHandler) ListTotalizers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.catalog.Totalizers()})
}

type transactionTypeResponse struct {
	Code        int                       `json:"code"`
	Subcode     int                       `json:"subcode"`
	Description string                    `json:"description"`
	Kind        string                    `json:"kind"`
	Currencies  [2]int                    `json:"currencies"`
	Effects     []catalog.TotalizerEffect `json:"effects"`
}
