package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"caja/internal/engine"
	apperrors "caja/internal/errors"
	"caja/internal/models"
	"caja/internal/pagination"
)

// MovementHandler executes, reverses and queries movements.
type MovementHandler struct {
	engine *engine.Engine
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(eng *engine.Engine) *MovementHandler {
	return &MovementHandler{engine: eng}
}

// LineItemRequest is one sold article in an execute request. A missing
// or zero unit price is resolved through the price service.
type LineItemRequest struct {
	ProductCode int             `json:"product_code" binding:"required"`
	Description string          `json:"description" binding:"max=200"`
	Quantity    decimal.Decimal `json:"quantity" binding:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"gte=0"`
}

// ExecuteMovementRequest is the payload for executing a transaction.
// Rate is optional: supplying it overrides quote resolution.
type ExecuteMovementRequest struct {
	Code              int               `json:"code" binding:"required"`
	Subcode           int               `json:"subcode"`
	PrimaryCurrency   int               `json:"primary_currency"`
	PrimaryAmount     decimal.Decimal   `json:"primary_amount" binding:"gt=0"`
	SecondaryCurrency int               `json:"secondary_currency"`
	SecondaryAmount   decimal.Decimal   `json:"secondary_amount" binding:"gte=0"`
	Rate              decimal.Decimal   `json:"rate" binding:"gte=0"`
	Reference         string            `json:"reference" binding:"max=100"`
	Description       string            `json:"description" binding:"max=500"`
	Items             []LineItemRequest `json:"items" binding:"omitempty,dive"`
}

// ExecuteMovementResponse returns the operation number together with
// the frozen movement.
type ExecuteMovementResponse struct {
	OperationNumber int              `json:"operation_number"`
	Movement        *models.Movement `json:"movement"`
}

// Execute runs a transaction and returns its operation number.
func (h *MovementHandler) Execute(c *gin.Context) {
	var req ExecuteMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	movement := &models.Movement{
		Code:              req.Code,
		Subcode:           req.Subcode,
		PrimaryCurrency:   req.PrimaryCurrency,
		PrimaryAmount:     req.PrimaryAmount,
		SecondaryCurrency: req.SecondaryCurrency,
		SecondaryAmount:   req.SecondaryAmount,
		Rate:              req.Rate,
		Reference:         req.Reference,
		Description:       req.Description,
	}
	for _, item := range req.Items {
		movement.Items = append(movement.Items, models.LineItem{
			ProductCode: item.ProductCode,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	operation, err := h.engine.Execute(movement)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ExecuteMovementResponse{OperationNumber: operation, Movement: movement})
}

// Reverse undoes the movement with the given operation number.
func (h *MovementHandler) Reverse(c *gin.Context) {
	operation, err := parsePathInt(c, "operation")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.engine.Reverse(operation); err != nil {
		respondWithError(c, err)
		return
	}

	movement, err := h.engine.Movements().FindByOperationNumber(operation)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, movement)
}

// Get returns one movement by operation number.
func (h *MovementHandler) Get(c *gin.Context) {
	operation, err := parsePathInt(c, "operation")
	if err != nil {
		respondWithError(c, err)
		return
	}

	movement, err := h.engine.Movements().FindByOperationNumber(operation)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, movement)
}

// movementListQuery holds the optional movement list filters.
type movementListQuery struct {
	pagination.PageRequest
	Code      *int    `form:"code"`
	Subcode   *int    `form:"subcode"`
	Currency  *int    `form:"currency"`
	Reference *string `form:"reference"`
}

// List returns a paginated, filtered view of the movement log.
func (h *MovementHandler) List(c *gin.Context) {
	var query movementListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	query.Defaults()

	log := h.engine.Movements()
	if query.Code != nil {
		if query.Subcode != nil {
			log = log.FilterByType(*query.Code, *query.Subcode)
		} else {
			log = log.FilterByCode(*query.Code)
		}
	}
	if query.Currency != nil {
		log = log.FilterByCurrency(*query.Currency)
	}
	if query.Reference != nil {
		log = log.FilterByReference(*query.Reference)
	}

	page := pagination.Paginate(log.All(), query.PageRequest)
	c.JSON(http.StatusOK, page)
}
