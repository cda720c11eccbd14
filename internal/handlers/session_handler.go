package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"caja/internal/config"
	apperrors "caja/internal/errors"
	"caja/internal/middleware"
)

// SessionHandler opens teller sessions.
type SessionHandler struct {
	cfg *config.Config
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(cfg *config.Config) *SessionHandler {
	return &SessionHandler{cfg: cfg}
}

// OpenSessionRequest carries the teller credentials.
type OpenSessionRequest struct {
	TellerID string `json:"teller_id" binding:"required,min=1,max=50"`
	PIN      string `json:"pin" binding:"required,min=4,max=50"`
}

// OpenSessionResponse carries the issued session token.
type OpenSessionResponse struct {
	Token    string `json:"token"`
	TellerID string `json:"teller_id"`
}

// Open validates the teller's PIN and issues a session token.
func (h *SessionHandler) Open(c *gin.Context) {
	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if req.TellerID != h.cfg.TellerID || h.cfg.TellerPINHash == "" {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.TellerPINHash), []byte(req.PIN)); err != nil {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	token, err := middleware.GenerateSessionToken(req.TellerID)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, OpenSessionResponse{Token: token, TellerID: req.TellerID})
}
