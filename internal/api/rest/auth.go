package rest

import (
	"errors"
	"net/http"

	"player_bonus_service/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	issuer *auth.TokenIssuer
	logger *zap.Logger
}

func NewAuthHandler(issuer *auth.TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{issuer: issuer, logger: logger}
}

type devTokenRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
}

// DevToken signs a token for whatever identity the caller names. It exists
// for local development and tests only.
// POST /api/auth/dev-token
func (h *AuthHandler) DevToken(c *gin.Context) {
	var req devTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeProblem(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.issuer.IssueDevToken(req.UserID, req.UserName, req.Role)
	if err != nil {
		if errors.Is(err, auth.ErrMissingIdentity) {
			writeProblem(c, http.StatusBadRequest, err.Error())
			return
		}
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, token)
}
