package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/auth"
)

type AuthHandler struct {
	tokens        *auth.TokenManager
	accessKeyHash string
}

func NewAuthHandler(tokens *auth.TokenManager, accessKeyHash string) *AuthHandler {
	return &AuthHandler{
		tokens:        tokens,
		accessKeyHash: accessKeyHash,
	}
}

type TokenRequest struct {
	AccessKey string `json:"access_key" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// Token exchanges the configured access key for a bearer token.
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !auth.CheckAccessKey(h.accessKeyHash, req.AccessKey) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.tokens.Generate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}
