package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openclub/lendhub/internal/adapters/controller/http/middlewares"
	"github.com/openclub/lendhub/internal/domain/dto"
	"github.com/openclub/lendhub/internal/domain/service"
	"github.com/openclub/lendhub/pkg/logger"
)

type AuthHandler struct {
	auth   *service.AuthService
	logger *logger.Logger
}

func NewAuthHandler(auth *service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: log,
	}
}

type loginRequest struct {
	Provider   string `json:"provider" binding:"required"`
	ProviderID string `json:"providerId" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required"`
	Picture    string `json:"picture"`
}

// Login accepts a verified identity from the identity provider, upserts the
// user and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), dto.ProviderIdentity{
		Provider:   req.Provider,
		ProviderID: req.ProviderID,
		Email:      req.Email,
		Name:       req.Name,
		Picture:    req.Picture,
	})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := middlewares.BearerToken(c)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
