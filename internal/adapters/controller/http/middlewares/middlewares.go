package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/entity"
	"github.com/openclub/lendhub/internal/domain/service"
	"github.com/openclub/lendhub/pkg/logger"
)

const userKey = "user"

type Handler struct {
	auth   *service.AuthService
	logger *logger.Logger
}

func New(auth *service.AuthService, log *logger.Logger) *Handler {
	return &Handler{
		auth:   auth,
		logger: log,
	}
}

// Authorized resolves the bearer token to a user and stores it on the
// request context. Requests without a valid session stop here.
func (h *Handler) Authorized(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errorz.ErrUnauthorized.Error()})
		return
	}

	user, err := h.auth.Resolve(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, errorz.ErrUnauthorized) {
			h.logger.Errorf("failed to resolve session: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errorz.ErrUnauthorized.Error()})
		return
	}

	c.Set(userKey, user)
	c.Next()
}

// Superuser requires the resolved user to hold the SUPERUSER global role.
func (h *Handler) Superuser(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil || !user.IsSuperuser() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errorz.ErrForbidden.Error()})
		return
	}
	c.Next()
}

// CurrentUser returns the user stored by Authorized, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*entity.User)
	return user
}

// BearerToken extracts the bearer credential from the Authorization header.
func BearerToken(c *gin.Context) string {
	return bearerToken(c)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
