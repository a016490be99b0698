package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/pkg/logger"
)

const defaultPageSize = 10

// abortWithError maps domain errors to transport responses. Anything outside
// the taxonomy is an internal error and must not leak details to the caller.
func abortWithError(c *gin.Context, log *logger.Logger, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errorz.ErrItemNotFound),
		errors.Is(err, errorz.ErrClubNotFound),
		errors.Is(err, errorz.ErrUserNotFound),
		errors.Is(err, errorz.ErrTransactionNotFound),
		errors.Is(err, errorz.ErrMembershipNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errorz.ErrClubMismatch),
		errors.Is(err, errorz.ErrItemNotAvailable),
		errors.Is(err, errorz.ErrItemNotBorrowed),
		errors.Is(err, errorz.ErrInvalidDeadline),
		errors.Is(err, errorz.ErrNotApproved),
		errors.Is(err, errorz.ErrInvalidState),
		errors.Is(err, errorz.ErrInvalidAction),
		errors.Is(err, errorz.ErrInvalidName),
		errors.Is(err, errorz.ErrInvalidRole):
		status = http.StatusBadRequest
	case errors.Is(err, errorz.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errorz.ErrUnauthorized):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// pagination reads ?page= (1-based) and returns the storage offset and limit.
func pagination(c *gin.Context) (offset, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return (page - 1) * defaultPageSize, defaultPageSize
}
