package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openclub/lendhub/internal/adapters/controller/http/middlewares"
	"github.com/openclub/lendhub/internal/domain/service"
	"github.com/openclub/lendhub/pkg/logger"
)

type UserHandler struct {
	users   *service.UserService
	history *service.HistoryService
	logger  *logger.Logger
}

func NewUserHandler(users *service.UserService, history *service.HistoryService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		users:   users,
		history: history,
		logger:  log,
	}
}

func (h *UserHandler) Me(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"picture":    user.Picture,
		"globalRole": user.GlobalRole.String(),
	})
}

func (h *UserHandler) MyClubs(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	clubs, err := h.users.Clubs(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	data := make([]gin.H, 0, len(clubs))
	for _, club := range clubs {
		data = append(data, gin.H{
			"clubId":   club.ClubID,
			"clubName": club.ClubName,
			"role":     club.Role.String(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// History returns the user's borrowing history, newest transaction first.
func (h *UserHandler) History(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	records, err := h.history.UserHistory(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	data := make([]gin.H, 0, len(records))
	for _, r := range records {
		data = append(data, gin.H{
			"transactionId": r.TransactionID,
			"itemName":      r.ItemName,
			"status":        r.Status,
			"borrowDate":    r.BorrowDate,
			"returnDate":    r.ReturnDate,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}
