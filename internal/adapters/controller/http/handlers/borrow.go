package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openclub/lendhub/internal/adapters/controller/http/middlewares"
	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/service"
	"github.com/openclub/lendhub/pkg/logger"
)

type BorrowHandler struct {
	borrow  *service.BorrowService
	history *service.HistoryService
	logger  *logger.Logger
}

func NewBorrowHandler(borrow *service.BorrowService, history *service.HistoryService, log *logger.Logger) *BorrowHandler {
	return &BorrowHandler{
		borrow:  borrow,
		history: history,
		logger:  log,
	}
}

type borrowRequest struct {
	QRCode     string     `json:"qrCode" binding:"required"`
	ReturnDate *time.Time `json:"returnDate"`
}

func (h *BorrowHandler) Borrow(c *gin.Context) {
	var req borrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middlewares.CurrentUser(c)
	result, err := h.borrow.InitiateBorrow(c.Request.Context(), c.Param("clubID"), req.QRCode, user, req.ReturnDate)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	h.logger.Infof("user %s borrowed item %q (transaction %d, %s)", user.ID, result.ItemName, result.TransactionID, result.Status)
	c.JSON(http.StatusCreated, gin.H{
		"message":  result.Message,
		"itemName": result.ItemName,
	})
}

type returnRequest struct {
	QRCode string `json:"qrCode" binding:"required"`
}

func (h *BorrowHandler) Return(c *gin.Context) {
	var req returnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middlewares.CurrentUser(c)
	result, err := h.borrow.InitiateReturn(c.Request.Context(), c.Param("clubID"), req.QRCode, user)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	h.logger.Infof("user %s returned item %q (transaction %d, %s)", user.ID, result.ItemName, result.TransactionID, result.Status)
	c.JSON(http.StatusCreated, gin.H{
		"message":  result.Message,
		"itemName": result.ItemName,
	})
}

type approvalRequest struct {
	Action string `json:"action" binding:"required"`
}

func (h *BorrowHandler) ProcessApproval(c *gin.Context) {
	transactionID, err := strconv.ParseUint(c.Param("transactionID"), 10, 64)
	if err != nil {
		abortWithError(c, h.logger, errorz.ErrTransactionNotFound)
		return
	}

	var req approvalRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middlewares.CurrentUser(c)
	result, err := h.borrow.ProcessApproval(c.Request.Context(), uint(transactionID), user, service.ApprovalAction(req.Action))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	h.logger.Infof("user %s processed transaction %d: %s", user.ID, transactionID, result.Status)
	c.JSON(http.StatusOK, gin.H{
		"message":  result.Message,
		"itemName": result.ItemName,
		"status":   result.Status,
	})
}

func (h *BorrowHandler) PendingApprovals(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	offset, limit := pagination(c)

	queue, err := h.history.PendingApprovals(c.Request.Context(), c.Param("clubID"), user, offset, limit)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	data := make([]gin.H, 0, len(queue))
	for _, p := range queue {
		data = append(data, gin.H{
			"transactionId": p.TransactionID,
			"itemId":        p.ItemID,
			"itemName":      p.ItemName,
			"borrowerName":  p.BorrowerName,
			"status":        p.Status,
			"requestedAt":   p.RequestedAt,
			"message":       p.Message,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}
