package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openclub/lendhub/internal/domain/entity"
	"github.com/openclub/lendhub/internal/domain/service"
	"github.com/openclub/lendhub/pkg/logger"
)

type ItemHandler struct {
	items  *service.ItemService
	logger *logger.Logger
}

func NewItemHandler(items *service.ItemService, log *logger.Logger) *ItemHandler {
	return &ItemHandler{
		items:  items,
		logger: log,
	}
}

type createItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	HighRisk    bool     `json:"highRisk"`
	Tags        []string `json:"tags"`
}

func (h *ItemHandler) Create(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.items.Create(c.Request.Context(), &entity.Item{
		Name:        req.Name,
		Description: req.Description,
		HighRisk:    req.HighRisk,
		Tags:        req.Tags,
	})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type updateItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	HighRisk    *bool    `json:"highRisk"`
	Tags        []string `json:"tags"`
}

func (h *ItemHandler) Update(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.items.Update(c.Request.Context(), c.Param("itemID"), req.Name, req.Description, req.HighRisk, req.Tags)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type transferItemRequest struct {
	ClubID *string `json:"clubId"`
}

// Transfer changes the owning club of an item, or removes it from its club
// when clubId is null.
func (h *ItemHandler) Transfer(c *gin.Context) {
	var req transferItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.items.Transfer(c.Request.Context(), c.Param("itemID"), req.ClubID)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.items.Delete(c.Request.Context(), c.Param("itemID")); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ItemHandler) ListByClub(c *gin.Context) {
	items, err := h.items.ListByClub(c.Request.Context(), c.Param("clubID"), c.QueryArray("tag"))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// Label serves the item's scan code as a printable PNG QR label.
func (h *ItemHandler) Label(c *gin.Context) {
	label, err := h.items.Label(c.Request.Context(), c.Param("itemID"))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, "image/png", label)
}
