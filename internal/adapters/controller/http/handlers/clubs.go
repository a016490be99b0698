package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openclub/lendhub/internal/adapters/controller/http/middlewares"
	"github.com/openclub/lendhub/internal/domain/entity"
	"github.com/openclub/lendhub/internal/domain/service"
	"github.com/openclub/lendhub/pkg/logger"
)

type ClubHandler struct {
	clubs       *service.ClubService
	memberships *service.MembershipService
	logger      *logger.Logger
}

func NewClubHandler(clubs *service.ClubService, memberships *service.MembershipService, log *logger.Logger) *ClubHandler {
	return &ClubHandler{
		clubs:       clubs,
		memberships: memberships,
		logger:      log,
	}
}

type clubRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *ClubHandler) Create(c *gin.Context) {
	var req clubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	club, err := h.clubs.Create(c.Request.Context(), &entity.Club{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, club)
}

func (h *ClubHandler) Get(c *gin.Context) {
	club, err := h.clubs.Get(c.Request.Context(), c.Param("clubID"))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, club)
}

func (h *ClubHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	clubs, err := h.clubs.GetWithPagination(c.Request.Context(), offset, limit, "created_at DESC")
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": clubs})
}

func (h *ClubHandler) Delete(c *gin.Context) {
	if err := h.clubs.Delete(c.Request.Context(), c.Param("clubID")); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
}

func (h *ClubHandler) AddMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middlewares.CurrentUser(c)
	membership, err := h.memberships.Add(c.Request.Context(), user, c.Param("clubID"), req.UserID)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"userId": membership.UserID,
		"clubId": membership.ClubID,
		"role":   membership.Role.String(),
	})
}

type setRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *ClubHandler) SetRole(c *gin.Context) {
	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := entity.ParseClubRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middlewares.CurrentUser(c)
	membership, err := h.memberships.SetRole(c.Request.Context(), user, c.Param("clubID"), c.Param("userID"), role)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	h.logger.Infof("user %s set role of %s in club %s to %s", user.ID, membership.UserID, membership.ClubID, membership.Role)
	c.JSON(http.StatusOK, gin.H{
		"userId": membership.UserID,
		"clubId": membership.ClubID,
		"role":   membership.Role.String(),
	})
}

func (h *ClubHandler) RemoveMember(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if err := h.memberships.Remove(c.Request.Context(), user, c.Param("clubID"), c.Param("userID")); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMembers lists club members, optionally filtered with ?role=MODERATOR.
func (h *ClubHandler) ListMembers(c *gin.Context) {
	var role *entity.ClubRole
	if q := c.Query("role"); q != "" {
		parsed, err := entity.ParseClubRole(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		role = &parsed
	}

	user := middlewares.CurrentUser(c)
	members, err := h.memberships.ListMembers(c.Request.Context(), user, c.Param("clubID"), role)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	data := make([]gin.H, 0, len(members))
	for _, m := range members {
		data = append(data, gin.H{
			"userId": m.UserID,
			"name":   m.Name,
			"email":  m.Email,
			"role":   m.Role.String(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}
