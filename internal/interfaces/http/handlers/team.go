// internal/interfaces/http/handlers/team.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/user"
	"github.com/your-org/workshop-backend/internal/interfaces/http/middleware"
)

// TeamHandler handles workshop team management endpoints
type TeamHandler struct {
	userService *user.Service
	config      *config.Config
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(db *gorm.DB, cfg *config.Config) *TeamHandler {
	return &TeamHandler{
		userService: user.NewService(db, cfg),
		config:      cfg,
	}
}

// CreateMember adds a user to the workshop team
func (h *TeamHandler) CreateMember(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	var req user.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	member, tempPassword, err := h.userService.CreateMember(workshopID, &req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	response := gin.H{
		"message": "Team member created successfully",
		"data":    member,
	}
	if tempPassword != "" {
		// Shown once so the admin can hand it over; only the hash is stored.
		response["temporary_password"] = tempPassword
	}

	c.JSON(http.StatusCreated, response)
}

// ListMembers lists the workshop team
func (h *TeamHandler) ListMembers(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	members, err := h.userService.ListMembers(workshopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": members,
	})
}

// SetMemberActive activates or deactivates a team member
func (h *TeamHandler) SetMemberActive(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	memberID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid member ID",
		})
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.userService.SetMemberActive(workshopID, uint(memberID), *req.Active); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Team member updated successfully",
	})
}
