// internal/interfaces/http/handlers/subscription.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/subscription"
	"github.com/your-org/workshop-backend/internal/infrastructure/database/redis"
	"github.com/your-org/workshop-backend/internal/interfaces/http/middleware"
)

// SubscriptionHandler handles plan and subscription endpoints
type SubscriptionHandler struct {
	subscriptionService *subscription.Service
	config              *config.Config
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(db *gorm.DB, cache *redis.Client, cfg *config.Config) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscription.NewService(db, cfg, cache),
		config:              cfg,
	}
}

// ListPlans lists the plans a workshop can subscribe to
func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	plans, err := h.subscriptionService.ListPlans()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": plans,
	})
}

// GetSubscription returns the workshop's subscription with its plan
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	sub, err := h.subscriptionService.GetSubscription(workshopID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": sub,
	})
}

// GetStatus returns the resolved subscription status
func (h *SubscriptionHandler) GetStatus(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	status, err := h.subscriptionService.GetStatus(workshopID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"status":        status,
			"allows_access": status.AllowsAccess(),
		},
	})
}

// Extend registers a payment and pushes the paid period forward
func (h *SubscriptionHandler) Extend(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	var req subscription.ExtendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sub, err := h.subscriptionService.Extend(workshopID, &req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscription extended successfully",
		"data":    sub,
	})
}

// ChangePlan switches the workshop to another plan
func (h *SubscriptionHandler) ChangePlan(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	var req subscription.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sub, err := h.subscriptionService.ChangePlan(workshopID, &req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Plan changed successfully",
		"data":    sub,
	})
}

// Cancel cancels the workshop's subscription
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	sub, err := h.subscriptionService.Cancel(workshopID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscription cancelled",
		"data":    sub,
	})
}
