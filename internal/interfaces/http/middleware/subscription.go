// internal/interfaces/http/middleware/subscription.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/subscription"
)

// SubscriptionGate blocks requests from workshops whose subscription lapsed.
// Runs after AuthMiddleware, which puts workshop_id in the context.
func SubscriptionGate(cfg *config.Config, subscriptions *subscription.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Subscription.EnforceBlocking {
			c.Next()
			return
		}

		workshopID, ok := GetWorkshopIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		status, err := subscriptions.GetStatus(workshopID)
		if err != nil {
			// A workshop without a subscription record is treated as blocked.
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "Subscription required",
			})
			c.Abort()
			return
		}

		if !status.AllowsAccess() {
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":  "Subscription expired",
				"status": status,
			})
			c.Abort()
			return
		}

		c.Set("subscription_status", string(status))
		c.Next()
	}
}
