// internal/interfaces/http/handlers/finance.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/finance"
	"github.com/your-org/workshop-backend/internal/interfaces/http/middleware"
)

// FinanceHandler handles receivable and payable endpoints
type FinanceHandler struct {
	financeService *finance.Service
	config         *config.Config
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(db *gorm.DB, cfg *config.Config) *FinanceHandler {
	return &FinanceHandler{
		financeService: finance.NewService(db, cfg),
		config:         cfg,
	}
}

// CreateTransaction registers a receivable or payable
func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	var req finance.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	transaction, err := h.financeService.CreateTransaction(workshopID, userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Transaction created successfully",
		"data":    transaction,
	})
}

// GetTransaction retrieves a single transaction
func (h *FinanceHandler) GetTransaction(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	transactionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID",
		})
		return
	}

	transaction, err := h.financeService.GetTransaction(workshopID, uint(transactionID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": transaction,
	})
}

// ListTransactions lists transactions with filters
func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	var req finance.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	transactions, total, err := h.financeService.ListTransactions(workshopID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": transactions,
		"pagination": gin.H{
			"page":  req.Page,
			"limit": req.Limit,
			"total": total,
		},
	})
}

// MarkPaid settles a pending transaction
func (h *FinanceHandler) MarkPaid(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	transactionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID",
		})
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	transaction, err := h.financeService.MarkPaid(workshopID, uint(transactionID), req.PaymentMethod)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Transaction marked as paid",
		"data":    transaction,
	})
}

// CancelTransaction voids a pending transaction
func (h *FinanceHandler) CancelTransaction(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	transactionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID",
		})
		return
	}

	transaction, err := h.financeService.CancelTransaction(workshopID, uint(transactionID))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Transaction cancelled",
		"data":    transaction,
	})
}

// GetSummary returns the cash position for a date window
func (h *FinanceHandler) GetSummary(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid 'from' date, expected YYYY-MM-DD",
			})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid 'to' date, expected YYYY-MM-DD",
			})
			return
		}
		to = parsed
	}

	summary, err := h.financeService.GetSummary(workshopID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": summary,
	})
}
