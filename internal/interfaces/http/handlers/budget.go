// internal/interfaces/http/handlers/budget.go
package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/budget"
	"github.com/your-org/workshop-backend/internal/domain/client"
	"github.com/your-org/workshop-backend/internal/interfaces/http/middleware"
	"github.com/your-org/workshop-backend/internal/pkg/email"
	"github.com/your-org/workshop-backend/internal/pkg/pdf"
)

// BudgetHandler handles budget endpoints
type BudgetHandler struct {
	budgetService *budget.Service
	clientService *client.Service
	pdfService    *pdf.Service
	emailService  *email.EmailService
	config        *config.Config
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(db *gorm.DB, cfg *config.Config) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budget.NewService(db, cfg),
		clientService: client.NewService(db, cfg),
		pdfService:    pdf.NewService(cfg),
		emailService:  email.NewEmailService(cfg),
		config:        cfg,
	}
}

// CreateBudget creates a new budget
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	var req budget.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.budgetService.CreateBudget(workshopID, &req, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Budget created successfully",
		"data":    created,
	})
}

// GetBudget retrieves a budget by ID
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	budgetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid budget ID",
		})
		return
	}

	found, err := h.budgetService.GetBudget(workshopID, uint(budgetID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": found,
	})
}

// ListBudgets lists budgets with filters
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	status := budget.Status(c.Query("status"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	budgets, total, err := h.budgetService.ListBudgets(workshopID, status, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": budgets,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// Approve approves a pending budget
func (h *BudgetHandler) Approve(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	budgetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid budget ID",
		})
		return
	}

	approved, err := h.budgetService.Approve(workshopID, uint(budgetID))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Budget approved successfully",
		"data":    approved,
	})
}

// Reject rejects a pending budget
func (h *BudgetHandler) Reject(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	budgetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid budget ID",
		})
		return
	}

	rejected, err := h.budgetService.Reject(workshopID, uint(budgetID))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Budget rejected successfully",
		"data":    rejected,
	})
}

// DeleteBudget removes a pending budget
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	budgetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid budget ID",
		})
		return
	}

	if err := h.budgetService.DeleteBudget(workshopID, uint(budgetID)); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Budget deleted successfully",
	})
}

// DownloadPDF streams the budget printout
func (h *BudgetHandler) DownloadPDF(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	budgetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid budget ID",
		})
		return
	}

	found, err := h.budgetService.GetBudget(workshopID, uint(budgetID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	buf, err := h.pdfService.GenerateBudget(found, h.partyInfo(workshopID, found.ClientID, found.VehicleID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate PDF",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", found.Number))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// SendToClient emails the budget summary to the client
func (h *BudgetHandler) SendToClient(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	budgetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid budget ID",
		})
		return
	}

	found, err := h.budgetService.GetBudget(workshopID, uint(budgetID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	budgetClient, err := h.clientService.GetClient(workshopID, found.ClientID)
	if err != nil || budgetClient.Email == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Client has no email address",
		})
		return
	}

	total := "R$ " + found.TotalAmount.StringFixed(2)
	if err := h.emailService.SendBudgetEmail(budgetClient.Email, budgetClient.Name, found.Number, total); err != nil {
		log.Printf("⚠️ Failed to send budget email: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to send email",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Budget sent to client",
	})
}

// partyInfo resolves client and vehicle display data for the PDF
func (h *BudgetHandler) partyInfo(workshopID, clientID uint, vehicleID *uint) pdf.PartyInfo {
	party := pdf.PartyInfo{}
	if c, err := h.clientService.GetClient(workshopID, clientID); err == nil {
		party.ClientName = c.Name
		party.ClientPhone = c.Phone
		party.ClientEmail = c.Email
	}
	if vehicleID != nil {
		if v, err := h.clientService.GetVehicle(workshopID, *vehicleID); err == nil {
			party.Vehicle = fmt.Sprintf("%s %s %d", v.Make, v.Model, v.Year)
			party.Plate = v.Plate
		}
	}
	return party
}
