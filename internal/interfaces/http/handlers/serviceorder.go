// internal/interfaces/http/handlers/serviceorder.go
package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/catalog"
	"github.com/your-org/workshop-backend/internal/domain/client"
	"github.com/your-org/workshop-backend/internal/domain/finance"
	"github.com/your-org/workshop-backend/internal/domain/serviceorder"
	"github.com/your-org/workshop-backend/internal/interfaces/http/middleware"
	"github.com/your-org/workshop-backend/internal/pkg/pdf"
)

// ServiceOrderHandler handles service order endpoints
type ServiceOrderHandler struct {
	orderService   *serviceorder.Service
	clientService  *client.Service
	financeService *finance.Service
	pdfService     *pdf.Service
	config         *config.Config
}

// NewServiceOrderHandler creates a new service order handler
func NewServiceOrderHandler(db *gorm.DB, cfg *config.Config) *ServiceOrderHandler {
	catalogService := catalog.NewService(db, cfg)
	return &ServiceOrderHandler{
		orderService:   serviceorder.NewService(db, cfg, catalogService),
		clientService:  client.NewService(db, cfg),
		financeService: finance.NewService(db, cfg),
		pdfService:     pdf.NewService(cfg),
		config:         cfg,
	}
}

// CreateOrder creates a new service order
func (h *ServiceOrderHandler) CreateOrder(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	var req serviceorder.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := h.orderService.CreateOrder(workshopID, userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Service order created successfully",
		"data":    order,
	})
}

// CreateFromBudget opens a service order from an approved budget
func (h *ServiceOrderHandler) CreateFromBudget(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	budgetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid budget ID",
		})
		return
	}

	order, err := h.orderService.CreateFromBudget(workshopID, userID, uint(budgetID))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Service order created from budget",
		"data":    order,
	})
}

// GetOrder retrieves a service order
func (h *ServiceOrderHandler) GetOrder(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	order, err := h.orderService.GetOrder(workshopID, uint(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": order,
	})
}

// ListOrders lists service orders with filters
func (h *ServiceOrderHandler) ListOrders(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	var req serviceorder.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	orders, total, err := h.orderService.ListOrders(workshopID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": orders,
		"pagination": gin.H{
			"page":  req.Page,
			"limit": req.Limit,
			"total": total,
		},
	})
}

// UpdateOrder edits descriptive fields of an order
func (h *ServiceOrderHandler) UpdateOrder(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	var req serviceorder.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	order, err := h.orderService.UpdateOrder(workshopID, uint(orderID), &req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service order updated successfully",
		"data":    order,
	})
}

// Start moves an order to in_progress
func (h *ServiceOrderHandler) Start(c *gin.Context) {
	h.transition(c, func(workshopID, orderID, _ uint) (*serviceorder.ServiceOrder, error) {
		return h.orderService.Start(workshopID, orderID)
	}, "Service order started")
}

// Finish closes the work and consumes stock
func (h *ServiceOrderHandler) Finish(c *gin.Context) {
	h.transition(c, func(workshopID, orderID, userID uint) (*serviceorder.ServiceOrder, error) {
		return h.orderService.Finish(workshopID, orderID, userID)
	}, "Service order finished")
}

// Deliver hands the vehicle back and posts the receivable
func (h *ServiceOrderHandler) Deliver(c *gin.Context) {
	h.transition(c, func(workshopID, orderID, userID uint) (*serviceorder.ServiceOrder, error) {
		order, err := h.orderService.Deliver(workshopID, orderID)
		if err != nil {
			return nil, err
		}

		// The receivable is bookkeeping; its failure must not undo the delivery.
		if _, err := h.financeService.CreateReceivableForOrder(
			workshopID, userID, order.ClientID, order.Number, order.TotalAmount); err != nil {
			log.Printf("⚠️ Failed to create receivable for order %s: %v", order.Number, err)
		}
		return order, nil
	}, "Service order delivered")
}

// Cancel aborts an order
func (h *ServiceOrderHandler) Cancel(c *gin.Context) {
	h.transition(c, func(workshopID, orderID, _ uint) (*serviceorder.ServiceOrder, error) {
		return h.orderService.Cancel(workshopID, orderID)
	}, "Service order cancelled")
}

// transition factors the shared status-change handling
func (h *ServiceOrderHandler) transition(c *gin.Context, fn func(workshopID, orderID, userID uint) (*serviceorder.ServiceOrder, error), message string) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	order, err := fn(workshopID, uint(orderID), userID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    order,
	})
}

// DownloadPDF streams the service order printout
func (h *ServiceOrderHandler) DownloadPDF(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	order, err := h.orderService.GetOrder(workshopID, uint(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	party := pdf.PartyInfo{}
	if cl, err := h.clientService.GetClient(workshopID, order.ClientID); err == nil {
		party.ClientName = cl.Name
		party.ClientPhone = cl.Phone
		party.ClientEmail = cl.Email
	}
	if order.VehicleID != nil {
		if v, err := h.clientService.GetVehicle(workshopID, *order.VehicleID); err == nil {
			party.Vehicle = fmt.Sprintf("%s %s %d", v.Make, v.Model, v.Year)
			party.Plate = v.Plate
		}
	}

	buf, err := h.pdfService.GenerateServiceOrder(order, party)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate PDF",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", order.Number))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
