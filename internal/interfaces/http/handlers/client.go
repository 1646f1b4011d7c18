// internal/interfaces/http/handlers/client.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/client"
	"github.com/your-org/workshop-backend/internal/interfaces/http/middleware"
)

// ClientHandler handles client and vehicle endpoints
type ClientHandler struct {
	clientService *client.Service
	config        *config.Config
}

// NewClientHandler creates a new client handler
func NewClientHandler(db *gorm.DB, cfg *config.Config) *ClientHandler {
	return &ClientHandler{
		clientService: client.NewService(db, cfg),
		config:        cfg,
	}
}

// CLIENT MANAGEMENT

// CreateClient creates a new client
func (h *ClientHandler) CreateClient(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	var req client.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.clientService.CreateClient(workshopID, &req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Client created successfully",
		"data":    created,
	})
}

// GetClient retrieves a client by ID
func (h *ClientHandler) GetClient(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	clientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid client ID",
		})
		return
	}

	found, err := h.clientService.GetClient(workshopID, uint(clientID))
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

// ListClients lists clients with search and pagination
func (h *ClientHandler) ListClients(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	clients, total, err := h.clientService.ListClients(workshopID, search, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": clients,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// UpdateClient updates a client
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	clientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid client ID",
		})
		return
	}

	var req client.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.clientService.UpdateClient(workshopID, uint(clientID), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Client updated successfully",
		"data":    updated,
	})
}

// DeleteClient removes a client
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	clientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid client ID",
		})
		return
	}

	if err := h.clientService.DeleteClient(workshopID, uint(clientID)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Client deleted successfully",
	})
}

// VEHICLE MANAGEMENT

// CreateVehicle registers a vehicle for a client
func (h *ClientHandler) CreateVehicle(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	var req client.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	vehicle, err := h.clientService.CreateVehicle(workshopID, &req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Vehicle created successfully",
		"data":    vehicle,
	})
}

// ListVehicles lists vehicles, optionally filtered by client
func (h *ClientHandler) ListVehicles(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	clientID, _ := strconv.ParseUint(c.DefaultQuery("client_id", "0"), 10, 32)

	vehicles, err := h.clientService.ListVehicles(workshopID, uint(clientID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": vehicles,
	})
}

// UpdateVehicle updates a vehicle
func (h *ClientHandler) UpdateVehicle(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	vehicleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle ID",
		})
		return
	}

	var req client.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	vehicle, err := h.clientService.UpdateVehicle(workshopID, uint(vehicleID), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vehicle updated successfully",
		"data":    vehicle,
	})
}

// DeleteVehicle removes a vehicle
func (h *ClientHandler) DeleteVehicle(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	vehicleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle ID",
		})
		return
	}

	if err := h.clientService.DeleteVehicle(workshopID, uint(vehicleID)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vehicle deleted successfully",
	})
}
