// internal/interfaces/http/handlers/supplier.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/supplier"
	"github.com/your-org/workshop-backend/internal/interfaces/http/middleware"
)

// SupplierHandler handles supplier endpoints
type SupplierHandler struct {
	supplierService *supplier.Service
	config          *config.Config
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(db *gorm.DB, cfg *config.Config) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplier.NewService(db, cfg),
		config:          cfg,
	}
}

// CreateSupplier creates a new supplier
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	var req supplier.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.supplierService.CreateSupplier(workshopID, &req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Supplier created successfully",
		"data":    created,
	})
}

// GetSupplier retrieves a supplier by ID
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	supplierID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid supplier ID",
		})
		return
	}

	found, err := h.supplierService.GetSupplier(workshopID, uint(supplierID))
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

// ListSuppliers lists the workshop suppliers. A tax_id query narrows the
// result to the single matching supplier.
func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	if taxID := c.Query("tax_id"); taxID != "" {
		found, err := h.supplierService.FindByTaxID(workshopID, taxID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": err.Error(),
			})
			return
		}
		suppliers := []supplier.Supplier{}
		if found != nil {
			suppliers = append(suppliers, *found)
		}
		c.JSON(http.StatusOK, gin.H{
			"data": suppliers,
		})
		return
	}

	suppliers, err := h.supplierService.ListSuppliers(workshopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": suppliers,
	})
}

// UpdateSupplier updates a supplier
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	supplierID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid supplier ID",
		})
		return
	}

	var req supplier.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.supplierService.UpdateSupplier(workshopID, uint(supplierID), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Supplier updated successfully",
		"data":    updated,
	})
}

// DeleteSupplier removes a supplier
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	supplierID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid supplier ID",
		})
		return
	}

	if err := h.supplierService.DeleteSupplier(workshopID, uint(supplierID)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Supplier deleted successfully",
	})
}
