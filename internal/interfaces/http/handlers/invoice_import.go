// internal/interfaces/http/handlers/invoice_import.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/invoiceimport"
	"github.com/your-org/workshop-backend/internal/interfaces/http/middleware"
)

// InvoiceImportHandler handles supplier invoice XML uploads
type InvoiceImportHandler struct {
	importer *invoiceimport.Importer
	config   *config.Config
}

// NewInvoiceImportHandler creates a new invoice import handler
func NewInvoiceImportHandler(db *gorm.DB, cfg *config.Config) *InvoiceImportHandler {
	return &InvoiceImportHandler{
		importer: invoiceimport.NewImporter(invoiceimport.NewGormStore(db)),
		config:   cfg,
	}
}

// ImportNFe receives an NFe XML file and reconciles it into stock.
// Items that fail individually do not abort the import; they come back
// in the errors list of the summary.
func (h *InvoiceImportHandler) ImportNFe(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "XML file is required (multipart field 'file')",
		})
		return
	}

	if fileHeader.Size > h.config.Upload.MaxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "File too large",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read uploaded file",
		})
		return
	}

	parsed, err := invoiceimport.Parse(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid invoice XML",
			"details": err.Error(),
		})
		return
	}

	result, err := h.importer.Run(workshopID, parsed, userID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, invoiceimport.ErrNoProducts) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice imported successfully",
		"data": gin.H{
			"invoice_number": result.InvoiceNumber,
			"processed":      len(result.Processed),
			"created":        len(result.Created),
			"updated":        len(result.Updated),
			"failed":         len(result.Failed),
			"items": gin.H{
				"created": result.Created,
				"updated": result.Updated,
			},
			"errors": result.Failed,
		},
	})
}
