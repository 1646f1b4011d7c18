// internal/interfaces/http/handlers/schedule.go
package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/client"
	"github.com/your-org/workshop-backend/internal/domain/schedule"
	"github.com/your-org/workshop-backend/internal/interfaces/http/middleware"
	"github.com/your-org/workshop-backend/internal/pkg/email"
)

// ScheduleHandler handles appointment endpoints
type ScheduleHandler struct {
	scheduleService *schedule.Service
	clientService   *client.Service
	emailService    *email.EmailService
	config          *config.Config
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(db *gorm.DB, cfg *config.Config) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: schedule.NewService(db, cfg),
		clientService:   client.NewService(db, cfg),
		emailService:    email.NewEmailService(cfg),
		config:          cfg,
	}
}

// CreateAppointment books a new appointment
func (h *ScheduleHandler) CreateAppointment(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)
	userID, _ := middleware.GetUserIDFromContext(c)

	var req schedule.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	appointment, err := h.scheduleService.CreateAppointment(workshopID, userID, &req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	// Confirmation email failures never block the booking.
	if cl, err := h.clientService.GetClient(workshopID, appointment.ClientID); err == nil && cl.Email != "" {
		when := appointment.StartsAt.Format("02/01/2006 15:04")
		if err := h.emailService.SendAppointmentReminder(cl.Email, cl.Name, appointment.Title, when); err != nil {
			log.Printf("⚠️ Failed to send appointment confirmation: %v", err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Appointment created successfully",
		"data":    appointment,
	})
}

// GetAppointment retrieves a single appointment
func (h *ScheduleHandler) GetAppointment(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID",
		})
		return
	}

	appointment, err := h.scheduleService.GetAppointment(workshopID, uint(appointmentID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": appointment,
	})
}

// ListAppointments lists appointments for a period
func (h *ScheduleHandler) ListAppointments(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	var req schedule.ListAppointmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	appointments, err := h.scheduleService.ListAppointments(workshopID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": appointments,
	})
}

// UpdateAppointment reschedules or edits an appointment
func (h *ScheduleHandler) UpdateAppointment(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID",
		})
		return
	}

	var req schedule.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	appointment, err := h.scheduleService.UpdateAppointment(workshopID, uint(appointmentID), &req)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Appointment updated successfully",
		"data":    appointment,
	})
}

// SetStatus changes the appointment lifecycle status
func (h *ScheduleHandler) SetStatus(c *gin.Context) {
	workshopID, _ := middleware.GetWorkshopIDFromContext(c)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID",
		})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	appointment, err := h.scheduleService.SetStatus(workshopID, uint(appointmentID), schedule.AppointmentStatus(req.Status))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Appointment status updated",
		"data":    appointment,
	})
}
