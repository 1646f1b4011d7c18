// internal/domain/schedule/service.go
package schedule

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/workshop-backend/internal/config"
)

// Service handles appointment scheduling business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new schedule service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateAppointmentRequest represents an appointment creation request
type CreateAppointmentRequest struct {
	ClientID   uint      `json:"client_id" binding:"required"`
	VehicleID  *uint     `json:"vehicle_id"`
	MechanicID *uint     `json:"mechanic_id"`
	Title      string    `json:"title" binding:"required"`
	Notes      string    `json:"notes"`
	StartsAt   time.Time `json:"starts_at" binding:"required"`
	EndsAt     time.Time `json:"ends_at" binding:"required"`
}

// UpdateAppointmentRequest represents a reschedule or edit request
type UpdateAppointmentRequest struct {
	MechanicID *uint      `json:"mechanic_id"`
	Title      string     `json:"title"`
	Notes      string     `json:"notes"`
	StartsAt   *time.Time `json:"starts_at"`
	EndsAt     *time.Time `json:"ends_at"`
}

// ListAppointmentsRequest represents calendar filters
type ListAppointmentsRequest struct {
	From       time.Time `form:"from" time_format:"2006-01-02"`
	To         time.Time `form:"to" time_format:"2006-01-02"`
	MechanicID uint      `form:"mechanic_id"`
	ClientID   uint      `form:"client_id"`
	Status     string    `form:"status"`
}

// CreateAppointment books a slot, rejecting mechanic double bookings
func (s *Service) CreateAppointment(workshopID, userID uint, req *CreateAppointmentRequest) (*Appointment, error) {
	if err := validateSlot(req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}

	if req.MechanicID != nil {
		conflict, err := s.findConflict(workshopID, *req.MechanicID, req.StartsAt, req.EndsAt, 0)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, fmt.Errorf("mechanic already booked from %s to %s",
				conflict.StartsAt.Format("15:04"), conflict.EndsAt.Format("15:04"))
		}
	}

	appointment := &Appointment{
		WorkshopID: workshopID,
		ClientID:   req.ClientID,
		VehicleID:  req.VehicleID,
		MechanicID: req.MechanicID,
		Title:      req.Title,
		Notes:      req.Notes,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
		Status:     AppointmentScheduled,
		CreatedBy:  userID,
	}
	if err := s.db.Create(appointment).Error; err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appointment, nil
}

// GetAppointment retrieves an appointment scoped to the workshop
func (s *Service) GetAppointment(workshopID, appointmentID uint) (*Appointment, error) {
	var appointment Appointment
	err := s.db.Where("id = ? AND workshop_id = ?", appointmentID, workshopID).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("appointment not found")
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// ListAppointments returns appointments within a window, newest first within a day
func (s *Service) ListAppointments(workshopID uint, req *ListAppointmentsRequest) ([]Appointment, error) {
	query := s.db.Model(&Appointment{}).Where("workshop_id = ?", workshopID)
	if !req.From.IsZero() {
		query = query.Where("starts_at >= ?", req.From)
	}
	if !req.To.IsZero() {
		query = query.Where("starts_at < ?", req.To.AddDate(0, 0, 1))
	}
	if req.MechanicID > 0 {
		query = query.Where("mechanic_id = ?", req.MechanicID)
	}
	if req.ClientID > 0 {
		query = query.Where("client_id = ?", req.ClientID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	var appointments []Appointment
	if err := query.Order("starts_at ASC").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// UpdateAppointment edits or reschedules an active appointment
func (s *Service) UpdateAppointment(workshopID, appointmentID uint, req *UpdateAppointmentRequest) (*Appointment, error) {
	appointment, err := s.GetAppointment(workshopID, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.IsActive() {
		return nil, fmt.Errorf("cannot edit a %s appointment", appointment.Status)
	}

	if req.MechanicID != nil {
		appointment.MechanicID = req.MechanicID
	}
	if req.Title != "" {
		appointment.Title = req.Title
	}
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}
	if req.StartsAt != nil {
		appointment.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		appointment.EndsAt = *req.EndsAt
	}

	if err := validateSlot(appointment.StartsAt, appointment.EndsAt); err != nil {
		return nil, err
	}
	if appointment.MechanicID != nil {
		conflict, err := s.findConflict(workshopID, *appointment.MechanicID,
			appointment.StartsAt, appointment.EndsAt, appointment.ID)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, fmt.Errorf("mechanic already booked from %s to %s",
				conflict.StartsAt.Format("15:04"), conflict.EndsAt.Format("15:04"))
		}
	}

	if err := s.db.Save(appointment).Error; err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return appointment, nil
}

// SetStatus moves the appointment through its lifecycle
func (s *Service) SetStatus(workshopID, appointmentID uint, status AppointmentStatus) (*Appointment, error) {
	switch status {
	case AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
	default:
		return nil, fmt.Errorf("invalid appointment status: %s", status)
	}

	appointment, err := s.GetAppointment(workshopID, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.IsActive() {
		return nil, fmt.Errorf("appointment is already %s", appointment.Status)
	}

	appointment.Status = status
	if err := s.db.Save(appointment).Error; err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return appointment, nil
}

// findConflict returns an active appointment of the mechanic overlapping the slot
func (s *Service) findConflict(workshopID, mechanicID uint, startsAt, endsAt time.Time, excludeID uint) (*Appointment, error) {
	var candidates []Appointment
	query := s.db.Where("workshop_id = ? AND mechanic_id = ? AND status IN ?",
		workshopID, mechanicID, []AppointmentStatus{AppointmentScheduled, AppointmentConfirmed})
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to check availability: %w", err)
	}

	for i := range candidates {
		if Overlaps(startsAt, endsAt, candidates[i].StartsAt, candidates[i].EndsAt) {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

func validateSlot(startsAt, endsAt time.Time) error {
	if !endsAt.After(startsAt) {
		return errors.New("appointment must end after it starts")
	}
	return nil
}
