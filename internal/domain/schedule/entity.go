// internal/domain/schedule/entity.go
package schedule

import (
	"time"

	"gorm.io/gorm"
)

// AppointmentStatus represents the appointment lifecycle state
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a scheduled slot for a client's vehicle
type Appointment struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	WorkshopID uint              `gorm:"not null;index" json:"workshop_id"`
	ClientID   uint              `gorm:"not null;index" json:"client_id"`
	VehicleID  *uint             `gorm:"index" json:"vehicle_id"`
	MechanicID *uint             `gorm:"index" json:"mechanic_id"`
	Title      string            `gorm:"not null;size:255" json:"title"`
	Notes      string            `gorm:"type:text" json:"notes"`
	StartsAt   time.Time         `gorm:"not null;index" json:"starts_at"`
	EndsAt     time.Time         `gorm:"not null" json:"ends_at"`
	Status     AppointmentStatus `gorm:"not null;size:20;default:'scheduled'" json:"status"`
	CreatedBy  uint              `gorm:"index" json:"created_by"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	DeletedAt  gorm.DeletedAt    `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Appointment) TableName() string {
	return "appointments"
}

// IsActive reports whether the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentScheduled || a.Status == AppointmentConfirmed
}

// Overlaps reports whether two time ranges intersect. Touching edges do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
