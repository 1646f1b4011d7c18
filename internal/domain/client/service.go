// internal/domain/client/service.go
package client

import (
	"fmt"
	"strings"

	"github.com/your-org/workshop-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles client and vehicle business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new client service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateClientRequest represents client creation data
type CreateClientRequest struct {
	Name       string `json:"name" binding:"required"`
	Document   string `json:"document"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Notes      string `json:"notes"`
}

// CreateVehicleRequest represents vehicle creation data
type CreateVehicleRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Plate    string `json:"plate" binding:"required"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Color    string `json:"color"`
	VIN      string `json:"vin"`
	Mileage  int    `json:"mileage"`
	Notes    string `json:"notes"`
}

// CLIENT MANAGEMENT

// CreateClient creates a new client for a workshop
func (s *Service) CreateClient(workshopID uint, req *CreateClientRequest) (*Client, error) {
	if req.Document != "" {
		var existing Client
		if err := s.db.Where("workshop_id = ? AND document = ?", workshopID, req.Document).First(&existing).Error; err == nil {
			return nil, fmt.Errorf("client with document '%s' already exists", req.Document)
		}
	}

	c := &Client{
		WorkshopID: workshopID,
		Name:       req.Name,
		Document:   req.Document,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Notes:      req.Notes,
		IsActive:   true,
	}

	if err := s.db.Create(c).Error; err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return c, nil
}

// GetClient retrieves a client with its vehicles
func (s *Service) GetClient(workshopID, clientID uint) (*Client, error) {
	var c Client
	if err := s.db.Preload("Vehicles").
		Where("id = ? AND workshop_id = ?", clientID, workshopID).
		First(&c).Error; err != nil {
		return nil, fmt.Errorf("client not found")
	}
	return &c, nil
}

// ListClients lists clients for a workshop, optionally filtered by a search term
func (s *Service) ListClients(workshopID uint, search string, page, limit int) ([]Client, int64, error) {
	query := s.db.Model(&Client{}).Where("workshop_id = ?", workshopID)

	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR document LIKE ? OR phone LIKE ?", term, "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var clients []Client
	if err := query.Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&clients).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	return clients, total, nil
}

// UpdateClient updates client data
func (s *Service) UpdateClient(workshopID, clientID uint, req *CreateClientRequest) (*Client, error) {
	c, err := s.GetClient(workshopID, clientID)
	if err != nil {
		return nil, err
	}

	c.Name = req.Name
	c.Document = req.Document
	c.Email = req.Email
	c.Phone = req.Phone
	c.Address = req.Address
	c.City = req.City
	c.State = req.State
	c.PostalCode = req.PostalCode
	c.Notes = req.Notes

	if err := s.db.Save(c).Error; err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return c, nil
}

// DeleteClient soft-deletes a client
func (s *Service) DeleteClient(workshopID, clientID uint) error {
	result := s.db.Where("id = ? AND workshop_id = ?", clientID, workshopID).Delete(&Client{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("client not found")
	}
	return nil
}

// VEHICLE MANAGEMENT

// CreateVehicle registers a vehicle for a client
func (s *Service) CreateVehicle(workshopID uint, req *CreateVehicleRequest) (*Vehicle, error) {
	// Owner must belong to the same workshop
	var owner Client
	if err := s.db.Where("id = ? AND workshop_id = ?", req.ClientID, workshopID).First(&owner).Error; err != nil {
		return nil, fmt.Errorf("client not found")
	}

	plate := strings.ToUpper(strings.ReplaceAll(req.Plate, "-", ""))
	var existing Vehicle
	if err := s.db.Where("workshop_id = ? AND plate = ?", workshopID, plate).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("vehicle with plate '%s' already exists", plate)
	}

	v := &Vehicle{
		WorkshopID: workshopID,
		ClientID:   req.ClientID,
		Plate:      plate,
		Make:       req.Make,
		Model:      req.Model,
		Year:       req.Year,
		Color:      req.Color,
		VIN:        req.VIN,
		Mileage:    req.Mileage,
		Notes:      req.Notes,
	}

	if err := s.db.Create(v).Error; err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return v, nil
}

// GetVehicle retrieves a vehicle with its owner
func (s *Service) GetVehicle(workshopID, vehicleID uint) (*Vehicle, error) {
	var v Vehicle
	if err := s.db.Preload("Client").
		Where("id = ? AND workshop_id = ?", vehicleID, workshopID).
		First(&v).Error; err != nil {
		return nil, fmt.Errorf("vehicle not found")
	}
	return &v, nil
}

// ListVehicles lists vehicles of a client
func (s *Service) ListVehicles(workshopID, clientID uint) ([]Vehicle, error) {
	var vehicles []Vehicle
	if err := s.db.Where("workshop_id = ? AND client_id = ?", workshopID, clientID).
		Order("created_at DESC").
		Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

// UpdateVehicle updates vehicle data
func (s *Service) UpdateVehicle(workshopID, vehicleID uint, req *CreateVehicleRequest) (*Vehicle, error) {
	v, err := s.GetVehicle(workshopID, vehicleID)
	if err != nil {
		return nil, err
	}

	v.Plate = strings.ToUpper(strings.ReplaceAll(req.Plate, "-", ""))
	v.Make = req.Make
	v.Model = req.Model
	v.Year = req.Year
	v.Color = req.Color
	v.VIN = req.VIN
	v.Mileage = req.Mileage
	v.Notes = req.Notes

	if err := s.db.Save(v).Error; err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return v, nil
}

// DeleteVehicle soft-deletes a vehicle
func (s *Service) DeleteVehicle(workshopID, vehicleID uint) error {
	result := s.db.Where("id = ? AND workshop_id = ?", vehicleID, workshopID).Delete(&Vehicle{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("vehicle not found")
	}
	return nil
}
