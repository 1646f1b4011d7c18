// internal/domain/user/service.go
package user

import (
	"fmt"
	"time"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/workshop"
	"github.com/your-org/workshop-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
	}
}

// RegisterRequest represents workshop + admin account registration data
type RegisterRequest struct {
	WorkshopName     string `json:"workshop_name" binding:"required"`
	WorkshopDocument string `json:"workshop_document"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required"`
	ConfirmPassword  string `json:"confirm_password" binding:"required"`
	FirstName        string `json:"first_name" binding:"required"`
	LastName         string `json:"last_name" binding:"required"`
	Phone            string `json:"phone"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates a new workshop account with its first admin user
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("passwords do not match")
	}

	// Check if email is already taken
	var existing User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("email already registered")
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var newUser *User
	err = s.db.Transaction(func(tx *gorm.DB) error {
		shop := &workshop.Workshop{
			Name:     req.WorkshopName,
			Document: req.WorkshopDocument,
			Email:    req.Email,
			Phone:    req.Phone,
			IsActive: true,
		}
		if err := tx.Create(shop).Error; err != nil {
			return fmt.Errorf("failed to create workshop: %w", err)
		}

		newUser = &User{
			WorkshopID: shop.ID,
			Email:      req.Email,
			Password:   hashedPassword,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Phone:      req.Phone,
			Role:       RoleAdmin,
			IsActive:   true,
		}
		if err := tx.Create(newUser).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.buildAuthResponse(newUser)
}

// Login authenticates a user and returns tokens
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var u User
	if err := s.db.Where("email = ?", req.Email).First(&u).Error; err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if !u.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	now := time.Now()
	s.db.Model(&u).Update("last_login_at", &now)

	return s.buildAuthResponse(&u)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *Service) RefreshToken(refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	var u User
	if err := s.db.First(&u, claims.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}

	if !u.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}

	return s.buildAuthResponse(&u)
}

// GetProfile returns a user by ID
func (s *Service) GetProfile(userID uint) (*User, error) {
	var u User
	if err := s.db.Preload("Workshop").First(&u, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}
	return &u, nil
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// UpdateProfile updates a user's profile information
func (s *Service) UpdateProfile(userID uint, req *UpdateProfileRequest) (*User, error) {
	var u User
	if err := s.db.First(&u, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}

	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	if req.Phone != "" {
		u.Phone = req.Phone
	}

	if err := s.db.Save(&u).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &u, nil
}

// ChangePasswordRequest represents password change data
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ChangePassword changes a user's password after verifying the current one
func (s *Service) ChangePassword(userID uint, req *ChangePasswordRequest) error {
	var u User
	if err := s.db.First(&u, userID).Error; err != nil {
		return fmt.Errorf("user not found")
	}

	if err := s.passwordManager.VerifyPassword(req.CurrentPassword, u.Password); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hashed, err := s.passwordManager.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.db.Model(&u).Update("password", hashed).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// TEAM MANAGEMENT

// CreateMemberRequest represents team member creation data
type CreateMemberRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Role      Role   `json:"role" binding:"required"`
}

// CreateMember adds a user to an existing workshop. When the request carries
// no password a temporary one is generated and returned alongside the member,
// exactly once; it is never stored in clear.
func (s *Service) CreateMember(workshopID uint, req *CreateMemberRequest) (*User, string, error) {
	var existing User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, "", fmt.Errorf("email already registered")
	}

	password := req.Password
	tempPassword := ""
	if password == "" {
		generated, err := s.passwordManager.GenerateTemporaryPassword()
		if err != nil {
			return nil, "", err
		}
		password = generated
		tempPassword = generated
	}

	hashedPassword, err := s.passwordManager.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	member := &User{
		WorkshopID: workshopID,
		Email:      req.Email,
		Password:   hashedPassword,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Role:       req.Role,
		IsActive:   true,
	}
	if err := s.db.Create(member).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create team member: %w", err)
	}

	return member, tempPassword, nil
}

// ListMembers lists all users of a workshop
func (s *Service) ListMembers(workshopID uint) ([]User, error) {
	var users []User
	if err := s.db.Where("workshop_id = ?", workshopID).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return users, nil
}

// SetMemberActive activates or deactivates a team member. Admin accounts
// cannot be deactivated; the workshop must always keep a working admin login.
func (s *Service) SetMemberActive(workshopID, userID uint, active bool) error {
	var member User
	if err := s.db.Where("id = ? AND workshop_id = ?", userID, workshopID).First(&member).Error; err != nil {
		return fmt.Errorf("team member not found")
	}
	if member.IsAdmin() && !active {
		return fmt.Errorf("admin accounts cannot be deactivated")
	}

	if err := s.db.Model(&member).Update("is_active", active).Error; err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}
	return nil
}

func (s *Service) buildAuthResponse(u *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID, u.Email, u.WorkshopID, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         u,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}
