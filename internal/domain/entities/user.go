package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	return r == UserRoleAdmin || r == UserRoleUser
}

// AccountStatus represents the payment-gated account state.
// payment_pending accounts can authenticate but cannot view or create listings
// until an admin verifies the payment and flips them to active.
type AccountStatus string

const (
	AccountStatusActive         AccountStatus = "active"
	AccountStatusPaymentPending AccountStatus = "payment_pending"
)

// Valid reports whether the status is one of the known values.
func (s AccountStatus) Valid() bool {
	return s == AccountStatusActive || s == AccountStatusPaymentPending
}

// Capability is a feature an authenticated account may be granted.
type Capability string

const (
	CapabilityViewListings  Capability = "view_listings"
	CapabilityCreateListing Capability = "create_listing"
	CapabilityAdminPanel    Capability = "admin_panel"
)

// User represents a showroom account
type User struct {
	ID            uuid.UUID     `json:"id"`
	Email         string        `json:"email"`
	Name          string        `json:"name"`
	ContactNumber string        `json:"contactNumber"`
	Language      string        `json:"language"`
	PasswordHash  string        `json:"-"`
	Role          UserRole      `json:"role"`
	Status        AccountStatus `json:"status"`
	ActivatedAt   null.Time     `json:"activatedAt,omitempty"`
	JoinedAt      time.Time     `json:"joinedAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	DeletedAt     *time.Time    `json:"-"`
}

// IsAdmin reports whether the account holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

// IsActive reports whether the account passed the payment gate.
func (u *User) IsActive() bool {
	return u != nil && u.Status == AccountStatusActive
}

// CreateUserInput represents input for registering an account
type CreateUserInput struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Name          string `json:"name" binding:"required,min=2,max=100"`
	ContactNumber string `json:"contactNumber" binding:"required,min=5,max=20"`
	Language      string `json:"language" binding:"omitempty,oneof=en ur"`
}

// LoginInput represents input for login
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"` // If true, store tokens in Redis and return SessionID
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}

// ForgotPasswordInput requests a password recovery token.
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput consumes a recovery token.
type ResetPasswordInput struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}
