package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProviderGoogle      = "google"
	ProviderEmail       = "email"
	ProviderCredentials = "credentials"

	UserStatusActive = "active"
)

type User struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email         string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name          string    `json:"name" gorm:"type:varchar(255)"`
	Username      *string   `json:"username,omitempty" gorm:"type:varchar(50);uniqueIndex"`
	Image         *string   `json:"image,omitempty" gorm:"type:text"`
	GoogleID      *string   `json:"-" gorm:"column:google_id;type:varchar(255);uniqueIndex"`
	Provider      string    `json:"provider" gorm:"type:varchar(50);default:'email'"`
	PasswordHash  *string   `json:"-" gorm:"column:password_hash;type:varchar(255)"`
	EmailVerified bool      `json:"emailVerified" gorm:"column:email_verified;default:false"`
	Status        string    `json:"status" gorm:"type:varchar(50);default:'active';index"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV7())
	}
	if u.Status == "" {
		u.Status = UserStatusActive
	}
	return nil
}

// UserResponse is the session view of a user
type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Image         *string   `json:"image"`
	Provider      string    `json:"provider"`
	EmailVerified bool      `json:"email_verified"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Image:         u.Image,
		Provider:      u.Provider,
		EmailVerified: u.EmailVerified,
	}
}

// AccountResponse is what the account page shows.
type AccountResponse struct {
	Username *string `json:"username"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Image    *string `json:"image"`
}

func (u *User) ToAccount() AccountResponse {
	return AccountResponse{
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Image:    u.Image,
	}
}

// GoogleUserInfo represents data from Google OAuth
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleID returns whichever id field Google populated.
func (g *GoogleUserInfo) GoogleID() string {
	if g.Sub != "" {
		return g.Sub
	}
	return g.ID
}

// AuthResponse is returned after a non-redirect sign in
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type EmailSignInRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type GoogleTokenRequest struct {
	Credential string `json:"credential" binding:"required"`
}

type UpdateAccountRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Username *string `json:"username" binding:"omitempty,min=3,max=50,alphanum"`
}
