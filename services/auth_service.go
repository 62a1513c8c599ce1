package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
)

// AuthService holds the password and token primitives shared by the sign-in
// flows.
type AuthService struct {
	cost int
}

func NewAuthService() *AuthService {
	return &AuthService{cost: bcrypt.DefaultCost}
}

// ════════════════════════════════════════════════════════════
// Passwords
// ════════════════════════════════════════════════════════════

func (s *AuthService) HashPassword(password string) (string, error) {
	if !s.ValidatePassword(password) {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *AuthService) ValidatePassword(password string) bool {
	return len(password) >= MinPasswordLength
}

// ════════════════════════════════════════════════════════════
// Tokens
// ════════════════════════════════════════════════════════════

// GenerateToken returns 32 random bytes as 64 hex characters.
func (s *AuthService) GenerateToken() (string, error) {
	token := make([]byte, 32)
	if _, err := rand.Read(token); err != nil {
		return "", err
	}
	return hex.EncodeToString(token), nil
}

// HashToken is what gets stored in place of a token.
func (s *AuthService) HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// NormalizeEmail lowercases and trims an address so lookups are consistent.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ════════════════════════════════════════════════════════════
// Global Instance
// ════════════════════════════════════════════════════════════

var authService *AuthService

func GetAuthService() *AuthService {
	if authService == nil {
		authService = NewAuthService()
	}
	return authService
}

func HashPassword(password string) (string, error) {
	return GetAuthService().HashPassword(password)
}

func VerifyPassword(hash, password string) bool {
	return GetAuthService().VerifyPassword(hash, password)
}

func GenerateToken() (string, error) {
	return GetAuthService().GenerateToken()
}

func HashToken(token string) string {
	return GetAuthService().HashToken(token)
}
