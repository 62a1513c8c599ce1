package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionIssuer        = "nomato-api"
	defaultSessionExpiry = 24 * time.Hour
	devFallbackJWTSecret = "dev-secret-key-change-in-production"
)

var ErrInvalidSession = errors.New("invalid session token")

// SessionClaims is the payload of the auth_token cookie.
type SessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies session tokens.
type JWTService struct {
	secretKey []byte
	expiry    time.Duration
	now       func() time.Time
}

var jwtService *JWTService

// InitJWTService configures the global service. A zero expiry falls back to
// JWT_EXPIRY, then 24h.
func InitJWTService(secretKey string, expiry time.Duration) error {
	if secretKey == "" {
		return errors.New("JWT secret key cannot be empty")
	}
	if expiry <= 0 {
		expiry = expiryFromEnv()
	}
	jwtService = &JWTService{
		secretKey: []byte(secretKey),
		expiry:    expiry,
		now:       time.Now,
	}
	return nil
}

// GetJWTService returns the global service, building one from JWT_SECRET if
// InitJWTService was never called.
func GetJWTService() *JWTService {
	if jwtService == nil {
		secretKey := os.Getenv("JWT_SECRET")
		if secretKey == "" {
			secretKey = devFallbackJWTSecret
		}
		jwtService = &JWTService{
			secretKey: []byte(secretKey),
			expiry:    expiryFromEnv(),
			now:       time.Now,
		}
	}
	return jwtService
}

func expiryFromEnv() time.Duration {
	d, err := time.ParseDuration(os.Getenv("JWT_EXPIRY"))
	if err != nil || d <= 0 {
		return defaultSessionExpiry
	}
	return d
}

// Expiry is how long issued tokens stay valid; the session cookie uses the
// same lifetime.
func (j *JWTService) Expiry() time.Duration {
	return j.expiry
}

func (j *JWTService) GenerateSessionJWT(userID uuid.UUID, email, name string) (string, error) {
	if userID == uuid.Nil || email == "" {
		return "", errors.New("userID and email cannot be empty")
	}

	now := j.now()
	claims := SessionClaims{
		UserID: userID.String(),
		Email:  email,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifySessionJWT parses a token and checks signature, expiry and claims.
// Every failure wraps ErrInvalidSession.
func (j *JWTService) VerifySessionJWT(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(j.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if !token.Valid {
		return nil, ErrInvalidSession
	}

	if _, err := uuid.Parse(claims.UserID); err != nil || claims.Email == "" {
		return nil, fmt.Errorf("%w: missing required claims", ErrInvalidSession)
	}
	return claims, nil
}

// GenerateSessionJWT signs a token with the global service.
func GenerateSessionJWT(userID uuid.UUID, email, name string) (string, error) {
	return GetJWTService().GenerateSessionJWT(userID, email, name)
}

// VerifySessionJWT verifies a token with the global service.
func VerifySessionJWT(tokenString string) (*SessionClaims, error) {
	return GetJWTService().VerifySessionJWT(tokenString)
}
