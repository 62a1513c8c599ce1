package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/nomato-app/nomato-backend/models"
	"gorm.io/gorm"
)

const MagicLinkTTL = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid or already used sign-in link")
	ErrTokenExpired = errors.New("sign-in link has expired")
)

// MagicLinkService issues and redeems single-use email sign-in tokens.
type MagicLinkService struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewMagicLinkService(db *gorm.DB) *MagicLinkService {
	return &MagicLinkService{db: db, ttl: MagicLinkTTL, now: time.Now}
}

// Issue stores the hash of a fresh token for email and returns the plain
// token. Expired tokens for the same address are purged on the way.
func (s *MagicLinkService) Issue(ctx context.Context, email string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", errors.New("email is required")
	}

	token, err := GenerateToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	now := s.now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("identifier = ? AND expires_at < ?", email, now).
			Delete(&models.VerificationToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.VerificationToken{
			Identifier: email,
			TokenHash:  HashToken(token),
			ExpiresAt:  now.Add(s.ttl),
		}).Error
	})
	if err != nil {
		return "", fmt.Errorf("store verification token: %w", err)
	}
	return token, nil
}

// Consume redeems token for email. The row is deleted whether or not it has
// expired, so a link never works twice.
func (s *MagicLinkService) Consume(ctx context.Context, email, token string) error {
	email = NormalizeEmail(email)
	if email == "" || token == "" {
		return ErrInvalidToken
	}

	var vt models.VerificationToken
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("identifier = ? AND token_hash = ?", email, HashToken(token)).
			First(&vt).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.VerificationToken{}, "id = ?", vt.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("consume verification token: %w", err)
	}

	if s.now().After(vt.ExpiresAt) {
		return ErrTokenExpired
	}
	return nil
}

// BuildMagicLinkURL is the link mailed to the user.
func BuildMagicLinkURL(apiBaseURL, token, email string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("email", email)
	return strings.TrimRight(apiBaseURL, "/") + "/api/auth/email/callback?" + q.Encode()
}
